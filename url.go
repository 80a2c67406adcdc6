package urlkit

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/weburi/urlkit/internal/grammar"
	"github.com/weburi/urlkit/internal/log"
	"github.com/weburi/urlkit/internal/types"
	"github.com/weburi/urlkit/internal/util"
	"github.com/weburi/urlkit/query"
)

var (
	_ types.Renderer        = (*URL)(nil)
	_ types.ValidFlag       = (*URL)(nil)
	_ types.Equalable       = (*URL)(nil)
	_ types.Cloneable[*URL] = (*URL)(nil)
)

// URL is a mutable URL document: the syntactic components of the parsed
// input plus its query string held as a parameter tree.
//
// Every component except the path is optional; reading accessors return the
// value together with a presence flag. The path is never absent, an input
// without a path yields "/".
//
// Mutators return the document for chaining. [URL.Relative] is the only
// operation that may return a different instance, see its doc.
type URL struct {
	parts     grammar.Parts
	params    *query.Tree
	codec     query.Codec
	defScheme string
	original  string
	log       *slog.Logger
}

// Scheme returns the scheme and whether it is present.
func (u *URL) Scheme() (string, bool) { return u.parts.Scheme, u.parts.HasScheme }

// SetScheme sets the scheme. An empty string makes it absent.
func (u *URL) SetScheme(scheme string) *URL {
	u.parts.Scheme, u.parts.HasScheme = util.LCase(scheme), scheme != ""
	return u
}

// User returns the username and whether it is present.
func (u *URL) User() (string, bool) { return u.parts.User, u.parts.HasUser }

// SetUser sets the username. An empty string makes it absent.
func (u *URL) SetUser(user string) *URL {
	u.parts.User, u.parts.HasUser = user, user != ""
	return u
}

// Pass returns the password and whether it is present.
func (u *URL) Pass() (string, bool) { return u.parts.Pass, u.parts.HasPass }

// SetPass sets the password. An empty string makes it absent.
func (u *URL) SetPass(pass string) *URL {
	u.parts.Pass, u.parts.HasPass = pass, pass != ""
	return u
}

// Host returns the host and whether it is present.
func (u *URL) Host() (string, bool) { return u.parts.Host, u.parts.HasHost }

// SetHost sets the host. An empty string makes it absent.
func (u *URL) SetHost(host string) *URL {
	u.parts.Host, u.parts.HasHost = host, host != ""
	return u
}

// Port returns the port and whether it is present.
func (u *URL) Port() (int, bool) { return u.parts.Port, u.parts.HasPort }

// SetPort sets the port. Port legality is not validated.
func (u *URL) SetPort(port int) *URL {
	u.parts.Port, u.parts.HasPort = port, true
	return u
}

// Path returns the path. It is never absent, "/" at minimum.
func (u *URL) Path() string { return u.parts.Path }

// SetPath sets the path. An empty string resets it to "/".
func (u *URL) SetPath(path string) *URL {
	if path == "" {
		path = "/"
	}
	u.parts.Path = path
	return u
}

// Fragment returns the fragment and whether it is present.
func (u *URL) Fragment() (string, bool) { return u.parts.Fragment, u.parts.HasFragment }

// SetFragment sets the fragment. An empty string makes it absent.
func (u *URL) SetFragment(frag string) *URL {
	u.parts.Fragment, u.parts.HasFragment = frag, frag != ""
	return u
}

// Extension returns the path suffix after the last "." and whether the path
// has one.
func (u *URL) Extension() (string, bool) {
	i := strings.LastIndexByte(u.parts.Path, '.')
	if i < 0 {
		return "", false
	}
	return u.parts.Path[i+1:], true
}

// SetExtension rewrites the path suffix after the last ".", appending a new
// "."+ext when the path has none.
func (u *URL) SetExtension(ext string) *URL {
	if i := strings.LastIndexByte(u.parts.Path, '.'); i >= 0 {
		u.parts.Path = u.parts.Path[:i+1] + ext
	} else {
		u.parts.Path += "." + ext
	}
	return u
}

// Query renders the current parameters as an encoded query string.
func (u *URL) Query() string { return u.codec.Encode(u.params) }

// SetQuery replaces the parameters by decoding the given query string.
func (u *URL) SetQuery(s string) *URL {
	u.params = u.codec.Decode(s)
	return u
}

// Params returns the parameter tree of the document. The tree is live:
// mutating it mutates the document.
func (u *URL) Params() *query.Tree { return u.params }

// SetParams replaces the parameter tree wholesale. A nil tree installs an
// empty one.
func (u *URL) SetParams(t *query.Tree) *URL {
	if t == nil {
		t = query.NewTree()
	}
	u.params = t
	return u
}

// Add stores a parameter under the dot-notation key without discarding an
// existing value (see [query.Tree.Add]). The value is coerced with [query.Val].
func (u *URL) Add(key string, val any) *URL {
	u.params.Add(key, query.Val(val))
	return u
}

// Set stores a parameter under the dot-notation key, overwriting any
// existing value. The value is coerced with [query.Val].
func (u *URL) Set(key string, val any) *URL {
	u.params.Set(key, query.Val(val))
	return u
}

// Get returns the parameter stored at the dot-notation key.
func (u *URL) Get(key string) (query.Value, bool) { return u.params.Get(key) }

// GetDefault returns the parameter stored at the dot-notation key, or def
// (coerced with [query.Val]) when the key is absent.
func (u *URL) GetDefault(key string, def any) query.Value {
	if v, ok := u.params.Get(key); ok {
		return v
	}
	return query.Val(def)
}

// Has reports whether a parameter exists at the dot-notation key.
func (u *URL) Has(key string) bool { return u.params.Has(key) }

// Remove deletes the parameter at the dot-notation key.
func (u *URL) Remove(key string) *URL {
	u.params.Remove(key)
	return u
}

// RemoveFunc deletes every parameter whose flattened dot-notation key and
// value match the predicate.
func (u *URL) RemoveFunc(fn func(key string, v query.Value) bool) *URL {
	u.params.RemoveFunc(fn)
	return u
}

// logger is nil-safe: a zero-value document has no logger installed.
func (u *URL) logger() *slog.Logger {
	if u.log == nil {
		return log.Noop
	}
	return u.log
}

// Original returns the verbatim string the document was constructed from.
// It is never mutated after construction.
func (u *URL) Original() string { return u.original }

// Codec returns the query codec the document was constructed with.
func (u *URL) Codec() query.Codec { return u.codec }

// Clone returns a deep copy of the URL document.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.params = u.params.CloneTree()
	return &u2
}

// RenderTo writes the composed URL to the provided writer.
func (u *URL) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	var encQuery string
	if u.params.Len() > 0 {
		encQuery = u.codec.Encode(u.params)
	}
	return errtrace.Wrap2(grammar.ComposeTo(w, u.parts, encQuery))
}

// Render returns the composed string form of the URL: scheme "://",
// userinfo "@", host, ":" port, path, "?" query (only when the parameter
// tree is non-empty), "#" fragment.
func (u *URL) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the composed string form of the URL.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the URL.
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u))
		return
	}
}

// Equal compares this URL with another for equality. Scheme and host
// compare case-insensitively, parameters compare structurally.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.parts.HasScheme == other.parts.HasScheme &&
		util.EqFold(u.parts.Scheme, other.parts.Scheme) &&
		u.parts.HasUser == other.parts.HasUser &&
		u.parts.User == other.parts.User &&
		u.parts.HasPass == other.parts.HasPass &&
		u.parts.Pass == other.parts.Pass &&
		u.parts.HasHost == other.parts.HasHost &&
		util.EqFold(u.parts.Host, other.parts.Host) &&
		u.parts.HasPort == other.parts.HasPort &&
		u.parts.Port == other.parts.Port &&
		u.parts.Path == other.parts.Path &&
		u.parts.HasFragment == other.parts.HasFragment &&
		u.parts.Fragment == other.parts.Fragment &&
		u.params.Equal(other.params)
}

// IsValid reports whether the document carries any URL substance: a host,
// a scheme, or a path other than the bare "/" default.
func (u *URL) IsValid() bool {
	return u != nil && (u.parts.HasHost || u.parts.HasScheme || u.parts.Path != "/")
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URL) UnmarshalText(text []byte) error {
	u1, err := Parse(text, nil)
	if err != nil {
		*u = URL{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
