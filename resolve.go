package urlkit

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/weburi/urlkit/internal/grammar"
	"github.com/weburi/urlkit/internal/util"
)

// Relative resolves a reference string against the document and returns the
// resulting document. Three disjoint reference shapes are recognized, in
// order:
//
//  1. scheme-and-authority-relative (":///path"): the current scheme, host
//     and port are kept and the rest of the reference becomes the new path;
//     the rebuilt absolute string is re-parsed into a NEW instance.
//  2. full URL ("://..." or "scheme://..."): a missing scheme is filled from
//     the current document (or the default scheme) and the reference is
//     re-parsed into a NEW instance.
//  3. path reference: the document is mutated in place. An optional
//     "?query[#fragment]" tail replaces the parameters (and fragment); a
//     path starting with "/" replaces the current path; any other path is
//     appended to the current path's directory and ".." segments are
//     collapsed together with their preceding segment.
//
// Callers must use the returned document and not assume it is the receiver.
func (u *URL) Relative(ref string) *URL {
	switch {
	case strings.Contains(ref, ":///"):
		u2 := u.reparse(u.rebuildAuthorityRelative(ref))
		u.logger().Debug("resolved scheme-and-authority-relative reference",
			slog.String("ref", ref), slog.String("url", u2.String()))
		return u2
	case strings.Contains(ref, "://"):
		u2 := u.reparse(grammar.FillScheme(ref, u.parts.Scheme, u.defScheme))
		u.logger().Debug("resolved full-url reference",
			slog.String("ref", ref), slog.String("url", u2.String()))
		return u2
	default:
		u.resolvePath(ref)
		u.logger().Debug("resolved path reference",
			slog.String("ref", ref), slog.String("url", u.String()))
		return u
	}
}

// rebuildAuthorityRelative turns ":///rest" into
// "scheme://host[:port]/rest" using the current document's authority.
func (u *URL) rebuildAuthorityRelative(ref string) string {
	rest := ref[strings.Index(ref, ":///")+len(":///"):]

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	scheme := u.parts.Scheme
	if scheme == "" {
		scheme = u.defScheme
	}
	sb.WriteString(scheme)
	sb.WriteString("://")
	sb.WriteString(u.parts.Host)
	if u.parts.HasPort {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(u.parts.Port))
	}
	sb.WriteString("/")
	sb.WriteString(rest)
	return sb.String()
}

// reparse builds a brand-new document from an absolute string, keeping the
// construction-time configuration of the receiver.
func (u *URL) reparse(raw string) *URL {
	u2 := &URL{
		codec:     u.codec,
		defScheme: u.defScheme,
		log:       u.logger(),
		original:  raw,
	}
	u2.parts = grammar.Split(raw, u.parts.Scheme, u.defScheme)
	u2.params = u2.codec.Decode(u2.parts.Query)
	return u2
}

// resolvePath applies a path reference to the document in place.
func (u *URL) resolvePath(ref string) {
	pathPart := ref
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		pathPart = ref[:i]
		tail := ref[i+1:]
		if j := strings.IndexByte(tail, '#'); j >= 0 {
			u.parts.Fragment, u.parts.HasFragment = tail[j+1:], true
			tail = tail[:j]
		} else {
			u.parts.Fragment, u.parts.HasFragment = "", false
		}
		u.parts.Query, u.parts.HasQuery = tail, tail != ""
		u.params = u.codec.Decode(tail)
	}

	pathPart = util.TrimSP(pathPart)
	if strings.HasPrefix(pathPart, "/") {
		// absolute replacement, taken verbatim
		u.parts.Path = pathPart
		return
	}

	pathPart = strings.TrimPrefix(pathPart, "./")
	base := u.parts.Path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[:i+1]
	} else {
		base = "/"
	}
	u.parts.Path = collapseDotSegments(base + pathPart)
}

// collapseDotSegments removes each ".." path segment together with the
// segment immediately preceding it, rescanning from the start after every
// removal. A ".." with no preceding segment is dropped on its own rather
// than underflowing. The result keeps the rootedness of its input and is
// never empty: references climbing past the root of an absolute path land
// back at "/".
func collapseDotSegments(path string) string {
	rooted := strings.HasPrefix(path, "/")
	segs := strings.Split(path, "/")
	for {
		i := slices.Index(segs, "..")
		if i < 0 {
			break
		}
		if i == 0 {
			segs = slices.Delete(segs, 0, 1)
			continue
		}
		segs = slices.Delete(segs, i-1, i+1)
	}
	out := strings.Join(segs, "/")
	if rooted && !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	if out == "" {
		out = "/"
	}
	return out
}
