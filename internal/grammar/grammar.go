// Package grammar implements the URL grammar collaborator: it splits a raw
// URL-like string into its syntactic components and composes components back
// into a string. Splitting is tolerant: a component not present in the input
// is recorded as absent, never as an error.
package grammar

//go:generate go tool errtrace -w .

import (
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/weburi/urlkit/internal/constraints"
	"github.com/weburi/urlkit/internal/errorutil"
	"github.com/weburi/urlkit/internal/ioutil"
	"github.com/weburi/urlkit/internal/util"
)

// ErrEmptyInput is reported when an empty string is offered for splitting.
const ErrEmptyInput = errorutil.Error("empty input")

// DefaultScheme is used when a protocol-relative input is split and no
// current scheme is known.
const DefaultScheme = "https"

// Parts holds the syntactic components of a URL-like string.
// Every component except Path is optional; the Has* flags report presence.
// Path is never absent after a successful split, it defaults to "/".
type Parts struct {
	Scheme   string
	User     string
	Pass     string
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string

	HasScheme   bool
	HasUser     bool
	HasPass     bool
	HasHost     bool
	HasPort     bool
	HasQuery    bool
	HasFragment bool
}

// FillScheme prepends a scheme to a protocol-relative string ("://...").
// The current scheme wins when known, otherwise defScheme is used
// (falling back to [DefaultScheme] when defScheme is empty).
func FillScheme(s, currentScheme, defScheme string) string {
	if !strings.HasPrefix(s, "://") {
		return s
	}
	scheme := currentScheme
	if scheme == "" {
		scheme = defScheme
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	return scheme + s
}

// Split decomposes src into its syntactic components.
//
// The shape recognized is
//
//	scheme "://" [user [":" pass] "@"] host [":" port] path ["?" query] ["#" fragment]
//
// preceded by the protocol-relative rule: an input starting with "://" gets
// currentScheme (or defScheme) prepended first. Input without "://" is
// recorded with scheme and authority absent and the remainder as the path.
func Split[T constraints.Byteseq](src T, currentScheme, defScheme string) Parts {
	s := FillScheme(string(src), currentScheme, defScheme)

	var p Parts
	if i := strings.IndexByte(s, '#'); i >= 0 {
		p.Fragment, p.HasFragment = s[i+1:], true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		p.Query, p.HasQuery = s[i+1:], true
		s = s[:i]
	}
	if i := strings.Index(s, "://"); i > 0 {
		p.Scheme, p.HasScheme = util.LCase(s[:i]), true
		s = splitAuthority(s[i+3:], &p)
	}
	if s != "" {
		p.Path = s
	} else {
		p.Path = "/"
	}
	return p
}

// splitAuthority consumes "[user[:pass]@]host[:port]" from the head of s
// and returns the remaining path portion.
func splitAuthority(s string, p *Parts) string {
	authority := s
	if i := strings.IndexByte(s, '/'); i >= 0 {
		authority, s = s[:i], s[i:]
	} else {
		s = ""
	}
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo := authority[:i]
		authority = authority[i+1:]
		if j := strings.IndexByte(userinfo, ':'); j >= 0 {
			p.User, p.HasUser = Unescape(userinfo[:j]), true
			p.Pass, p.HasPass = Unescape(userinfo[j+1:]), true
		} else if userinfo != "" {
			p.User, p.HasUser = Unescape(userinfo), true
		}
	}
	if i := strings.LastIndexByte(authority, ':'); i >= 0 && isDigits(authority[i+1:]) {
		port, _ := strconv.Atoi(authority[i+1:])
		p.Port, p.HasPort = port, true
		authority = authority[:i]
	}
	if authority != "" {
		p.Host, p.HasHost = authority, true
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsDigitChar(s[i]) {
			return false
		}
	}
	return true
}

func shouldEscapeUserinfoChar(c byte) bool { return !IsUserinfoCharUnreserved(c) }

// ComposeTo writes the components back into their canonical string form:
// scheme "://", userinfo "@", host, ":" port, path, "?" query, "#" fragment.
// The query is written only when encodedQuery is non-empty. The component
// order is fixed; absent components are omitted, never reordered.
func ComposeTo(w io.Writer, p Parts, encodedQuery string) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if p.HasScheme {
		cw.WriteString(p.Scheme)
		cw.WriteString("://")
	}
	switch {
	case p.HasUser && p.HasPass:
		cw.WriteString(Escape(p.User, shouldEscapeUserinfoChar))
		cw.WriteString(":")
		cw.WriteString(Escape(p.Pass, shouldEscapeUserinfoChar))
		cw.WriteString("@")
	case p.HasUser:
		cw.WriteString(Escape(p.User, shouldEscapeUserinfoChar))
		cw.WriteString("@")
	}
	if p.HasHost {
		cw.WriteString(p.Host)
	}
	if p.HasPort {
		cw.WriteString(":")
		cw.Fprint(p.Port)
	}
	if p.Path != "" {
		cw.WriteString(p.Path)
	}
	if encodedQuery != "" {
		cw.WriteString("?")
		cw.WriteString(encodedQuery)
	}
	if p.HasFragment {
		cw.WriteString("#")
		cw.WriteString(p.Fragment)
	}
	return errtrace.Wrap2(cw.Result())
}
