package query

//go:generate go tool errtrace -w .

import (
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/weburi/urlkit/internal/grammar"
	"github.com/weburi/urlkit/internal/ioutil"
	"github.com/weburi/urlkit/internal/util"
)

// Encoding selects the escaping table used when a tree is serialized.
// The two modes differ only in how a space and a few reserved characters
// are rendered; decoding accepts both.
type Encoding uint8

const (
	// EncodingRFC1738 renders a space as "+" and escapes "~"
	// (application/x-www-form-urlencoded).
	EncodingRFC1738 Encoding = iota
	// EncodingRFC3986 renders a space as "%20" and keeps "~" literal.
	EncodingRFC3986
)

// DefaultSeparator joins encoded pairs unless [Options.Separator] overrides it.
const DefaultSeparator = "&"

// Options parameterizes a [Codec].
type Options struct {
	// NumericPrefix is prepended to list indices in bracket notation:
	// a prefix "n" encodes the list "k" as "k[n0]=..&k[n1]=..".
	NumericPrefix string
	// Separator joins encoded pairs, [DefaultSeparator] when empty.
	Separator string
	// Encoding selects the escaping table.
	Encoding Encoding
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	return o
}

// Codec encodes a parameter tree to a query string and decodes a query
// string back into a parameter tree. The zero value is usable and equals
// NewCodec(Options{}).
type Codec struct {
	opts Options
}

// NewCodec returns a codec with the given options.
func NewCodec(opts Options) Codec {
	return Codec{opts: opts.withDefaults()}
}

// Options returns the codec options with defaults applied.
func (c Codec) Options() Options { return c.opts.withDefaults() }

// Decode parses a query string into a parameter tree.
//
// Bracketed keys build nested structure: "a=1&b[x]=2&b[y]=3" yields
// {a: "1", b: {x: "2", y: "3"}}. A repeated bare key overwrites, "k[]="
// appends to a list and a trailing numeric index (with the configured
// prefix stripped) addresses a list position in order of appearance.
// Empty input yields an empty tree, malformed pairs are kept as literals.
func (c Codec) Decode(s string) *Tree {
	t := NewTree()
	if s == "" {
		return t
	}
	opts := c.opts.withDefaults()
	for _, pair := range strings.Split(s, opts.Separator) {
		if pair == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(pair, "=")
		key := grammar.UnescapeQuery(rawKey)
		val := Scalar(grammar.UnescapeQuery(rawVal))
		name, segs := splitBracketKey(key)
		c.insert(t, name, segs, val)
	}
	return t
}

// splitBracketKey splits "b[x][]" into the head name "b" and the bracket
// segments ["x", ""]. A key without well-formed brackets is returned whole.
func splitBracketKey(key string) (string, []string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return key, nil
	}
	name, rest := key[:open], key[open:]
	var segs []string
	for rest != "" {
		if rest[0] != '[' {
			return key, nil
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return key, nil
		}
		segs = append(segs, rest[1:end])
		rest = rest[end+1:]
	}
	return name, segs
}

func (c Codec) insert(root *Tree, name string, segs []string, val Scalar) {
	cur, key := root, name
	for i, seg := range segs {
		if i == len(segs)-1 && c.isListSeg(seg) {
			list, _ := cur.m[key].(List)
			cur.put(key, append(list, val))
			return
		}
		sub, ok := cur.m[key].(*Tree)
		if !ok {
			sub = NewTree()
			cur.put(key, sub)
		}
		cur = sub
		if seg == "" {
			// a non-terminal "[]" gets the next sequential numeric key
			seg = strconv.Itoa(cur.Len())
		}
		key = seg
	}
	cur.put(key, val)
}

// isListSeg reports whether a terminal bracket segment addresses a list:
// "[]" always does, and so does a numeric index carrying the configured prefix.
func (c Codec) isListSeg(seg string) bool {
	if seg == "" {
		return true
	}
	if p := c.opts.NumericPrefix; p != "" {
		if !strings.HasPrefix(seg, p) {
			return false
		}
		seg = seg[len(p):]
	}
	return isDigits(seg)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !grammar.IsDigitChar(s[i]) {
			return false
		}
	}
	return true
}

// Encode serializes the tree into a query string, flattening nested trees
// and lists into bracket notation in iteration order.
func (c Codec) Encode(t *Tree) string {
	if t.Len() == 0 {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.EncodeTo(sb, t) //nolint:errcheck
	return sb.String()
}

// EncodeTo serializes the tree into w, returning the number of bytes written.
func (c Codec) EncodeTo(w io.Writer, t *Tree) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	opts := c.opts.withDefaults()
	enc := encoder{opts: opts, cw: cw}
	enc.tree(t, "")
	return errtrace.Wrap2(cw.Result())
}

type encoder struct {
	opts  Options
	cw    *ioutil.CountingWriter
	wrote bool
}

func (e *encoder) tree(t *Tree, prefix string) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		name := k
		if prefix != "" {
			name = prefix + "[" + k + "]"
		}
		e.value(t.m[k], name)
	}
}

func (e *encoder) list(l List, prefix string) {
	for i, v := range l {
		e.value(v, prefix+"["+e.opts.NumericPrefix+strconv.Itoa(i)+"]")
	}
}

func (e *encoder) value(v Value, name string) {
	switch v := v.(type) {
	case Scalar:
		e.pair(name, string(v))
	case List:
		e.list(v, name)
	case *Tree:
		if v.Len() == 0 {
			e.pair(name, "")
			return
		}
		e.tree(v, name)
	}
}

func (e *encoder) pair(name, val string) {
	if e.wrote {
		e.cw.WriteString(e.opts.Separator)
	}
	e.wrote = true
	e.cw.WriteString(e.escapeKey(name))
	e.cw.WriteString("=")
	e.cw.WriteString(e.escapeValue(val))
}

// escapeKey escapes a flattened key, keeping the bracket notation literal.
func (e *encoder) escapeKey(s string) string {
	if e.opts.Encoding == EncodingRFC3986 {
		return grammar.EscapeStrict(s, func(c byte) bool {
			return c != '[' && c != ']' && !grammar.IsCharUnreserved(c)
		})
	}
	return grammar.EscapeForm(s, func(c byte) bool {
		return c != '[' && c != ']' && !grammar.IsFormCharUnreserved(c)
	})
}

func (e *encoder) escapeValue(s string) string {
	if e.opts.Encoding == EncodingRFC3986 {
		return grammar.EscapeStrict(s, func(c byte) bool { return !grammar.IsCharUnreserved(c) })
	}
	return grammar.EscapeForm(s, func(c byte) bool { return !grammar.IsFormCharUnreserved(c) })
}
