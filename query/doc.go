// Package query implements the nested parameter tree behind a URL query
// string and the codec between the two.
//
// A [Value] is one of three variants: [Scalar], [List] or [*Tree]. Trees map
// unique string keys to values in insertion order, so serialization is
// stable. Dot-notation keys ("a.b.c") address nested trees; write operations
// create missing intermediate trees, read operations never do.
//
// A [Codec] translates between a tree and the bracketed query-string grammar
// ("a=1&b[x]=2&b[]=3"), parameterized by a pair separator, a numeric-index
// prefix for list positions and one of two escaping modes
// ([EncodingRFC1738], [EncodingRFC3986]) that differ only in how a space and
// a few reserved characters are rendered.
package query
