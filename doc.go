// Package urlkit decomposes URL-like strings into their syntactic components,
// exposes a fluent mutation API over them, resolves relative references and
// keeps the query string as a nested dot-addressable parameter tree.
//
// # Overview
//
// A [URL] document owns eight components (scheme, user, pass, host, port,
// path, query, fragment) plus a [query.Tree] of parameters decoded from the
// query component. Construction parses a string; every later mutation works
// on the live document and rendering re-composes the string form:
//
//	u, err := urlkit.Parse("https://example.com/dir/sub/file.php?page=1", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	u.SetScheme("http").
//	    SetPort(8080).
//	    Set("utm.source", "mail").
//	    Relative("../other.php")
//	fmt.Println(u) // http://example.com:8080/dir/other.php?page=1&utm[source]=mail
//
// # Tolerant parsing
//
// [Parse] never fails on malformed input: any component not found in the
// input is recorded as absent (reading accessors return a presence flag),
// and the whole input lands in the path when it has no "://" at all. The
// only rejected input is an empty string. The path is never absent, it
// defaults to "/".
//
// An input starting with "://" is protocol-relative: the configured default
// scheme ("https" unless [ParseOptions.DefaultScheme] overrides it) is
// prepended before splitting.
//
// # Relative references
//
// [URL.Relative] resolves a reference against the document. A reference
// containing ":///" keeps the current scheme and authority and replaces the
// path; one containing "://" replaces the whole document; anything else is a
// path reference resolved against the current path's directory with ".."
// segments collapsed. The first two shapes produce a new instance, so always
// use the returned document:
//
//	u = u.Relative("://cdn.example.com/asset.js")
//
// # Parameters
//
// The query string is decoded into a [query.Tree]: "a=1&b[x]=2&b[]=3" becomes
// a nested structure of scalars, lists and trees. Dot-notation keys address
// nested values ("b.x"), and [URL.Add], [URL.Set], [URL.Get], [URL.Has],
// [URL.Remove] and [URL.RemoveFunc] operate on them directly. Rendering
// re-encodes the tree deterministically in insertion order with the codec
// configuration fixed at construction (see [query.Options]).
//
// # Thread safety
//
// URL documents are independently owned mutable values. Concurrent mutation
// of the same document is not synchronized internally; callers sharing a
// document across goroutines must serialize access or work on copies made
// with [URL.Clone].
package urlkit
