package urlkit

//go:generate go tool errtrace -w .

import (
	"log/slog"

	"braces.dev/errtrace"

	"github.com/weburi/urlkit/internal/constraints"
	"github.com/weburi/urlkit/internal/errorutil"
	"github.com/weburi/urlkit/internal/grammar"
	"github.com/weburi/urlkit/internal/log"
	"github.com/weburi/urlkit/internal/types"
	"github.com/weburi/urlkit/internal/util"
	"github.com/weburi/urlkit/query"
)

// ErrEmptyInput is reported by [Parse] for empty input, the only input it
// rejects.
const ErrEmptyInput = grammar.ErrEmptyInput

// RenderOptions contains options for rendering URLs.
type RenderOptions = types.RenderOptions

// ParseOptions configures a [URL] at construction. The query codec
// configuration and the default scheme are fixed for the document lifetime.
type ParseOptions struct {
	// Query parameterizes the codec used by every query encode/decode of
	// the document (see [query.Options]).
	Query query.Options
	// DefaultScheme fills protocol-relative input ("://host/path") when the
	// document has no scheme yet. [grammar.DefaultScheme] ("https") when empty.
	DefaultScheme string
	// Logger receives debug traces of parse and resolve operations.
	// If nil, the [log.Noop] logger is used.
	Logger *slog.Logger
}

func (o *ParseOptions) query() query.Options {
	if o == nil {
		return query.Options{}
	}
	return o.Query
}

func (o *ParseOptions) defaultScheme() string {
	if o == nil || o.DefaultScheme == "" {
		return grammar.DefaultScheme
	}
	return o.DefaultScheme
}

func (o *ParseOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// DefaultLogger returns the shared console logger. Pass it as
// [ParseOptions.Logger] to trace parse and resolve operations; documents are
// silent by default.
func DefaultLogger() *slog.Logger { return log.Def }

// DevLogger returns the shared development logger with sorted, colorized
// attribute output.
func DevLogger() *slog.Logger { return log.Dev }

// Parse decomposes a URL-like string from the given input src (string or
// []byte) into a [URL] document.
//
// Parsing is tolerant: any syntactic component not found in the input is
// recorded as absent rather than producing an error, so malformed input
// yields a document with many absent fields. The only rejected input is an
// empty one. Options are optional, default options are used if nil
// (see [ParseOptions]).
func Parse[T constraints.Byteseq](src T, opts *ParseOptions) (*URL, error) {
	if len(src) == 0 {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(ErrEmptyInput))
	}

	u := &URL{
		codec:     query.NewCodec(opts.query()),
		defScheme: opts.defaultScheme(),
		log:       opts.log(),
		original:  string(src),
	}
	u.parts = grammar.Split(u.original, "", u.defScheme)
	u.params = u.codec.Decode(u.parts.Query)

	u.log.Debug("parsed url",
		slog.String("input", u.original),
		slog.Any("url", log.CalcValue(func() any { return u.String() })),
	)
	return u, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T constraints.Byteseq](src T, opts *ParseOptions) *URL {
	return util.Must2(Parse(src, opts))
}
