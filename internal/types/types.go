// Package types contains common types used across the module.
package types

import (
	"io"
)

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// Compact is a boolean flag that is used to render a type in compact form.
	Compact bool `json:"compact,omitempty"`
}

// ValidFlag reports whether a value carries any substance.
type ValidFlag interface {
	IsValid() bool
}

// Equalable compares a value with another for equality.
type Equalable interface {
	Equal(val any) bool
}

// Cloneable returns a deep copy of a value.
type Cloneable[T any] interface {
	Clone() T
}
