package query

import (
	"fmt"
	"strconv"
)

// Value is a node of a parameter tree. It has exactly three variants:
// [Scalar] for plain strings, [List] for ordered sequences and [*Tree] for
// nested mappings. Operations dispatch on the variant with a type switch.
type Value interface {
	// Clone returns a deep copy of the value.
	Clone() Value
	// Equal compares this value with another for structural equality.
	Equal(val any) bool

	value()
}

// Scalar is the string variant of [Value].
type Scalar string

func (Scalar) value() {}

// Clone returns the scalar itself, scalars are immutable.
func (s Scalar) Clone() Value { return s }

// String returns the scalar as a plain string.
func (s Scalar) String() string { return string(s) }

// Equal compares this scalar with another scalar or plain string.
func (s Scalar) Equal(val any) bool {
	switch v := val.(type) {
	case Scalar:
		return s == v
	case string:
		return string(s) == v
	default:
		return false
	}
}

// List is the ordered-sequence variant of [Value].
type List []Value

func (List) value() {}

// Clone returns a deep copy of the list.
func (l List) Clone() Value {
	if l == nil {
		return List(nil)
	}
	l2 := make(List, len(l))
	for i, v := range l {
		l2[i] = v.Clone()
	}
	return l2
}

// Equal compares this list with another elementwise, order matters.
func (l List) Equal(val any) bool {
	other, ok := val.(List)
	if !ok {
		return false
	}
	if len(l) != len(other) {
		return false
	}
	for i, v := range l {
		if !v.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Val coerces an arbitrary Go value into a [Value].
// Strings and string slices map onto [Scalar] and [List], numeric and bool
// values are formatted, [fmt.Stringer] values are rendered, a nil yields an
// empty scalar and anything else falls back to fmt.Sprint.
func Val(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case string:
		return Scalar(v)
	case []string:
		l := make(List, len(v))
		for i, s := range v {
			l[i] = Scalar(s)
		}
		return l
	case []Value:
		return List(v)
	case int:
		return Scalar(strconv.Itoa(v))
	case int64:
		return Scalar(strconv.FormatInt(v, 10))
	case uint64:
		return Scalar(strconv.FormatUint(v, 10))
	case float64:
		return Scalar(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return Scalar(strconv.FormatBool(v))
	case fmt.Stringer:
		return Scalar(v.String())
	case nil:
		return Scalar("")
	default:
		return Scalar(fmt.Sprint(v))
	}
}
