package grammar_test

import (
	"testing"

	"github.com/weburi/urlkit/internal/grammar"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		cb   func(byte) bool
		want string
	}{
		{"empty", "", nil, ""},
		{"no escape", "abc-qwe~", nil, "abc-qwe~"},
		{"triplet passthrough", "abc-%2Bqwe", nil, "abc-%2Bqwe"},
		{"escape all", "abc++qwe!", nil, "abc%2B%2Bqwe%21"},
		{"escape some", "abc+?qwe", func(c byte) bool { return c != '+' && !grammar.IsCharUnreserved(c) }, "abc+%3Fqwe"},
		{"space", "a b", nil, "a%20b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Escape(c.str, c.cb), c.want; got != want {
				t.Errorf("grammar.Escape(%q, %p) = %q, want %q", c.str, c.cb, got, want)
			}
		})
	}
}

func TestEscapeStrict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "abc-qwe~", "abc-qwe~"},
		{"no triplet passthrough", "abc%2B", "abc%252B"},
		{"percent", "100%", "100%25"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := grammar.EscapeStrict(c.str, func(c byte) bool { return !grammar.IsCharUnreserved(c) })
			if got != c.want {
				t.Errorf("grammar.EscapeStrict(%q) = %q, want %q", c.str, got, c.want)
			}
		})
	}
}

func TestEscapeForm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"space to plus", "a b c", "a+b+c"},
		{"tilde escaped", "a~b", "a%7Eb"},
		{"percent", "50%", "50%25"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := grammar.EscapeForm(c.str, func(c byte) bool { return !grammar.IsFormCharUnreserved(c) })
			if got != c.want {
				t.Errorf("grammar.EscapeForm(%q) = %q, want %q", c.str, got, c.want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape all", "abc%E4%b8%96", "abc世"}, //nolint:gosmopolitan
		{"plus kept", "a+b", "a+b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unescape(c.str), c.want; got != want {
				t.Errorf("grammar.Unescape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnescapeQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"plus to space", "a+b+c", "a b c"},
		{"triplets", "a%20b%2Bc", "a b+c"},
		{"dangling percent", "a%2", "a%2"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.UnescapeQuery(c.str), c.want; got != want {
				t.Errorf("grammar.UnescapeQuery(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}
