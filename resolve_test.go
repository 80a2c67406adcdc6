package urlkit_test

import (
	"testing"

	"github.com/weburi/urlkit"
	"github.com/weburi/urlkit/query"
)

func TestURL_Relative_Path(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{
			"dot segments collapse",
			"https://example.com/dir/sub/file.php",
			"../../hello.php",
			"/hello.php",
		},
		{
			"single parent",
			"https://example.com/dir/sub/file.php",
			"../other.php",
			"/dir/other.php",
		},
		{
			"absolute replacement verbatim",
			"https://example.com/dir/sub/file.php",
			"/new/path.txt",
			"/new/path.txt",
		},
		{
			"sibling",
			"https://example.com/dir/file.php",
			"page.php",
			"/dir/page.php",
		},
		{
			"leading dot-slash stripped",
			"https://example.com/dir/file.php",
			"./page.php",
			"/dir/page.php",
		},
		{
			"surrounding whitespace trimmed",
			"https://example.com/dir/file.php",
			"  page.php  ",
			"/dir/page.php",
		},
		{
			"parent beyond root stays rooted",
			"https://example.com/a",
			"../../x",
			"/x",
		},
		{
			"collapse to bare root",
			"https://example.com/a/b",
			"..",
			"/",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := urlkit.MustParse(c.base, nil)
			u2 := u.Relative(c.ref)
			if u2 != u {
				t.Fatalf("u.Relative(%q) returned a new instance, want the receiver", c.ref)
			}
			if got := u.Path(); got != c.want {
				t.Errorf("u.Relative(%q) path = %q, want %q", c.ref, got, c.want)
			}
		})
	}
}

func TestURL_Relative_QueryAndFragmentTail(t *testing.T) {
	t.Parallel()

	u := urlkit.MustParse("https://example.com/dir/file.php?old=1#old", nil)
	u.Relative("page.php?x=1&y=2#top")

	if got, want := u.Path(), "/dir/page.php"; got != want {
		t.Errorf("u.Path() = %q, want %q", got, want)
	}
	if got, want := u.Query(), "x=1&y=2"; got != want {
		t.Errorf("u.Query() = %q, want %q", got, want)
	}
	if frag, ok := u.Fragment(); !ok || frag != "top" {
		t.Errorf("u.Fragment() = %q, %v, want \"top\", true", frag, ok)
	}
	if u.Has("old") {
		t.Error(`u.Has("old") = true, want false: params must be replaced`)
	}

	// a query tail without a fragment clears the old fragment
	u.Relative("next.php?z=3")
	if _, ok := u.Fragment(); ok {
		t.Error("u.Fragment() present after fragmentless query tail, want absent")
	}

	// no tail at all leaves query and fragment untouched
	u.SetFragment("keep")
	u.Relative("last.php")
	if got, want := u.Query(), "z=3"; got != want {
		t.Errorf("u.Query() = %q, want %q", got, want)
	}
	if frag, _ := u.Fragment(); frag != "keep" {
		t.Errorf("u.Fragment() = %q, want %q", frag, "keep")
	}
}

func TestURL_Relative_FullURL(t *testing.T) {
	t.Parallel()

	u := urlkit.MustParse("http://example.com/a?x=1", nil)
	u2 := u.Relative("://cdn.example.org/asset.js")

	if u2 == u {
		t.Fatal("u.Relative(full url) returned the receiver, want a new instance")
	}
	if got, want := u2.String(), "http://cdn.example.org/asset.js"; got != want {
		t.Errorf("u2.String() = %q, want %q", got, want)
	}
	// the original document is untouched
	if got, want := u.String(), "http://example.com/a?x=1"; got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}

	u3 := u.Relative("ftp://files.example.org/pub")
	if got, want := u3.String(), "ftp://files.example.org/pub"; got != want {
		t.Errorf("u3.String() = %q, want %q", got, want)
	}
}

func TestURL_Relative_SchemeAndAuthority(t *testing.T) {
	t.Parallel()

	u := urlkit.MustParse("http://example.com:8080/a/b?x=1", nil)
	u2 := u.Relative(":///new/path?y=2")

	if u2 == u {
		t.Fatal("u.Relative(\":///\") returned the receiver, want a new instance")
	}
	if got, want := u2.String(), "http://example.com:8080/new/path?y=2"; got != want {
		t.Errorf("u2.String() = %q, want %q", got, want)
	}
	if v, _ := u2.Get("y"); !v.Equal(query.Scalar("2")) {
		t.Errorf(`u2.Get("y") = %#v, want scalar "2"`, v)
	}
}

func TestURL_Relative_ZeroValue(t *testing.T) {
	t.Parallel()

	// a failed UnmarshalText deliberately leaves the zero value behind;
	// the document must stay usable
	var u urlkit.URL
	if err := u.UnmarshalText(nil); err == nil {
		t.Fatal("u.UnmarshalText(nil) error = nil, want non-nil")
	}

	u2 := u.Relative("docs/index.html")
	if got, want := u2.Path(), "/docs/index.html"; got != want {
		t.Errorf("u2.Path() = %q, want %q", got, want)
	}

	u3 := u.Relative("://example.com/x")
	if got, want := u3.String(), "https://example.com/x"; got != want {
		t.Errorf("u3.String() = %q, want %q", got, want)
	}
}

func TestURL_Relative_KeepsCodecOptions(t *testing.T) {
	t.Parallel()

	u := urlkit.MustParse("http://example.com/?q=a+b", &urlkit.ParseOptions{
		Query: query.Options{Encoding: query.EncodingRFC3986},
	})
	u2 := u.Relative("://other.org/?r=c d")

	if got, want := u2.Query(), "r=c%20d"; got != want {
		t.Errorf("u2.Query() = %q, want %q", got, want)
	}
}
