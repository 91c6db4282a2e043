package rdf

import "testing"

func TestResolve(t *testing.T) {
	const base = "http://a/b/c/d;p?q"

	// RFC 3986 section 5.4.
	tests := []struct {
		ref  string
		want string
	}{
		{"g:h", "g:h"},
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"g#s", "http://a/b/c/g#s"},
		{"", "http://a/b/c/d;p?q"},
		{".", "http://a/b/c/"},
		{"./", "http://a/b/c/"},
		{"..", "http://a/b/"},
		{"../g", "http://a/b/g"},
		{"../..", "http://a/"},
		{"../../g", "http://a/g"},
		{"../../../g", "http://a/g"},
		{"/./g", "http://a/g"},
		{"g.", "http://a/b/c/g."},
		{"..g", "http://a/b/c/..g"},
		{"./g/.", "http://a/b/c/g/"},
		{"g;x=1/../y", "http://a/b/c/y"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := Resolve(base, tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolve_KeepsNonASCII(t *testing.T) {
	got := Resolve("http://example.com/base/", "Ünïcode item")
	if got != "http://example.com/base/Ünïcode item" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolve_EmptyBase(t *testing.T) {
	if got := Resolve("", "relative/x"); got != "relative/x" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestIsAbsolute(t *testing.T) {
	if !IsAbsolute("http://x/y") {
		t.Error("http IRI should be absolute")
	}
	if IsAbsolute("/item/1") {
		t.Error("path should not be absolute")
	}
}
