package label

import (
	"testing"
)

func TestTarget_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo", "foo:foo"},
		{"foo:bar", "foo:bar"},
		{"foo/bar", "foo/bar:bar"},
		{"foo/bar:test", "foo/bar:test"},
		{":test", ":test"},
		{"...", ":..."},
		{":...", ":..."},
		{"foo/bar:...", "foo/bar:..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := MustParse(tt.input).String()
			if got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTarget_RoundTrip(t *testing.T) {
	labels := []string{
		"foo", "foo:bar", "foo/bar/baz", "foo/bar:baz", ":hello",
		"...", ":...", "a/b/c:...", "x_1/y-2:z",
	}

	for _, s := range labels {
		t.Run(s, func(t *testing.T) {
			first := MustParse(s)
			canonical := first.String()

			second, err := Parse(canonical)
			if err != nil {
				t.Fatalf("Parse(%q) of canonical form failed: %v", canonical, err)
			}
			if second.String() != canonical {
				t.Errorf("canonical form not stable: %q -> %q", canonical, second.String())
			}
			if !first.Equal(second) {
				t.Errorf("Parse(%q) and Parse(%q) are not equal", s, canonical)
			}
		})
	}
}

func TestTarget_CanonicalInputUnchanged(t *testing.T) {
	for _, s := range []string{"foo:foo", "foo/bar:baz", ":x", "a/b:..."} {
		if got := MustParse(s).String(); got != s {
			t.Errorf("Parse(%q).String() = %q, want input unchanged", s, got)
		}
	}
}

func TestTarget_ManifestPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo", "foo/BUILD.toml"},
		{"foo:bar", "foo/BUILD.toml"},
		{"foo/bar", "foo/bar/BUILD.toml"},
		{":bar", "BUILD.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := MustParse(tt.input).ManifestPath("BUILD.toml")
			if got != tt.want {
				t.Errorf("ManifestPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTarget_Equal(t *testing.T) {
	if !MustParse("foo").Equal(MustParse("foo:foo")) {
		t.Error("foo and foo:foo should be equal")
	}
	if MustParse("foo:bar").Equal(MustParse("foo/bar")) {
		t.Error("foo:bar and foo/bar should differ")
	}
	if MustParse("foo:...").Equal(MustParse("foo")) {
		t.Error("recursive and specific targets should differ")
	}
	if MustParse("foo").Key() != MustParse("foo:foo").Key() {
		t.Error("equal targets should share a key")
	}
}

func TestTarget_DirectoriesIsCopy(t *testing.T) {
	target := MustParse("foo/bar:baz")
	dirs := target.Directories()
	dirs[0] = "mutated"

	if target.Dir() != "foo/bar" {
		t.Errorf("Dir() = %q after mutating Directories() result, want %q", target.Dir(), "foo/bar")
	}
}

func TestTarget_Zero(t *testing.T) {
	var zero Target
	if !zero.IsEmpty() {
		t.Error("zero Target should be empty")
	}
	if MustParse("foo").IsEmpty() {
		t.Error("parsed Target should not be empty")
	}
	if got := MustParse("foo:bar").Raw(); got != "foo:bar" {
		t.Errorf("Raw() = %q, want %q", got, "foo:bar")
	}
}
