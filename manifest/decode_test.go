package manifest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Decoder
		wantErr bool
	}{
		{name: "BUILD.toml", want: TOML},
		{name: "pkg/BUILD.toml", want: TOML},
		{name: "custom.toml", want: TOML},
		{name: "BUILD", want: Starlark},
		{name: "a/b/BUILD.bazel", want: Starlark},
		{name: "BUILD.hcl", want: HCL},
		{name: "BUILD.json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecoderFor(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, funcPointer(tt.want), funcPointer(got))
		})
	}
}

// funcPointer identifies a DecoderFunc, which is not comparable with ==.
func funcPointer(d Decoder) uintptr {
	return reflect.ValueOf(d).Pointer()
}

func TestDecodeTOML(t *testing.T) {
	data := []byte(`
[[library]]
name = "a"
files = ["a.buri", "a_util.buri"]
dependencies = ["b:b", ":c"]
dependents = []

[[library]]
name = "c"
`)
	bf, err := Decode(&File{Path: "pkg/BUILD.toml", Data: data})
	require.NoError(t, err)

	assert.Equal(t, "pkg/BUILD.toml", bf.Path)
	require.Len(t, bf.Libraries, 2)
	assert.Equal(t, Library{
		Name:         "a",
		Files:        []string{"a.buri", "a_util.buri"},
		Dependencies: []string{"b:b", ":c"},
		Dependents:   []string{},
	}, bf.Libraries[0])

	c, ok := bf.Library("c")
	require.True(t, ok)
	assert.Empty(t, c.Files)
	assert.NotNil(t, c.Files, "absent lists decode as empty, not nil")
	assert.NotNil(t, c.Dependencies)
	assert.NotNil(t, c.Dependents)
}

func TestDecodeTOMLEmptyManifest(t *testing.T) {
	bf, err := Decode(&File{Path: "BUILD.toml", Data: nil})
	require.NoError(t, err)
	assert.Empty(t, bf.Libraries)
	assert.NotNil(t, bf.Libraries)
}

func TestDecodeTOMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{name: "syntax", data: "[[library]\nname = \"a\""},
		{name: "wrong type", data: "[[library]]\nname = \"a\"\nfiles = \"a.buri\""},
		{name: "missing name", data: "[[library]]\nfiles = [\"a.buri\"]", wantMsg: "missing name"},
		{
			name:    "misspelled key",
			data:    "[[library]]\nname = \"a\"\ndependecies = [\":b\"]",
			wantMsg: "unknown keys: library.dependecies",
		},
		{name: "unknown table", data: "[settings]\nstrict = true", wantMsg: "unknown keys: settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(&File{Path: "BUILD.toml", Data: []byte(tt.data)})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "BUILD.toml", de.Path)
		})
	}
}

func TestDecodeStarlark(t *testing.T) {
	data := []byte(`
load("//rules:defs.bzl", "something")

library(
    name = "a",
    files = ["a.buri"],
    dependencies = ["b:b"],
)

other_rule(name = "ignored")

library(name = "b")
`)
	bf, err := Decode(&File{Path: "BUILD", Data: data})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, bf.Names())
	a, _ := bf.Library("a")
	assert.Equal(t, []string{"a.buri"}, a.Files)
	assert.Equal(t, []string{"b:b"}, a.Dependencies)
	b, _ := bf.Library("b")
	assert.Equal(t, []string{}, b.Dependencies)
}

func TestDecodeStarlarkErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{name: "syntax", data: `library(name = "a"`},
		{
			name:    "unnamed library",
			data:    `library(files = ["a.buri"])`,
			wantMsg: "BUILD.bazel:1: library without a name",
		},
		{
			name:    "identifier in dependencies",
			data:    "DEP = \":b\"\n\nlibrary(\n    name = \"a\",\n    dependencies = [\":c\", DEP],\n)",
			wantMsg: `BUILD.bazel:3: library "a": attribute "dependencies": element 1 is identifier DEP`,
		},
		{
			name:    "string files",
			data:    `library(name = "a", files = "a.buri")`,
			wantMsg: `attribute "files": want a list of strings, got a string`,
		},
		{
			name:    "dependencies variable",
			data:    `library(name = "a", dependencies = DEPS)`,
			wantMsg: `attribute "dependencies": want a list of strings, got identifier DEPS`,
		},
		{
			name:    "dependents concatenation",
			data:    `library(name = "a", dependents = [":x"] + [":y"])`,
			wantMsg: `attribute "dependents"`,
		},
		{
			name:    "misspelled attribute",
			data:    `library(name = "a", dependecies = [":b"])`,
			wantMsg: `unknown attribute "dependecies"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf, err := Decode(&File{Path: "BUILD.bazel", Data: []byte(tt.data)})
			require.Error(t, err)
			assert.Nil(t, bf)
			assert.ErrorIs(t, err, ErrMalformed)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "BUILD.bazel", de.Path)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeHCL(t *testing.T) {
	data := []byte(`
library "a" {
  files        = ["a.buri"]
  dependencies = ["b:b", ":c"]
}

library "c" {}
`)
	bf, err := Decode(&File{Path: "BUILD.hcl", Data: data})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, bf.Names())
	a, _ := bf.Library("a")
	assert.Equal(t, []string{"a.buri"}, a.Files)
	assert.Equal(t, []string{"b:b", ":c"}, a.Dependencies)
	c, _ := bf.Library("c")
	assert.Equal(t, []string{}, c.Files)
}

func TestDecodeHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "syntax", data: `library "a" {`},
		{name: "missing label", data: `library { files = [] }`},
		{name: "unknown attribute", data: `library "a" { sources = [] }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(&File{Path: "BUILD.hcl", Data: []byte(tt.data)})
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode(&File{Path: "BUILD.yaml", Data: []byte("library: []")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestValidate(t *testing.T) {
	bf := &BuildFile{Path: "BUILD.toml", Libraries: []Library{{Name: "a"}, {Name: "b"}}}
	assert.NoError(t, bf.Validate())

	bf.Libraries = append(bf.Libraries, Library{Name: "a"}, Library{})
	err := bf.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate library "a"`)
	assert.Contains(t, err.Error(), "library #4 has no name")
}
