package buildutil

import (
	"slices"
	"strings"
	"testing"

	"github.com/bazelbuild/buildtools/build"
)

func parseCall(t *testing.T, content string) *build.CallExpr {
	t.Helper()
	f, err := build.ParseBuild("BUILD", []byte(content))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Stmt) == 0 {
		t.Fatal("no statements parsed")
	}
	call, ok := f.Stmt[0].(*build.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", f.Stmt[0])
	}
	return call
}

func TestCallName(t *testing.T) {
	if got := CallName(parseCall(t, `library(name = "a")`)); got != "library" {
		t.Errorf("CallName() = %q, want %q", got, "library")
	}
	if got := CallName(parseCall(t, `native.library(name = "a")`)); got != "" {
		t.Errorf("CallName() = %q, want empty for dotted callee", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		attr  string
		want  string
	}{
		{"name", `library(name = "net")`, "name", "net"},
		{"second keyword", `library(files = [], name = "net")`, "name", "net"},
		{"missing", `library(files = ["a.buri"])`, "name", ""},
		{"not a string", `library(name = 42)`, "name", ""},
		{"identifier", `library(name = NAME)`, "name", ""},
		{"positional ignored", `library("net")`, "name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(parseCall(t, tt.input), tt.attr); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.attr, got, tt.want)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{
			name:  "string list",
			input: `library(files = ["a.buri", "b.buri"])`,
			want:  []string{"a.buri", "b.buri"},
		},
		{
			name:  "empty list",
			input: `library(files = [])`,
			want:  []string{},
		},
		{
			name:  "missing",
			input: `library(name = "a")`,
			want:  nil,
		},
		{
			name:    "identifier element",
			input:   `library(files = ["a.buri", SRC])`,
			wantErr: `element 1 is identifier SRC`,
		},
		{
			name:    "number element",
			input:   `library(files = [1])`,
			wantErr: `element 0 is literal 1`,
		},
		{
			name:    "string instead of list",
			input:   `library(files = "a.buri")`,
			wantErr: `want a list of strings, got a string`,
		},
		{
			name:    "identifier instead of list",
			input:   `library(files = SRCS)`,
			wantErr: `got identifier SRCS`,
		},
		{
			name:    "list concatenation",
			input:   `library(files = ["a.buri"] + ["b.buri"])`,
			wantErr: `want a list of strings`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringList(parseCall(t, tt.input), "files")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("StringList() error = %v, want containing %q", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("StringList() = %#v on error, want nil", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("StringList() error = %v", err)
			}
			if !slices.Equal(got, tt.want) || (got == nil) != (tt.want == nil) {
				t.Errorf("StringList() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	call := parseCall(t, `library("positional", name = "a", files = [], dependecies = [])`)
	got := Keywords(call)
	want := []string{"name", "files", "dependecies"}
	if !slices.Equal(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
	if got := Keywords(parseCall(t, `library()`)); got != nil {
		t.Errorf("Keywords() = %v, want nil", got)
	}
}
