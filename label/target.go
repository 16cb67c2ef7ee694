// Package label provides the target label language used to name buildable units.
//
// A label names one library inside a directory tree. Targets are immutable and
// validated at construction time; use [Parse] (or [MustParse] for constants and
// tests) to obtain one. The zero Target is not a valid label.
//
// # Syntax
//
//	foo              directory foo, target foo (implicit name)
//	foo/bar          directory foo/bar, target bar
//	foo/bar:baz      directory foo/bar, target baz
//	:baz             workspace root, target baz
//	...              every target in the current directory (recursive)
//	foo/bar:...      every target under foo/bar (recursive)
//
// Directory segments and target names may only contain ASCII letters, digits,
// '_' and '-'.
package label

import (
	"path"
	"slices"
	"strings"
)

// RecursiveName is the name component of a recursive target.
const RecursiveName = "..."

// Target identifies one buildable unit: a directory path and a name inside it.
type Target struct {
	raw         string
	directories []string
	name        string
	recursive   bool
}

// Directories returns the directory path segments. The result is a copy.
func (t Target) Directories() []string {
	return slices.Clone(t.directories)
}

// Dir returns the slash-joined directory path, or "" for the workspace root.
func (t Target) Dir() string {
	return strings.Join(t.directories, "/")
}

// Name returns the target name, or [RecursiveName] for recursive targets.
func (t Target) Name() string {
	if t.recursive {
		return RecursiveName
	}
	return t.name
}

// IsRecursive reports whether the target is a "..." wildcard.
func (t Target) IsRecursive() bool {
	return t.recursive
}

// IsEmpty returns true for the zero Target.
func (t Target) IsEmpty() bool {
	return t.raw == "" && t.name == "" && !t.recursive
}

// Raw returns the label text the target was parsed from.
func (t Target) Raw() string {
	return t.raw
}

// String returns the canonical form "<dir>/<dir>:<name>".
// Parsing a canonical string yields an equal Target whose String is identical.
func (t Target) String() string {
	return t.Dir() + ":" + t.Name()
}

// Key returns the identity used to compare targets in sets and maps.
func (t Target) Key() string {
	return t.String()
}

// Equal reports whether two targets name the same unit.
func (t Target) Equal(other Target) bool {
	return t.recursive == other.recursive &&
		t.name == other.name &&
		slices.Equal(t.directories, other.directories)
}

// ManifestPath returns the slash-separated location of fileName inside the
// target's directory.
func (t Target) ManifestPath(fileName string) string {
	return path.Join(t.Dir(), fileName)
}
