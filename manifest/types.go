package manifest

import (
	"fmt"
	"strings"
)

// BuildFile is the decoded content of one directory's manifest.
// Values returned by a Loader are shared and must not be modified.
type BuildFile struct {
	// Libraries are the build units declared in the manifest, in file order.
	Libraries []Library `toml:"library"`

	// Path is the slash-separated manifest location relative to the source root.
	Path string `toml:"-"`

	// Digest is the xxhash of the raw manifest bytes.
	Digest uint64 `toml:"-"`
}

// Library is one build unit inside a manifest.
type Library struct {
	// Name is unique within the manifest.
	Name string `toml:"name"`

	// Files are the source files of the library.
	Files []string `toml:"files"`

	// Dependencies are labels of the libraries this one needs.
	Dependencies []string `toml:"dependencies"`

	// Dependents are labels of libraries that need this one. Informational.
	Dependents []string `toml:"dependents"`
}

// Library returns the library with the given name.
func (b *BuildFile) Library(name string) (*Library, bool) {
	for i := range b.Libraries {
		if b.Libraries[i].Name == name {
			return &b.Libraries[i], true
		}
	}
	return nil, false
}

// Names returns the library names in declaration order.
func (b *BuildFile) Names() []string {
	names := make([]string, len(b.Libraries))
	for i, lib := range b.Libraries {
		names[i] = lib.Name
	}
	return names
}

// Validate checks that every library has a name and that names are unique.
func (b *BuildFile) Validate() error {
	seen := make(map[string]bool, len(b.Libraries))
	var problems []string
	for i, lib := range b.Libraries {
		switch {
		case lib.Name == "":
			problems = append(problems, fmt.Sprintf("library #%d has no name", i+1))
		case seen[lib.Name]:
			problems = append(problems, fmt.Sprintf("duplicate library %q", lib.Name))
		}
		seen[lib.Name] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid manifest: %s", strings.Join(problems, "; "))
	}
	return nil
}

// normalize replaces absent lists with empty ones so older manifests that
// omit optional fields look the same as newer ones.
func (b *BuildFile) normalize() {
	if b.Libraries == nil {
		b.Libraries = []Library{}
	}
	for i := range b.Libraries {
		lib := &b.Libraries[i]
		if lib.Files == nil {
			lib.Files = []string{}
		}
		if lib.Dependencies == nil {
			lib.Dependencies = []string{}
		}
		if lib.Dependents == nil {
			lib.Dependents = []string{}
		}
	}
}
