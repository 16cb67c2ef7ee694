package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileName is the default manifest file name.
const FileName = "BUILD.toml"

// DefaultFileNames are probed in order when a source is created without
// explicit names.
var DefaultFileNames = []string{FileName, "BUILD.bazel", "BUILD", "BUILD.hcl"}

// File is the raw content of one manifest.
type File struct {
	// Path is slash-separated and relative to the source root.
	Path string
	Data []byte
}

// Source returns the raw manifest for a directory.
//
// Implementations must return an error matching ErrNotFound when the
// directory has no manifest. A Source used by concurrent resolutions must be
// safe for concurrent use.
type Source interface {
	Open(ctx context.Context, dir string) (*File, error)
}

// Compile-time interface compliance check
var _ Source = (*FSSource)(nil)

// FSSource reads manifests from an afero filesystem.
type FSSource struct {
	fs    afero.Fs
	root  string
	names []string
}

// NewFSSource creates a source rooted at root. Each directory is searched
// for the given file names in order; with no names, DefaultFileNames is used.
func NewFSSource(fsys afero.Fs, root string, names ...string) *FSSource {
	if len(names) == 0 {
		names = DefaultFileNames
	}
	return &FSSource{
		fs:    fsys,
		root:  root,
		names: append([]string(nil), names...),
	}
}

// Root returns the directory manifests are resolved against.
func (s *FSSource) Root() string {
	return s.root
}

// Open reads the first existing manifest in dir.
func (s *FSSource) Open(ctx context.Context, dir string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tried := make([]string, 0, len(s.names))
	for _, name := range s.names {
		rel := path.Join(dir, name)
		full := filepath.Join(s.root, filepath.FromSlash(rel))

		data, err := afero.ReadFile(s.fs, full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				tried = append(tried, rel)
				continue
			}
			return nil, fmt.Errorf("read manifest %s: %w", rel, err)
		}
		return &File{Path: rel, Data: data}, nil
	}

	return nil, &NotFoundError{Dir: dir, Tried: tried}
}
