package manifest

import (
	"context"

	"github.com/cespare/xxhash/v2"
)

// Loader returns the decoded manifest for a directory.
//
// Errors match ErrNotFound when the directory has no manifest and
// ErrMalformed when it cannot be decoded.
type Loader interface {
	Load(ctx context.Context, dir string) (*BuildFile, error)
}

// Compile-time interface compliance check
var _ Loader = (*DecodingLoader)(nil)

// DecodingLoader reads manifests from a Source and decodes them by file name.
type DecodingLoader struct {
	src    Source
	strict bool
}

// LoaderOption configures a DecodingLoader.
type LoaderOption func(*DecodingLoader)

// WithValidation makes the loader reject manifests that fail
// BuildFile.Validate, such as duplicate library names.
func WithValidation() LoaderOption {
	return func(l *DecodingLoader) {
		l.strict = true
	}
}

// NewLoader creates a loader over src.
func NewLoader(src Source, opts ...LoaderOption) *DecodingLoader {
	l := &DecodingLoader{src: src}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens and decodes the manifest of dir.
func (l *DecodingLoader) Load(ctx context.Context, dir string) (*BuildFile, error) {
	f, err := l.src.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	bf, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if l.strict {
		if err := bf.Validate(); err != nil {
			return nil, &DecodeError{Path: f.Path, Err: err}
		}
	}
	bf.Digest = xxhash.Sum64(f.Data)
	return bf, nil
}
