package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for manifest failures.
var (
	// ErrNotFound indicates no manifest exists for a directory.
	ErrNotFound = errors.New("manifest not found")

	// ErrMalformed indicates a manifest that exists but cannot be decoded.
	ErrMalformed = errors.New("malformed manifest")

	// ErrUnknownFormat indicates a manifest file name with no registered decoder.
	ErrUnknownFormat = errors.New("unknown manifest format")
)

// NotFoundError is returned when none of the candidate manifest files exist.
type NotFoundError struct {
	// Dir is the slash-separated directory that was searched.
	Dir string
	// Tried lists the paths probed, in order.
	Tried []string
}

func (e *NotFoundError) Error() string {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	return fmt.Sprintf("no manifest in %s (tried %s)", dir, strings.Join(e.Tried, ", "))
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DecodeError is returned when manifest content cannot be decoded.
type DecodeError struct {
	// Path is the manifest that failed.
	Path string
	// Err is the underlying parser error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode manifest %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformed) match.
func (e *DecodeError) Is(target error) bool { return target == ErrMalformed }
