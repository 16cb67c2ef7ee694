package label

import (
	"errors"
	"fmt"
)

// Sentinel errors for label syntax failures. Every error returned by [Parse]
// is a *ParseError that unwraps to exactly one of these.
var (
	// ErrTooShort indicates an empty label.
	ErrTooShort = errors.New("label is empty")

	// ErrMissingTargetName indicates a label ending in ':' or '/'.
	ErrMissingTargetName = errors.New("missing target name")

	// ErrIllegalCharacter indicates a character outside [A-Za-z0-9_-] or a misplaced ':'.
	ErrIllegalCharacter = errors.New("illegal character")

	// ErrDirectoriesMustHaveAName indicates an empty directory segment.
	ErrDirectoriesMustHaveAName = errors.New("directories must have a name")

	// ErrCannotStartWithASlash indicates a label beginning with '/'.
	ErrCannotStartWithASlash = errors.New("label cannot start with a slash")

	// ErrColonMustPrecedeRecursiveTarget indicates a trailing "..." not preceded by ':'.
	ErrColonMustPrecedeRecursiveTarget = errors.New("colon must precede recursive target")
)

// ParseError describes why a label could not be parsed.
type ParseError struct {
	// Label is the input that failed to parse.
	Label string
	// Kind is one of the Err* sentinels in this package.
	Kind error
	// Pos is the byte offset of the offending character, or -1 when the
	// failure is not tied to a single position.
	Pos int
}

func (e *ParseError) Error() string {
	if e.Pos < 0 || e.Pos >= len(e.Label) {
		return fmt.Sprintf("invalid label %q: %v", e.Label, e.Kind)
	}
	return fmt.Sprintf("invalid label %q: %v %q at offset %d", e.Label, e.Kind, e.Label[e.Pos], e.Pos)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func parseErr(label string, kind error, pos int) error {
	return &ParseError{Label: label, Kind: kind, Pos: pos}
}
