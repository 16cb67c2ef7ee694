package goburi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-buri/manifest"
)

// Sentinel errors for resolution failures. Every error returned by a
// resolution matches exactly one of these with errors.Is, except context
// cancellation which surfaces as the context's own error.
var (
	// ErrCyclicDependency indicates a target that depends on itself,
	// directly or transitively.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrTargetNotFound indicates a manifest without the named library.
	ErrTargetNotFound = errors.New("target not found in manifest")

	// ErrInvalidDependency indicates a dependency string that is not a valid label.
	ErrInvalidDependency = errors.New("invalid dependency label")

	// ErrManifestUnavailable indicates a manifest that is missing or unreadable.
	ErrManifestUnavailable = errors.New("manifest unavailable")

	// ErrManifestMalformed indicates a manifest that exists but cannot be decoded.
	ErrManifestMalformed = errors.New("manifest malformed")

	// ErrRecursiveTarget indicates a recursive ("...") label where a specific
	// target is required.
	ErrRecursiveTarget = errors.New("recursive targets cannot be resolved")

	// ErrTooManyTargets indicates the resolution exceeded the configured limit.
	ErrTooManyTargets = errors.New("too many targets")
)

// CycleError is returned when a dependency cycle is detected.
type CycleError struct {
	// Target is the canonical label that was reached while still being expanded.
	Target string
	// Path is the cycle, starting and ending with Target.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency on %s: %s", e.Target, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }

// TargetNotFoundError is returned when a manifest does not declare the
// library a label names.
type TargetNotFoundError struct {
	// Target is the canonical label that was looked up.
	Target string
	// Manifest is the path of the manifest that was searched.
	Manifest string
	// Available lists the library names the manifest does declare.
	Available []string
}

func (e *TargetNotFoundError) Error() string {
	msg := fmt.Sprintf("target %s not found in %s", e.Target, e.Manifest)
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}

func (e *TargetNotFoundError) Unwrap() error { return ErrTargetNotFound }

// DependencyLabelError is returned when a declared dependency cannot be parsed.
// It matches both ErrInvalidDependency and the underlying label error.
type DependencyLabelError struct {
	// Target is the canonical label of the library declaring the dependency.
	Target string
	// Label is the dependency string as written in the manifest.
	Label string
	// Err is the *label.ParseError.
	Err error
}

func (e *DependencyLabelError) Error() string {
	return fmt.Sprintf("dependency %q of %s: %v", e.Label, e.Target, e.Err)
}

func (e *DependencyLabelError) Unwrap() []error { return []error{ErrInvalidDependency, e.Err} }

// ManifestError is returned when a target's manifest cannot be loaded.
type ManifestError struct {
	// Target is the canonical label whose manifest was requested.
	Target string
	// Dir is the slash-separated directory of the manifest.
	Dir string
	// Err is the loader error.
	Err error
}

func (e *ManifestError) Error() string {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	return fmt.Sprintf("load manifest for %s in %s: %v", e.Target, dir, e.Err)
}

// Unwrap exposes the category sentinel and the loader error.
func (e *ManifestError) Unwrap() []error {
	kind := ErrManifestUnavailable
	if errors.Is(e.Err, manifest.ErrMalformed) {
		kind = ErrManifestMalformed
	}
	return []error{kind, e.Err}
}

// UnsupportedTargetError is returned for recursive labels, which name a set
// of targets rather than one.
type UnsupportedTargetError struct {
	// Target is the label as given.
	Target string
	// DependencyOf is the declaring target, empty for the root.
	DependencyOf string
}

func (e *UnsupportedTargetError) Error() string {
	if e.DependencyOf == "" {
		return fmt.Sprintf("cannot resolve %s: %v", e.Target, ErrRecursiveTarget)
	}
	return fmt.Sprintf("cannot resolve %s (dependency of %s): %v", e.Target, e.DependencyOf, ErrRecursiveTarget)
}

func (e *UnsupportedTargetError) Unwrap() error { return ErrRecursiveTarget }

// TooManyTargetsError is returned when a resolution expands more targets
// than WithMaxTargets allows.
type TooManyTargetsError struct {
	Limit int
}

func (e *TooManyTargetsError) Error() string {
	return fmt.Sprintf("resolution exceeded %d targets", e.Limit)
}

func (e *TooManyTargetsError) Unwrap() error { return ErrTooManyTargets }
