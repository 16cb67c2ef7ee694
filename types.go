package goburi

import (
	"github.com/albertocavalcante/go-buri/label"
)

// TargetFiles is one entry of a build order.
type TargetFiles struct {
	// Target is the resolved label.
	Target label.Target

	// Files are the library's source files in manifest order.
	Files []string

	// Dependencies are the parsed direct dependencies in declaration order.
	Dependencies []label.Target
}

// String returns the canonical label of the entry.
func (tf TargetFiles) String() string {
	return tf.Target.String()
}

// Files flattens a build order into the list of source files, dependencies first.
func Files(order []TargetFiles) []string {
	var n int
	for _, tf := range order {
		n += len(tf.Files)
	}
	files := make([]string, 0, n)
	for _, tf := range order {
		files = append(files, tf.Files...)
	}
	return files
}

// Labels returns the canonical labels of a build order.
func Labels(order []TargetFiles) []string {
	labels := make([]string, len(order))
	for i, tf := range order {
		labels[i] = tf.Target.String()
	}
	return labels
}

// ProgressEventType identifies a resolution progress event.
type ProgressEventType string

const (
	// ProgressTargetExpanded is reported when a target's manifest entry is
	// found and its dependencies are about to be visited.
	ProgressTargetExpanded ProgressEventType = "target_expanded"

	// ProgressTargetResolved is reported when a target is appended to the
	// build order.
	ProgressTargetResolved ProgressEventType = "target_resolved"

	// ProgressManifestLoaded is reported the first time a directory's
	// manifest is loaded during a resolution.
	ProgressManifestLoaded ProgressEventType = "manifest_loaded"
)

// ProgressEvent reports resolution progress.
type ProgressEvent struct {
	Type ProgressEventType

	// Target is the canonical label, or empty for manifest events.
	Target string

	// Manifest is the manifest path for ProgressManifestLoaded.
	Manifest string

	// Depth is the number of targets being expanded, the event's own included.
	Depth int
}
