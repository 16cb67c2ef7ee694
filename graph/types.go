package graph

import (
	"strings"

	"github.com/albertocavalcante/go-buri/label"
)

// Graph is the dependency graph of one resolution.
// It supports traversal in both directions (dependencies and dependents).
type Graph struct {
	// Root is the canonical label of the target the resolution started from.
	Root string

	// Targets contains all nodes in the graph, keyed by canonical label.
	Targets map[string]*Node

	// Order lists the keys in the order they were added, which for a
	// resolver result is the build order.
	Order []string
}

// Node is one target in the graph.
type Node struct {
	// Key is the canonical label of the target.
	Key string

	// Target is the parsed label.
	Target label.Target

	// Files are the source files declared for the target, in manifest order.
	Files []string

	// Dependencies are the direct dependencies, in declaration order.
	Dependencies []string

	// Dependents are targets that directly depend on this one (reverse edges).
	Dependents []string

	// IsRoot is true for the resolution root.
	IsRoot bool
}

// DependencyChain is a path of targets from one target to another.
type DependencyChain struct {
	Path []string
}

// String returns the chain joined with arrows.
func (c DependencyChain) String() string {
	return strings.Join(c.Path, " -> ")
}

// Stats provides statistics about the graph.
type Stats struct {
	// TotalTargets is the number of targets in the graph, root included.
	TotalTargets int

	// TotalFiles is the number of source files across all targets.
	TotalFiles int

	// DirectDependencies is the number of direct dependencies of the root.
	DirectDependencies int

	// TransitiveDependencies counts targets that are neither the root nor a
	// direct dependency of it.
	TransitiveDependencies int

	// Edges is the number of dependency edges.
	Edges int

	// MaxDepth is the length of the longest dependency chain from the root.
	MaxDepth int
}
