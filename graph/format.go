package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// TargetTree is the nested JSON form of a graph, rooted at the resolution root.
type TargetTree struct {
	Key          string       `json:"key"`
	Files        []string     `json:"files,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
	Root         bool         `json:"root,omitempty"`
}

// Dependency is one edge in the nested JSON form.
type Dependency struct {
	Key          string       `json:"key"`
	Files        []string     `json:"files,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
	Cycles       []Dependency `json:"cycles,omitempty"`

	// Unexpanded marks a target whose subtree was already printed.
	Unexpanded bool `json:"unexpanded,omitempty"`
}

// ToJSON outputs the graph as a nested tree starting at the root.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g.toTree(), "", "  ")
}

func (g *Graph) toTree() *TargetTree {
	rootNode := g.Targets[g.Root]
	if rootNode == nil {
		return &TargetTree{}
	}

	cycleKeys := make(map[string]bool)
	for _, cycle := range g.FindCycles() {
		for _, key := range cycle {
			cycleKeys[key] = true
		}
	}

	visited := map[string]bool{g.Root: true}
	return &TargetTree{
		Key:          g.Root,
		Files:        rootNode.Files,
		Root:         true,
		Dependencies: g.buildTreeDeps(rootNode, visited, cycleKeys),
	}
}

func (g *Graph) buildTreeDeps(node *Node, visited, cycleKeys map[string]bool) []Dependency {
	deps := make([]Dependency, 0, len(node.Dependencies))

	for _, depKey := range node.Dependencies {
		if visited[depKey] {
			deps = append(deps, Dependency{Key: depKey, Unexpanded: true})
			continue
		}
		visited[depKey] = true

		dep := Dependency{Key: depKey}
		depNode := g.Targets[depKey]
		if depNode != nil {
			dep.Files = depNode.Files
		}
		switch {
		case cycleKeys[depKey]:
			dep.Cycles = []Dependency{{Key: depKey}}
		case depNode != nil:
			dep.Dependencies = g.buildTreeDeps(depNode, visited, cycleKeys)
		}
		deps = append(deps, dep)
	}

	return deps
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, key := range g.Order {
		node := g.Targets[key]
		attrs := fmt.Sprintf("label=%q", fmt.Sprintf("%s\n%d files", key, len(node.Files)))
		if node.IsRoot {
			attrs += ", style=bold"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", key, attrs)
	}

	buf.WriteString("\n")

	for _, key := range g.Order {
		for _, dep := range g.Targets[key].Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", key, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable summary and dependency tree.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Dependency Graph (root: %s)\n", g.Root)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Total targets: %d\n", stats.TotalTargets)
	fmt.Fprintf(&buf, "Total files: %d\n", stats.TotalFiles)
	fmt.Fprintf(&buf, "Direct dependencies: %d\n", stats.DirectDependencies)
	fmt.Fprintf(&buf, "Transitive dependencies: %d\n", stats.TransitiveDependencies)
	fmt.Fprintf(&buf, "Max depth: %d\n", stats.MaxDepth)
	buf.WriteString("\n")

	buf.WriteString("Dependency Tree:\n")
	g.printTree(&buf, g.Root, "", true, make(map[string]bool))

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, key, prefix string, isLast bool, visited map[string]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		buf.WriteString(key)
	} else {
		buf.WriteString(prefix + connector + key)
	}

	if visited[key] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[key] = true
	defer func() { visited[key] = false }()

	node := g.Targets[key]
	if node == nil {
		return
	}

	for i, dep := range node.Dependencies {
		isLastChild := i == len(node.Dependencies)-1
		childPrefix := prefix
		if prefix != "" {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		} else {
			childPrefix = " "
		}
		g.printTree(buf, dep, childPrefix, isLastChild, visited)
	}
}

// TargetInfo is one entry in the flat target list.
type TargetInfo struct {
	Label      string   `json:"label"`
	Files      []string `json:"files"`
	RequiredBy []string `json:"required_by,omitempty"`
}

// ToTargetList outputs every target except the root, sorted by label.
func (g *Graph) ToTargetList() []TargetInfo {
	targets := make([]TargetInfo, 0, len(g.Targets))

	for key, node := range g.Targets {
		if key == g.Root {
			continue
		}
		targets = append(targets, TargetInfo{
			Label:      key,
			Files:      node.Files,
			RequiredBy: append([]string(nil), node.Dependents...),
		})
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Label < targets[j].Label
	})
	return targets
}
