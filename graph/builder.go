package graph

import "github.com/albertocavalcante/go-buri/label"

// SimpleNode is the input form of one target when building a graph.
type SimpleNode struct {
	Target       label.Target
	Files        []string
	Dependencies []label.Target
}

// Build constructs a Graph rooted at root.
//
// Nodes keep the order of the input slice, so passing a resolver result
// yields a graph whose Order is the build order. Duplicate targets are
// merged into the first occurrence. Edges to targets not in nodes are kept
// as forward edges without a reverse edge.
func Build(root label.Target, nodes []SimpleNode) *Graph {
	g := &Graph{
		Root:    root.Key(),
		Targets: make(map[string]*Node, len(nodes)),
		Order:   make([]string, 0, len(nodes)),
	}

	for _, n := range nodes {
		key := n.Target.Key()
		if _, ok := g.Targets[key]; ok {
			continue
		}
		node := &Node{
			Key:          key,
			Target:       n.Target,
			Files:        append([]string(nil), n.Files...),
			Dependencies: make([]string, 0, len(n.Dependencies)),
			Dependents:   make([]string, 0),
			IsRoot:       key == g.Root,
		}
		for _, dep := range n.Dependencies {
			node.Dependencies = append(node.Dependencies, dep.Key())
		}
		g.Targets[key] = node
		g.Order = append(g.Order, key)
	}

	// Reverse edges, walked in Order so Dependents are deterministic.
	for _, key := range g.Order {
		for _, dep := range g.Targets[key].Dependencies {
			if depNode, ok := g.Targets[dep]; ok {
				depNode.Dependents = append(depNode.Dependents, key)
			}
		}
	}

	return g
}
