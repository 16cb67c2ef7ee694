package graph

import (
	"fmt"
)

// Get returns the node for a canonical label, or nil if not found.
func (g *Graph) Get(key string) *Node {
	return g.Targets[key]
}

// Contains returns true if the graph contains the given target.
func (g *Graph) Contains(key string) bool {
	_, ok := g.Targets[key]
	return ok
}

// Len returns the number of targets.
func (g *Graph) Len() int {
	return len(g.Targets)
}

// DirectDeps returns the direct dependencies of a target.
func (g *Graph) DirectDeps(key string) []string {
	if node := g.Targets[key]; node != nil {
		return node.Dependencies
	}
	return nil
}

// DirectDependents returns targets that directly depend on the given target.
func (g *Graph) DirectDependents(key string) []string {
	if node := g.Targets[key]; node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns all transitive dependencies of a target.
// The result is in breadth-first order.
func (g *Graph) TransitiveDeps(key string) []string {
	return g.bfs(key, func(n *Node) []string { return n.Dependencies })
}

// TransitiveDependents returns all targets that transitively depend on the
// given target, closest first.
func (g *Graph) TransitiveDependents(key string) []string {
	return g.bfs(key, func(n *Node) []string { return n.Dependents })
}

func (g *Graph) bfs(start string, next func(*Node) []string) []string {
	result := make([]string, 0)
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Targets[current]
		if node == nil {
			continue
		}
		for _, k := range next(node) {
			if !visited[k] {
				visited[k] = true
				result = append(result, k)
				queue = append(queue, k)
			}
		}
	}
	return result
}

// Path finds the shortest dependency path from one target to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to string) []string {
	if from == to {
		return []string{from}
	}

	type queueItem struct {
		key  string
		path []string
	}

	visited := map[string]bool{from: true}
	queue := []queueItem{{key: from, path: []string{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Targets[current.key]
		if node == nil {
			continue
		}

		for _, dep := range node.Dependencies {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			newPath := make([]string, len(current.path)+1)
			copy(newPath, current.path)
			newPath[len(current.path)] = dep
			if dep == to {
				return newPath
			}
			queue = append(queue, queueItem{key: dep, path: newPath})
		}
	}

	return nil
}

// AllPaths finds all dependency paths from one target to another.
// This can be expensive for graphs with many diamonds.
func (g *Graph) AllPaths(from, to string) [][]string {
	var result [][]string
	g.findAllPaths(from, to, []string{from}, make(map[string]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target string, path []string, visited map[string]bool, result *[][]string) {
	if current == target {
		*result = append(*result, append([]string(nil), path...))
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	node := g.Targets[current]
	if node == nil {
		return
	}

	for _, dep := range node.Dependencies {
		if !visited[dep] {
			g.findAllPaths(dep, target, append(path, dep), visited, result)
		}
	}
}

// WhyIncluded returns every chain from the root that pulls in a target.
func (g *Graph) WhyIncluded(key string) ([]DependencyChain, error) {
	if !g.Contains(key) {
		return nil, fmt.Errorf("target %q not found in graph", key)
	}

	paths := g.AllPaths(g.Root, key)
	chains := make([]DependencyChain, len(paths))
	for i, path := range paths {
		chains[i] = DependencyChain{Path: path}
	}
	return chains, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{TotalTargets: len(g.Targets)}

	for _, node := range g.Targets {
		stats.TotalFiles += len(node.Files)
		stats.Edges += len(node.Dependencies)
	}

	if root := g.Targets[g.Root]; root != nil {
		stats.DirectDependencies = len(root.Dependencies)
		stats.TransitiveDependencies = max(stats.TotalTargets-stats.DirectDependencies-1, 0)
	}

	stats.MaxDepth = g.calculateMaxDepth()
	return stats
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[string]int)
	onPath := make(map[string]bool)
	var maxDepth int

	var dfs func(key string, depth int)
	dfs = func(key string, depth int) {
		// A node already on the current path is a back edge.
		if onPath[key] {
			return
		}
		if existing, ok := depths[key]; ok && existing >= depth {
			return
		}
		depths[key] = depth
		maxDepth = max(maxDepth, depth)

		node := g.Targets[key]
		if node == nil {
			return
		}

		onPath[key] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, key)
	}

	dfs(g.Root, 0)
	return maxDepth
}

// Roots returns targets with no dependents, in graph order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, key := range g.Order {
		if len(g.Targets[key].Dependents) == 0 {
			roots = append(roots, key)
		}
	}
	return roots
}

// Leaves returns targets with no dependencies, in graph order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, key := range g.Order {
		if len(g.Targets[key].Dependencies) == 0 {
			leaves = append(leaves, key)
		}
	}
	return leaves
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns the cycles reachable by depth-first search in graph
// order. Each cycle starts and ends with the same key.
func (g *Graph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	path := make([]string, 0)

	var walk func(key string)
	walk = func(key string) {
		visited[key] = true
		onStack[key] = true
		path = append(path, key)

		if node := g.Targets[key]; node != nil {
			for _, dep := range node.Dependencies {
				switch {
				case !visited[dep]:
					walk(dep)
				case onStack[dep]:
					for i, k := range path {
						if k == dep {
							cycle := make([]string, 0, len(path)-i+1)
							cycle = append(cycle, path[i:]...)
							cycles = append(cycles, append(cycle, dep))
							break
						}
					}
				}
			}
		}

		path = path[:len(path)-1]
		onStack[key] = false
	}

	for _, key := range g.Order {
		if !visited[key] {
			walk(key)
		}
	}
	return cycles
}

// TopologicalOrder returns the keys with every dependency before its
// dependents, using Kahn's algorithm with ties broken by graph order.
// It fails if the graph has a cycle.
func (g *Graph) TopologicalOrder() ([]string, error) {
	pending := make(map[string]int, len(g.Targets))
	for _, key := range g.Order {
		n := 0
		for _, dep := range g.Targets[key].Dependencies {
			if g.Contains(dep) {
				n++
			}
		}
		pending[key] = n
	}

	order := make([]string, 0, len(g.Targets))
	done := make(map[string]bool, len(g.Targets))
	for len(order) < len(g.Order) {
		progressed := false
		for _, key := range g.Order {
			if done[key] || pending[key] > 0 {
				continue
			}
			done[key] = true
			order = append(order, key)
			progressed = true
			for _, dependent := range g.Targets[key].Dependents {
				pending[dependent]--
			}
		}
		if !progressed {
			return nil, fmt.Errorf("graph has a cycle: %d of %d targets ordered", len(order), len(g.Order))
		}
	}
	return order, nil
}
