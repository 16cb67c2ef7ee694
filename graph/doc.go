// Package graph provides a queryable view of a resolved target graph.
//
// A resolution yields a build order; the graph keeps the edges behind it so
// callers can ask why a target was included, what depends on it, and how deep
// the tree is.
//
// # Building a Graph
//
//	order, _ := goburi.Resolve(ctx, root, src)
//	g := goburi.BuildGraph(root, order)
//
// # Querying the Graph
//
//	deps := g.DirectDeps("foo/bar:baz")
//	chains, _ := g.WhyIncluded("lib:util")
//	path := g.Path(g.Root, "lib:util")
//
// # Output Formats
//
//	jsonBytes, _ := g.ToJSON() // nested tree from the root
//	dot := g.ToDOT()           // Graphviz
//	text := g.ToText()         // summary and tree
package graph
