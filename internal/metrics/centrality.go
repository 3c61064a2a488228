package metrics

import "curricularace/internal/graph"

// computeCentrality enumerates every simple path from a global prereq
// source to a global prereq sink, and for each path of at least 3
// vertices, credits every interior vertex with the path's vertex count.
// Global sources and sinks never accumulate centrality: they can only
// ever be a path endpoint, never interior, of a source-to-sink path.
func computeCentrality(g *graph.Graph) map[string]int {
	centrality := make(map[string]int, len(g.Vertices))
	for _, v := range g.Vertices {
		centrality[v] = 0
	}

	for _, source := range g.Sources() {
		path := []string{source}
		walkPaths(g, source, path, centrality)
	}

	return centrality
}

func walkPaths(g *graph.Graph, current string, path []string, centrality map[string]int) {
	children := g.Out(graph.Prereq, current)
	if len(children) == 0 {
		// current is a sink: path is complete.
		creditInteriorVertices(path, centrality)
		return
	}
	for _, child := range children {
		walkPaths(g, child, append(path, child), centrality)
	}
}

func creditInteriorVertices(path []string, centrality map[string]int) {
	if len(path) < 3 {
		return
	}
	for _, v := range path[1 : len(path)-1] {
		centrality[v] += len(path)
	}
}
