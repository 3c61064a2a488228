// Package graph builds the directed, multi-kind course-dependency graph
// and provides cycle detection and topological ordering over its
// prerequisite projection.
package graph

// EdgeKind distinguishes the three relationship kinds a curriculum file
// can encode. All three share one vertex set.
type EdgeKind int

const (
	Prereq EdgeKind = iota
	Coreq
	StrictCoreq
)

// Graph is an adjacency-list digraph over course storage keys. Forward
// and reverse indices are kept in sync by AddEdge; callers never mutate
// the maps directly.
type Graph struct {
	Vertices []string // in input order
	order    map[string]int

	forward map[EdgeKind]map[string][]string
	reverse map[EdgeKind]map[string][]string
}

// New builds an empty graph over the given vertex set, recorded in the
// order supplied (input order, per the deterministic tie-break rule).
func New(vertices []string) *Graph {
	g := &Graph{
		Vertices: vertices,
		order:    make(map[string]int, len(vertices)),
		forward:  make(map[EdgeKind]map[string][]string, 3),
		reverse:  make(map[EdgeKind]map[string][]string, 3),
	}
	for i, v := range vertices {
		g.order[v] = i
	}
	for _, kind := range []EdgeKind{Prereq, Coreq, StrictCoreq} {
		g.forward[kind] = make(map[string][]string)
		g.reverse[kind] = make(map[string][]string)
	}
	return g
}

// AddEdge records u -> v under the given kind, updating both the forward
// and reverse adjacency indices.
func (g *Graph) AddEdge(kind EdgeKind, u, v string) {
	g.forward[kind][u] = append(g.forward[kind][u], v)
	g.reverse[kind][v] = append(g.reverse[kind][v], u)
}

// Out returns the vertices reachable from v by one edge of the given
// kind, in the order the edges were added.
func (g *Graph) Out(kind EdgeKind, v string) []string {
	return g.forward[kind][v]
}

// In returns the vertices with an edge of the given kind into v, in the
// order the edges were added.
func (g *Graph) In(kind EdgeKind, v string) []string {
	return g.reverse[kind][v]
}

// InputOrder returns v's 0-based position in the vertex set, used for
// every deterministic tie-break.
func (g *Graph) InputOrder(v string) int {
	return g.order[v]
}

// Sources returns prereq-projection vertices with no incoming prereq
// edge, in input order.
func (g *Graph) Sources() []string {
	var out []string
	for _, v := range g.Vertices {
		if len(g.In(Prereq, v)) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// Sinks returns prereq-projection vertices with no outgoing prereq edge,
// in input order.
func (g *Graph) Sinks() []string {
	var out []string
	for _, v := range g.Vertices {
		if len(g.Out(Prereq, v)) == 0 {
			out = append(out, v)
		}
	}
	return out
}
