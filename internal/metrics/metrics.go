// Package metrics computes the four curriculum-analytics numbers — Delay,
// Blocking, Complexity, and Centrality — over a plan's prerequisite DAG.
package metrics

import (
	"math"

	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
)

// Row holds the four metric values for one course.
type Row struct {
	Delay      int
	Blocking   int
	Complexity int
	Centrality int
}

// Table maps storage key to its computed Row.
type Table map[string]Row

// Aggregates summarizes a Table: total complexity, the longest delay and
// its course, the highest centrality and its course, and a witness
// critical path realizing the longest delay.
type Aggregates struct {
	TotalComplexity       int
	LongestDelay          int
	LongestDelayCourse    string
	HighestCentrality     int
	HighestCentralityCourse string
	CriticalPath          []string
}

// Compute runs the full metrics pass over g's prereq projection, using
// topo for traversal order and plan's system type for quarter scaling.
// Callers must have already validated g acyclic (DetectCycle).
func Compute(g *graph.Graph, topo []string, plan *curriculum.Plan) (Table, Aggregates) {
	depthFromRoot := computeDepthFromRoot(g, topo)
	depthToLeaf := computeDepthToLeaf(g, topo)
	descendantCount := computeDescendantCounts(g, topo)
	centrality := computeCentrality(g)

	table := make(Table, len(g.Vertices))
	for _, v := range g.Vertices {
		delay := depthFromRoot[v] + depthToLeaf[v] - 1
		blocking := descendantCount[v]
		complexity := scaleComplexity(delay+blocking, plan.SystemType)
		table[v] = Row{
			Delay:      delay,
			Blocking:   blocking,
			Complexity: complexity,
			Centrality: centrality[v],
		}
	}

	agg := computeAggregates(g, table, depthFromRoot, depthToLeaf)
	return table, agg
}

// computeDepthFromRoot is a forward DP pass over topo order:
// depth_from_root(v) = 1 + max(depth_from_root(p)) over prereqs p, or 1.
func computeDepthFromRoot(g *graph.Graph, topo []string) map[string]int {
	depth := make(map[string]int, len(topo))
	for _, v := range topo {
		best := 0
		for _, p := range g.In(graph.Prereq, v) {
			if depth[p] > best {
				best = depth[p]
			}
		}
		depth[v] = best + 1
	}
	return depth
}

// computeDepthToLeaf is a reverse DP pass over topo order:
// depth_to_leaf(v) = 1 + max(depth_to_leaf(c)) over children c, or 1.
func computeDepthToLeaf(g *graph.Graph, topo []string) map[string]int {
	depth := make(map[string]int, len(topo))
	for i := len(topo) - 1; i >= 0; i-- {
		v := topo[i]
		best := 0
		for _, c := range g.Out(graph.Prereq, v) {
			if depth[c] > best {
				best = depth[c]
			}
		}
		depth[v] = best + 1
	}
	return depth
}

// computeDescendantCounts computes |descendants(v)| via prereq edges,
// processing topo order in reverse so every child's descendant set is
// already known.
func computeDescendantCounts(g *graph.Graph, topo []string) map[string]int {
	descendants := make(map[string]map[string]bool, len(topo))
	count := make(map[string]int, len(topo))
	for i := len(topo) - 1; i >= 0; i-- {
		v := topo[i]
		set := make(map[string]bool)
		for _, c := range g.Out(graph.Prereq, v) {
			set[c] = true
			for d := range descendants[c] {
				set[d] = true
			}
		}
		descendants[v] = set
		count[v] = len(set)
	}
	return count
}

func scaleComplexity(raw int, systemType curriculum.SystemType) int {
	v := raw
	if systemType == curriculum.Quarter {
		scaled := math.RoundToEven(float64(raw) * 2.0 / 3.0)
		v = int(scaled)
	}
	if v < 1 {
		v = 1
	}
	return v
}

// computeAggregates walks g.Vertices in input order, so a strict ">"
// comparison alone gives the "earliest input order wins ties" rule for
// both arg-maxes.
func computeAggregates(g *graph.Graph, table Table, depthFromRoot, depthToLeaf map[string]int) Aggregates {
	agg := Aggregates{}

	for _, v := range g.Vertices {
		row := table[v]
		agg.TotalComplexity += row.Complexity

		if row.Delay > agg.LongestDelay {
			agg.LongestDelay = row.Delay
			agg.LongestDelayCourse = v
		}
		if row.Centrality > agg.HighestCentrality {
			agg.HighestCentrality = row.Centrality
			agg.HighestCentralityCourse = v
		}
	}

	agg.CriticalPath = criticalPath(g, agg.LongestDelayCourse, depthFromRoot, depthToLeaf)
	return agg
}

// criticalPath walks backward from witness through its deepest prereq
// chain, then forward through its deepest dependent chain, reconstructing
// one longest prereq chain realizing LongestDelay.
func criticalPath(g *graph.Graph, witness string, depthFromRoot, depthToLeaf map[string]int) []string {
	if witness == "" {
		return nil
	}

	var backward []string
	v := witness
	for {
		backward = append(backward, v)
		prereqs := g.In(graph.Prereq, v)
		if len(prereqs) == 0 {
			break
		}
		next := prereqs[0]
		for _, p := range prereqs[1:] {
			if depthFromRoot[p] > depthFromRoot[next] {
				next = p
			}
		}
		v = next
	}
	// reverse backward into root-to-witness order
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}

	var forward []string
	v = witness
	for {
		children := g.Out(graph.Prereq, v)
		if len(children) == 0 {
			break
		}
		next := children[0]
		for _, c := range children[1:] {
			if depthToLeaf[c] > depthToLeaf[next] {
				next = c
			}
		}
		v = next
		forward = append(forward, v)
	}

	path := append(backward, forward...)
	return path
}
