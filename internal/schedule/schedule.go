// Package schedule assigns courses to terms, respecting prerequisite
// order, corequisite co-placement, and a per-term credit budget.
package schedule

import (
	"sort"

	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
	"curricularace/internal/metrics"
)

// Term is one scheduled term: its 1-based index, the courses placed in
// it, and the resulting credit total.
type Term struct {
	Index       int
	CourseKeys  []string
	CreditTotal float64
}

// Schedule is the full term partition, plus any course the scheduler
// could not place within its bounded number of passes.
type Schedule struct {
	Terms       []*Term
	Unscheduled []string
}

// cluster is a strict-coreq connected component. A course with no
// strict coreqs forms its own one-member cluster.
type cluster struct {
	members      []string
	earliestTerm int
	maxDelay     int
	firstOrder   int
	credits      float64
	placed       bool
	placedTerm   int
}

const maxPlacementPasses = 3

// Build runs the greedy, prerequisite-respecting packer against g's
// prereq and strict-coreq projections. targetCreditsPerTerm is the soft
// per-term credit budget (never splits a cluster, but allows an
// otherwise-empty term to exceed it).
func Build(plan *curriculum.Plan, g *graph.Graph, table metrics.Table, targetCreditsPerTerm float64) *Schedule {
	courseByKey := plan.ByStorageKey()
	earliestByVertex := computeEarliestTerms(g)
	clusters, clusterOf := buildClusters(g, courseByKey, earliestByVertex, table)

	placedTerm := make(map[string]int, len(g.Vertices)) // vertex -> term index, once placed
	sched := &Schedule{}

	remaining := len(clusters)
	maxTerm := len(g.Vertices) + maxPlacementPasses

	for t := 1; remaining > 0 && t <= maxTerm; t++ {
		candidates := readyClusters(g, clusters, placedTerm, t)
		sortCandidates(candidates)

		term := &Term{Index: t}
		for _, cl := range candidates {
			if len(term.CourseKeys) > 0 && term.CreditTotal+cl.credits > targetCreditsPerTerm {
				continue
			}
			placeCluster(cl, t, term, placedTerm)
			remaining--
		}

		coPlaceSoftCoreqs(g, clusterOf, placedTerm, t, term, targetCreditsPerTerm, &remaining)

		if len(term.CourseKeys) > 0 {
			sched.Terms = append(sched.Terms, term)
		}
	}

	for _, cl := range clusters {
		if !cl.placed {
			sched.Unscheduled = append(sched.Unscheduled, cl.members...)
		}
	}

	return sched
}

// computeEarliestTerms computes earliest_term(v) = 1 + max(earliest_term(p))
// over prereqs p, via a forward DP pass over topo order.
func computeEarliestTerms(g *graph.Graph) map[string]int {
	topo := graph.TopoSort(g)
	earliest := make(map[string]int, len(topo))
	for _, v := range topo {
		best := 0
		for _, p := range g.In(graph.Prereq, v) {
			if earliest[p] > best {
				best = earliest[p]
			}
		}
		earliest[v] = best + 1
	}
	return earliest
}

// buildClusters forms the connected components of the strict-coreq
// subgraph via union-find; every other vertex becomes its own singleton
// cluster. Returns the clusters and a vertex->cluster lookup.
func buildClusters(g *graph.Graph, courseByKey map[string]*curriculum.Course, earliest map[string]int, table metrics.Table) ([]*cluster, map[string]*cluster) {
	parent := make(map[string]string, len(g.Vertices))
	for _, v := range g.Vertices {
		parent[v] = v
	}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for _, v := range g.Vertices {
		for _, s := range g.Out(graph.StrictCoreq, v) {
			union(v, s)
		}
	}

	groups := make(map[string][]string)
	for _, v := range g.Vertices {
		root := find(v)
		groups[root] = append(groups[root], v)
	}

	var clusters []*cluster
	clusterOf := make(map[string]*cluster, len(g.Vertices))
	for _, members := range groups {
		sort.Slice(members, func(i, j int) bool {
			return g.InputOrder(members[i]) < g.InputOrder(members[j])
		})
		cl := &cluster{members: members, firstOrder: g.InputOrder(members[0])}
		for _, m := range members {
			if earliest[m] > cl.earliestTerm {
				cl.earliestTerm = earliest[m]
			}
			if table[m].Delay > cl.maxDelay {
				cl.maxDelay = table[m].Delay
			}
			if c, ok := courseByKey[m]; ok {
				cl.credits += c.CreditHours
			}
			clusterOf[m] = cl
		}
		clusters = append(clusters, cl)
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].firstOrder < clusters[j].firstOrder
	})
	return clusters, clusterOf
}

// readyClusters returns unplaced clusters whose members' prereqs are all
// already placed in terms strictly before t, and whose earliestTerm<=t.
func readyClusters(g *graph.Graph, clusters []*cluster, placedTerm map[string]int, t int) []*cluster {
	var out []*cluster
	for _, cl := range clusters {
		if cl.placed || cl.earliestTerm > t {
			continue
		}
		if prereqsSatisfiedBefore(g, cl, placedTerm, t) {
			out = append(out, cl)
		}
	}
	return out
}

func sortCandidates(candidates []*cluster) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].maxDelay != candidates[j].maxDelay {
			return candidates[i].maxDelay > candidates[j].maxDelay
		}
		return candidates[i].firstOrder < candidates[j].firstOrder
	})
}

func placeCluster(cl *cluster, t int, term *Term, placedTerm map[string]int) {
	for _, m := range cl.members {
		placedTerm[m] = t
		term.CourseKeys = append(term.CourseKeys, m)
	}
	term.CreditTotal += cl.credits
	cl.placed = true
	cl.placedTerm = t
}

// coPlaceSoftCoreqs co-places a just-placed course's regular coreq
// partner in the same term when the partner's own cluster is otherwise
// ready and the credit budget permits — a soft preference, never forced.
func coPlaceSoftCoreqs(g *graph.Graph, clusterOf map[string]*cluster, placedTerm map[string]int, t int, term *Term, budget float64, remaining *int) {
	for _, v := range append([]string(nil), term.CourseKeys...) {
		for _, partner := range g.Out(graph.Coreq, v) {
			pc := clusterOf[partner]
			if pc == nil || pc.placed {
				continue
			}
			if pc.earliestTerm > t {
				continue
			}
			if !prereqsSatisfiedBefore(g, pc, placedTerm, t) {
				continue
			}
			if term.CreditTotal+pc.credits > budget {
				continue
			}
			placeCluster(pc, t, term, placedTerm)
			*remaining--
		}
	}
}

func prereqsSatisfiedBefore(g *graph.Graph, cl *cluster, placedTerm map[string]int, t int) bool {
	for _, m := range cl.members {
		for _, p := range g.In(graph.Prereq, m) {
			pt, ok := placedTerm[p]
			if !ok || pt >= t {
				return false
			}
		}
	}
	return true
}
