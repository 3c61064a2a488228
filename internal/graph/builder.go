package graph

import "curricularace/internal/curriculum"

// Build constructs a Graph over plan's storage keys and wires prereq,
// coreq, and strict-coreq edges from each course's relationship sets.
// Edge endpoints are assumed already resolved to valid storage keys by
// the loader; Build does not re-validate references.
func Build(plan *curriculum.Plan) *Graph {
	vertices := make([]string, len(plan.Courses))
	for i, c := range plan.Courses {
		vertices[i] = c.StorageKey
	}
	g := New(vertices)

	for _, c := range plan.Courses {
		for _, p := range c.Prerequisites {
			g.AddEdge(Prereq, p, c.StorageKey)
		}
		for _, s := range c.StrictCoreqs {
			g.AddEdge(StrictCoreq, c.StorageKey, s)
		}
	}
	// Regular (non-strict) coreqs are Corequisites minus StrictCoreqs.
	for _, c := range plan.Courses {
		strict := make(map[string]bool, len(c.StrictCoreqs))
		for _, s := range c.StrictCoreqs {
			strict[s] = true
		}
		for _, co := range c.Corequisites {
			if !strict[co] {
				g.AddEdge(Coreq, c.StorageKey, co)
			}
		}
	}

	return g
}
