package schedule

import (
	"testing"

	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
	"curricularace/internal/metrics"
)

func planOf(courses ...*curriculum.Course) *curriculum.Plan {
	return &curriculum.Plan{SystemType: curriculum.Semester, Courses: courses}
}

func TestBuildRespectsPrerequisiteOrder(t *testing.T) {
	a := &curriculum.Course{StorageKey: "a", CreditHours: 3}
	b := &curriculum.Course{StorageKey: "b", CreditHours: 3, Prerequisites: []string{"a"}}
	plan := planOf(a, b)

	g := graph.New([]string{"a", "b"})
	g.AddEdge(graph.Prereq, "a", "b")
	topo := graph.TopoSort(g)
	table, _ := metrics.Compute(g, topo, plan)

	sched := Build(plan, g, table, 15)

	if len(sched.Terms) != 2 {
		t.Fatalf("len(Terms) = %d, want 2", len(sched.Terms))
	}
	if got := sched.Terms[0].CourseKeys; len(got) != 1 || got[0] != "a" {
		t.Errorf("term 1 = %v, want [a]", got)
	}
	if got := sched.Terms[1].CourseKeys; len(got) != 1 || got[0] != "b" {
		t.Errorf("term 2 = %v, want [b]", got)
	}
	if len(sched.Unscheduled) != 0 {
		t.Errorf("Unscheduled = %v, want none", sched.Unscheduled)
	}
}

func TestBuildKeepsStrictCoreqsTogether(t *testing.T) {
	a := &curriculum.Course{StorageKey: "a", CreditHours: 3, StrictCoreqs: []string{"b"}}
	b := &curriculum.Course{StorageKey: "b", CreditHours: 3}
	plan := planOf(a, b)

	g := graph.New([]string{"a", "b"})
	g.AddEdge(graph.StrictCoreq, "a", "b")
	topo := graph.TopoSort(g)
	table, _ := metrics.Compute(g, topo, plan)

	sched := Build(plan, g, table, 15)

	if len(sched.Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1", len(sched.Terms))
	}
	if got := sched.Terms[0].CourseKeys; len(got) != 2 {
		t.Fatalf("term 1 = %v, want both a and b together", got)
	}
	if sched.Terms[0].CreditTotal != 6 {
		t.Errorf("CreditTotal = %v, want 6", sched.Terms[0].CreditTotal)
	}
}

func TestBuildCreditBudgetSplitsIndependentCourses(t *testing.T) {
	x := &curriculum.Course{StorageKey: "x", CreditHours: 10}
	y := &curriculum.Course{StorageKey: "y", CreditHours: 10}
	z := &curriculum.Course{StorageKey: "z", CreditHours: 10}
	plan := planOf(x, y, z)

	g := graph.New([]string{"x", "y", "z"})
	topo := graph.TopoSort(g)
	table, _ := metrics.Compute(g, topo, plan)

	sched := Build(plan, g, table, 15)

	if len(sched.Terms) != 3 {
		t.Fatalf("len(Terms) = %d, want 3 (one 10-credit course per term under a 15-credit budget)", len(sched.Terms))
	}
	for i, term := range sched.Terms {
		if len(term.CourseKeys) != 1 {
			t.Errorf("term %d has %d courses, want 1", i+1, len(term.CourseKeys))
		}
	}
}
