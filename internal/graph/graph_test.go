package graph

import "testing"

func TestSourcesAndSinks(t *testing.T) {
	g := New([]string{"a", "b", "c"})
	g.AddEdge(Prereq, "a", "b")
	g.AddEdge(Prereq, "b", "c")

	sources := g.Sources()
	if len(sources) != 1 || sources[0] != "a" {
		t.Fatalf("Sources() = %v, want [a]", sources)
	}

	sinks := g.Sinks()
	if len(sinks) != 1 || sinks[0] != "c" {
		t.Fatalf("Sinks() = %v, want [c]", sinks)
	}
}

func TestDetectCycle(t *testing.T) {
	t.Run("acyclic graph passes", func(t *testing.T) {
		g := New([]string{"a", "b", "c"})
		g.AddEdge(Prereq, "a", "b")
		g.AddEdge(Prereq, "b", "c")
		if err := DetectCycle(g, "plan.csv"); err != nil {
			t.Fatalf("DetectCycle() = %v, want nil", err)
		}
	})

	t.Run("direct cycle detected", func(t *testing.T) {
		g := New([]string{"a", "b"})
		g.AddEdge(Prereq, "a", "b")
		g.AddEdge(Prereq, "b", "a")
		if err := DetectCycle(g, "plan.csv"); err == nil {
			t.Fatal("DetectCycle() = nil, want cycle error")
		}
	})

	t.Run("coreq edges never create a cycle", func(t *testing.T) {
		g := New([]string{"a", "b"})
		g.AddEdge(Prereq, "a", "b")
		g.AddEdge(Coreq, "b", "a")
		if err := DetectCycle(g, "plan.csv"); err != nil {
			t.Fatalf("DetectCycle() = %v, want nil", err)
		}
	})
}

func TestTopoSortInputOrderTieBreak(t *testing.T) {
	// b and c both depend only on a; with no other constraint, c must
	// precede b because it appears first in input order. The vertex order
	// is deliberately non-lexical, so a lexical sort would yield [a b c].
	g := New([]string{"a", "c", "b"})
	g.AddEdge(Prereq, "a", "c")
	g.AddEdge(Prereq, "a", "b")

	order := TopoSort(g)
	if len(order) != 3 || order[0] != "a" || order[1] != "c" || order[2] != "b" {
		t.Fatalf("TopoSort() = %v, want [a c b]", order)
	}
}
