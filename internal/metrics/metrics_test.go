package metrics

import (
	"testing"

	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
)

func chainGraph() *graph.Graph {
	g := graph.New([]string{"a", "b", "c"})
	g.AddEdge(graph.Prereq, "a", "b")
	g.AddEdge(graph.Prereq, "b", "c")
	return g
}

func TestComputeLinearChain(t *testing.T) {
	g := chainGraph()
	topo := graph.TopoSort(g)
	plan := &curriculum.Plan{SystemType: curriculum.Semester}

	table, agg := Compute(g, topo, plan)

	wantDelay := map[string]int{"a": 3, "b": 3, "c": 3}
	wantBlocking := map[string]int{"a": 2, "b": 1, "c": 0}
	wantComplexity := map[string]int{"a": 5, "b": 4, "c": 3}
	wantCentrality := map[string]int{"a": 0, "b": 3, "c": 0}

	for v := range wantDelay {
		row := table[v]
		if row.Delay != wantDelay[v] {
			t.Errorf("%s: Delay = %d, want %d", v, row.Delay, wantDelay[v])
		}
		if row.Blocking != wantBlocking[v] {
			t.Errorf("%s: Blocking = %d, want %d", v, row.Blocking, wantBlocking[v])
		}
		if row.Complexity != wantComplexity[v] {
			t.Errorf("%s: Complexity = %d, want %d", v, row.Complexity, wantComplexity[v])
		}
		if row.Centrality != wantCentrality[v] {
			t.Errorf("%s: Centrality = %d, want %d", v, row.Centrality, wantCentrality[v])
		}
	}

	if agg.TotalComplexity != 12 {
		t.Errorf("TotalComplexity = %d, want 12", agg.TotalComplexity)
	}
	if agg.LongestDelayCourse != "a" {
		t.Errorf("LongestDelayCourse = %q, want a (first input-order tie winner)", agg.LongestDelayCourse)
	}
}

func TestScaleComplexityQuarterRounding(t *testing.T) {
	cases := []struct {
		raw  int
		want int
	}{
		{0, 1},  // floored at 1 even when raw scales to 0
		{3, 2},  // 3 * 2/3 = 2.0
		{5, 3},  // 5 * 2/3 = 3.333 -> 3
		{9, 6},  // 9 * 2/3 = 6.0
		{1, 1},  // 1 * 2/3 = 0.667 -> rounds to nearest -> 1
	}
	for _, tc := range cases {
		got := scaleComplexity(tc.raw, curriculum.Quarter)
		if got != tc.want {
			t.Errorf("scaleComplexity(%d, Quarter) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestScaleComplexitySemesterUnscaled(t *testing.T) {
	if got := scaleComplexity(7, curriculum.Semester); got != 7 {
		t.Errorf("scaleComplexity(7, Semester) = %d, want 7", got)
	}
}
