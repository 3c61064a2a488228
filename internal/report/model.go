// Package report assembles the language-neutral ReportModel from a
// computed Plan/Graph/MetricsTable/Schedule and renders it to CSV, HTML,
// Markdown, and PDF.
package report

import (
	"sort"
	"strings"

	"curricularace/internal/curriculum"
	"curricularace/internal/graph"
	"curricularace/internal/metrics"
	"curricularace/internal/schedule"
)

// CourseRow is one per-course line of the report, sorted by descending
// Complexity then input order.
type CourseRow struct {
	StorageKey    string
	CSVID         string
	Name          string
	Prefix        string
	Number        string
	CreditHours   float64
	CanonicalName string
	InputIndex    int
	// Relationship cells re-serialized as ';'-joined Course ID tokens, the
	// same form they arrived in, for CSV round-trip fidelity.
	PrerequisiteIDs    string
	CorequisiteIDs     string
	StrictCorequisiteIDs string
	metrics.Row
}

// TermBucket is one term's course list, in schedule order.
type TermBucket struct {
	Index       int
	CourseKeys  []string
	CreditTotal float64
}

// Edge is one edge-list row, tagged with its kind for partitioning.
type Edge struct {
	From string
	To   string
	Kind graph.EdgeKind
}

// Model is the immutable bundle consumed by every renderer.
type Model struct {
	CurriculumName string
	Institution    string
	DegreeType     string
	Year           string
	SystemType     curriculum.SystemType
	CIPCode        string
	Header         []string

	Courses     []CourseRow
	Terms       []TermBucket
	Unscheduled []string

	TotalComplexity         int
	LongestDelay             int
	LongestDelayCourse       string
	HighestCentrality        int
	HighestCentralityCourse  string
	CriticalPath             []string

	Edges []Edge
}

// Build is the pure (Plan, Graph, MetricsTable, Schedule) -> ReportModel
// transform. It holds no I/O and returns the same Model for the same
// inputs every time.
func Build(plan *curriculum.Plan, g *graph.Graph, table metrics.Table, agg metrics.Aggregates, sched *schedule.Schedule) *Model {
	m := &Model{
		CurriculumName:          plan.CurriculumName,
		Institution:             plan.Institution,
		DegreeType:              plan.DegreeType,
		Year:                    plan.Year,
		SystemType:              plan.SystemType,
		CIPCode:                 plan.CIPCode,
		Header:                  plan.Header,
		Unscheduled:             sched.Unscheduled,
		TotalComplexity:         agg.TotalComplexity,
		LongestDelay:            agg.LongestDelay,
		LongestDelayCourse:      agg.LongestDelayCourse,
		HighestCentrality:       agg.HighestCentrality,
		HighestCentralityCourse: agg.HighestCentralityCourse,
		CriticalPath:            agg.CriticalPath,
	}

	byKey := plan.ByStorageKey()
	toIDs := func(keys []string) string {
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			if c, ok := byKey[k]; ok {
				ids = append(ids, c.CSVID)
			}
		}
		return strings.Join(ids, ";")
	}

	regularCoreqKeys := func(c *curriculum.Course) []string {
		strict := make(map[string]bool, len(c.StrictCoreqs))
		for _, s := range c.StrictCoreqs {
			strict[s] = true
		}
		var out []string
		for _, co := range c.Corequisites {
			if !strict[co] {
				out = append(out, co)
			}
		}
		return out
	}

	for _, c := range plan.Courses {
		m.Courses = append(m.Courses, CourseRow{
			StorageKey:           c.StorageKey,
			CSVID:                c.CSVID,
			Name:                 c.Name,
			Prefix:               c.Prefix,
			Number:               c.Number,
			CreditHours:          c.CreditHours,
			CanonicalName:        c.CanonicalName,
			InputIndex:           c.InputIndex,
			PrerequisiteIDs:      toIDs(c.Prerequisites),
			CorequisiteIDs:       toIDs(regularCoreqKeys(c)),
			StrictCorequisiteIDs: toIDs(c.StrictCoreqs),
			Row:                  table[c.StorageKey],
		})
	}
	// Courses is the report's default view: descending Complexity then
	// input order. Renderers that need strict input order (the CSV
	// round-trip contract) sort a copy by InputIndex instead.
	sort.SliceStable(m.Courses, func(i, j int) bool {
		if m.Courses[i].Complexity != m.Courses[j].Complexity {
			return m.Courses[i].Complexity > m.Courses[j].Complexity
		}
		return m.Courses[i].InputIndex < m.Courses[j].InputIndex
	})

	for _, t := range sched.Terms {
		m.Terms = append(m.Terms, TermBucket{Index: t.Index, CourseKeys: t.CourseKeys, CreditTotal: t.CreditTotal})
	}

	for _, c := range plan.Courses {
		for _, p := range c.Prerequisites {
			m.Edges = append(m.Edges, Edge{From: p, To: c.StorageKey, Kind: graph.Prereq})
		}
		strict := make(map[string]bool, len(c.StrictCoreqs))
		for _, s := range c.StrictCoreqs {
			strict[s] = true
			m.Edges = append(m.Edges, Edge{From: c.StorageKey, To: s, Kind: graph.StrictCoreq})
		}
		for _, co := range c.Corequisites {
			if !strict[co] {
				m.Edges = append(m.Edges, Edge{From: c.StorageKey, To: co, Kind: graph.Coreq})
			}
		}
	}

	return m
}

// CoursesByInputOrder returns a copy of Courses sorted by InputIndex,
// for renderers that must reproduce the original row order.
func (m *Model) CoursesByInputOrder() []CourseRow {
	out := make([]CourseRow, len(m.Courses))
	copy(out, m.Courses)
	sort.Slice(out, func(i, j int) bool { return out[i].InputIndex < out[j].InputIndex })
	return out
}
