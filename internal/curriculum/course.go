// Package curriculum holds the core data model: courses, plans, and the
// curriculum-wide metadata that flows through the rest of the pipeline.
package curriculum

// SystemType is the academic calendar a Plan was authored under. It
// controls the quarter-scaling rule in the metrics engine.
type SystemType string

const (
	Semester SystemType = "semester"
	Quarter  SystemType = "quarter"
)

// Course is one row of a curriculum plan, keyed by StorageKey once the
// loader has resolved natural-key collisions.
type Course struct {
	StorageKey     string
	CSVID          string
	Name           string
	Prefix         string
	Number         string
	CreditHours    float64
	CanonicalName  string

	// Prerequisites holds storage keys that must be completed before this
	// course. Corequisites holds the union of regular and strict
	// corequisite storage keys (see StrictCoreqs for the subset that must
	// share a term).
	Prerequisites []string
	Corequisites  []string
	StrictCoreqs  []string

	// InputIndex is the course's 0-based position in the file's data-row
	// stream. It drives every deterministic tie-break downstream.
	InputIndex int
}

// NaturalKey is the collision-prone identity a course is parsed under:
// Prefix concatenated with Number, before storage-key suffixing.
func (c *Course) NaturalKey() string {
	return c.Prefix + c.Number
}

// Plan is one curriculum file's worth of courses plus its metadata block.
type Plan struct {
	CurriculumName string
	Institution    string
	DegreeType     string
	Year           string
	SystemType     SystemType
	CIPCode        string

	// Courses is in input order; it drives CSV output row order and every
	// scheduling tie-break.
	Courses []*Course

	// Header is the original CSV header row, used to re-emit an output
	// file whose columns extend rather than replace the input schema.
	Header []string
}

// ByStorageKey returns a lookup map built fresh from Courses. Callers
// that need repeated lookups should build this once and reuse it.
func (p *Plan) ByStorageKey() map[string]*Course {
	m := make(map[string]*Course, len(p.Courses))
	for _, c := range p.Courses {
		m[c.StorageKey] = c
	}
	return m
}
