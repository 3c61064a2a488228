package csvio

import (
	"strconv"
	"strings"

	"curricularace/internal/curriculum"
)

// LoadPlan runs the three-pass construction described for this loader:
// census natural keys, materialize courses under collision-safe storage
// keys, then wire prerequisite/corequisite relationships.
func LoadPlan(pf *ParsedFile, file string) (*curriculum.Plan, error) {
	idx := HeaderIndex(pf.Header)

	plan := &curriculum.Plan{
		CurriculumName: pf.Metadata.Curriculum,
		Institution:    pf.Metadata.Institution,
		DegreeType:     pf.Metadata.DegreeType,
		Year:           pf.Metadata.Year,
		SystemType:     curriculum.SystemType(strings.ToLower(strings.TrimSpace(pf.Metadata.SystemType))),
		CIPCode:        pf.Metadata.CIP,
		Header:         pf.Header,
	}
	if plan.SystemType == "" {
		plan.SystemType = curriculum.Semester
	}

	// Pass 1 — Census: tally occurrences per natural key.
	naturalKeys := make([]string, len(pf.Rows))
	tally := make(map[string]int, len(pf.Rows))
	for i, row := range pf.Rows {
		prefix := Cell(pf.Header, idx, row, "Prefix")
		number := Cell(pf.Header, idx, row, "Number")
		nk := prefix + number
		naturalKeys[i] = nk
		tally[nk]++
	}

	// Pass 2 — Materialize: assign storage keys, build Course objects.
	csvIDToStorageKey := make(map[string]string, len(pf.Rows))
	for i, row := range pf.Rows {
		csvID := Cell(pf.Header, idx, row, "Course ID")
		nk := naturalKeys[i]
		storageKey := nk
		if tally[nk] > 1 {
			storageKey = nk + "_" + csvID
		}

		number := Cell(pf.Header, idx, row, "Number")
		credits, err := parseCreditHours(Cell(pf.Header, idx, row, "Credit Hours"), number, file)
		if err != nil {
			return nil, err
		}

		course := &curriculum.Course{
			StorageKey:    storageKey,
			CSVID:         csvID,
			Name:          Cell(pf.Header, idx, row, "Course Name"),
			Prefix:        Cell(pf.Header, idx, row, "Prefix"),
			Number:        Cell(pf.Header, idx, row, "Number"),
			CreditHours:   credits,
			CanonicalName: Cell(pf.Header, idx, row, "Canonical Name"),
			InputIndex:    i,
		}
		plan.Courses = append(plan.Courses, course)
		if csvID != "" {
			csvIDToStorageKey[csvID] = storageKey
		}
	}

	// Pass 3 — Wire relationships.
	for i, row := range pf.Rows {
		course := plan.Courses[i]

		prereqTokens := SplitRelationship(Cell(pf.Header, idx, row, "Prerequisites"))
		for _, tok := range prereqTokens {
			key, err := resolveToken(tok, csvIDToStorageKey, file)
			if err != nil {
				return nil, err
			}
			course.Prerequisites = append(course.Prerequisites, key)
		}

		coreqTokens := SplitRelationship(Cell(pf.Header, idx, row, "Corequisites"))
		for _, tok := range coreqTokens {
			key, err := resolveToken(tok, csvIDToStorageKey, file)
			if err != nil {
				return nil, err
			}
			course.Corequisites = append(course.Corequisites, key)
		}

		strictTokens := SplitRelationship(Cell(pf.Header, idx, row, "Strict-Corequisites"))
		for _, tok := range strictTokens {
			key, err := resolveToken(tok, csvIDToStorageKey, file)
			if err != nil {
				return nil, err
			}
			course.StrictCoreqs = append(course.StrictCoreqs, key)
			course.Corequisites = append(course.Corequisites, key)
		}
	}

	return plan, nil
}

func resolveToken(tok string, csvIDToStorageKey map[string]string, file string) (string, error) {
	key, ok := csvIDToStorageKey[tok]
	if !ok {
		return "", curriculum.NewError(curriculum.UnknownReference, file, []string{tok}, "relationship references unknown Course ID %q", tok)
	}
	return key, nil
}

func parseCreditHours(raw, number, file string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return curriculum.UnitsFromCourseNumber(number, curriculum.DefaultCreditHours), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, curriculum.NewError(curriculum.MalformedCsv, file, nil, "unparseable credit hours %q", raw)
	}
	if v < 0 {
		return 0, curriculum.NewError(curriculum.MalformedCsv, file, nil, "negative credit hours %q", raw)
	}
	return v, nil
}
