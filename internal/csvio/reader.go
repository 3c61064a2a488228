// Package csvio tokenizes curriculum CSV files into a metadata block and
// an ordered row stream, and loads that stream into a curriculum.Plan.
package csvio

import (
	"encoding/csv"
	"io"
	"strings"

	"curricularace/internal/curriculum"
)

// Metadata is the curriculum-level key/value block that precedes the
// Courses marker in an input file.
type Metadata struct {
	Curriculum string
	Institution string
	DegreeType  string
	Year        string
	SystemType  string
	CIP         string
}

// ParsedFile is the tokenized form of one curriculum CSV: the metadata
// block, the header row, and the data rows in input order.
type ParsedFile struct {
	Metadata Metadata
	Header   []string
	Rows     [][]string
}

var metadataLabels = map[string]func(*Metadata, string){
	"Curriculum":  func(m *Metadata, v string) { m.Curriculum = v },
	"Institution": func(m *Metadata, v string) { m.Institution = v },
	"Degree Type": func(m *Metadata, v string) { m.DegreeType = v },
	"Year":        func(m *Metadata, v string) { m.Year = v },
	"System Type": func(m *Metadata, v string) { m.SystemType = v },
	"CIP":         func(m *Metadata, v string) { m.CIP = v },
}

var requiredHeaders = []string{"Course ID", "Prefix", "Number"}

// Parse reads a curriculum CSV from r and splits it into its metadata
// block and course row stream. file is used only for error reporting.
func Parse(r io.Reader, file string) (*ParsedFile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	pf := &ParsedFile{}
	seenCourses := false

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curriculum.NewError(curriculum.MalformedCsv, file, nil, "read row: %v", err)
		}
		trimmed := trimFields(record)

		if !seenCourses {
			if isCoursesMarker(trimmed) {
				seenCourses = true
				continue
			}
			applyMetadataRow(&pf.Metadata, trimmed)
			continue
		}

		if pf.Header == nil {
			pf.Header = trimmed
			if err := validateHeader(pf.Header, file); err != nil {
				return nil, err
			}
			continue
		}

		pf.Rows = append(pf.Rows, padRow(trimmed, len(pf.Header)))
	}

	if !seenCourses {
		return nil, curriculum.NewError(curriculum.MalformedCsv, file, nil, "missing Courses marker")
	}
	if pf.Header == nil {
		return nil, curriculum.NewError(curriculum.MalformedCsv, file, nil, "missing header row after Courses marker")
	}

	if err := checkDuplicateIDs(pf, file); err != nil {
		return nil, err
	}

	return pf, nil
}

func trimFields(row []string) []string {
	out := make([]string, len(row))
	for i, f := range row {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func isCoursesMarker(row []string) bool {
	if len(row) == 0 {
		return false
	}
	if row[0] != "Courses" {
		return false
	}
	for _, f := range row[1:] {
		if f != "" {
			return false
		}
	}
	return true
}

func applyMetadataRow(m *Metadata, row []string) {
	if len(row) == 0 {
		return
	}
	setter, ok := metadataLabels[row[0]]
	if !ok {
		return // unknown labels are skipped
	}
	value := ""
	if len(row) > 1 {
		value = row[1]
	}
	setter(m, value)
}

func validateHeader(header []string, file string) error {
	idx := headerIndex(header)
	for _, want := range requiredHeaders {
		if _, ok := idx[want]; !ok {
			return curriculum.NewError(curriculum.MalformedCsv, file, nil, "header missing required column %q", want)
		}
	}
	return nil
}

// headerIndex maps header names to column positions, last-one-wins on
// duplicate column names.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

// HeaderIndex exposes headerIndex to the loader.
func HeaderIndex(header []string) map[string]int {
	return headerIndex(header)
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func checkDuplicateIDs(pf *ParsedFile, file string) error {
	idx := headerIndex(pf.Header)
	col, ok := idx["Course ID"]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(pf.Rows))
	for _, row := range pf.Rows {
		if col >= len(row) {
			continue
		}
		id := row[col]
		if id == "" {
			continue
		}
		if seen[id] {
			return curriculum.NewError(curriculum.MalformedCsv, file, []string{id}, "duplicate Course ID %q", id)
		}
		seen[id] = true
	}
	return nil
}

// Cell returns the value of the named column for a row, or "" if the
// column is absent (optional columns yield empty values).
func Cell(header []string, idx map[string]int, row []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// SplitRelationship splits a ';'-delimited relationship cell into its
// trimmed, non-empty tokens.
func SplitRelationship(cell string) []string {
	parts := strings.Split(cell, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
