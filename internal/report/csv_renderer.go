package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var alwaysQuoted = map[string]bool{
	"Prefix":         true,
	"Number":         true,
	"Institution":    true,
	"Canonical Name": true,
}

// RenderCSV emits the metrics CSV contract: the metadata block in
// literal field order, an aggregates block, the Courses marker, the
// extended header, then data rows in input order. Prefix, Number,
// Institution, and Canonical Name are always quoted; numeric and
// relationship fields are left bare.
func RenderCSV(w io.Writer, m *Model) error {
	rows := [][]string{
		{"Curriculum", m.CurriculumName},
		{"Institution", m.Institution},
		{"Degree Type", m.DegreeType},
		{"Year", m.Year},
		{"System Type", string(m.SystemType)},
		{"CIP", m.CIPCode},
		{"Total Structural Complexity", strconv.Itoa(m.TotalComplexity)},
		{"Longest Delay", strconv.Itoa(m.LongestDelay)},
		{"Highest Centrality Course", m.HighestCentralityCourse},
		{"Courses"},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, ",")); err != nil {
			return err
		}
	}

	header := append(append([]string(nil), m.Header...), "Complexity", "Blocking", "Delay", "Centrality")
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}

	for _, c := range m.CoursesByInputOrder() {
		fields := rowFields(m.Header, c)
		fields = append(fields, strconv.Itoa(c.Complexity), strconv.Itoa(c.Blocking), strconv.Itoa(c.Delay), strconv.Itoa(c.Centrality))
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

// rowFields projects a CourseRow back onto the original header columns,
// quoting the columns the contract marks as always-quoted.
func rowFields(header []string, c CourseRow) []string {
	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = cellFor(name, c)
		if alwaysQuoted[name] {
			fields[i] = quote(fields[i])
		}
	}
	return fields
}

func cellFor(header string, c CourseRow) string {
	switch header {
	case "Course ID":
		return c.CSVID
	case "Course Name":
		return c.Name
	case "Prefix":
		return c.Prefix
	case "Number":
		return c.Number
	case "Prerequisites":
		return c.PrerequisiteIDs
	case "Corequisites":
		return c.CorequisiteIDs
	case "Strict-Corequisites":
		return c.StrictCorequisiteIDs
	case "Credit Hours":
		return formatCredits(c.CreditHours)
	case "Canonical Name":
		return c.CanonicalName
	default:
		return ""
	}
}

func formatCredits(v float64) string {
	if v == float64(int(v)) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
