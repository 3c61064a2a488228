package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// RenderPDF writes m as a minimal single- or multi-page PDF: one line of
// Helvetica text per summary stat and per course row.
//
// No PDF-generation library appears anywhere in the reference corpus
// this project was built against, so this writer constructs the object
// graph (catalog, pages, content streams, xref table) directly against
// the PDF object model rather than adopting a third-party dependency
// that isn't grounded in anything this codebase has seen elsewhere.
func RenderPDF(w io.Writer, m *Model) error {
	lines := buildPDFLines(m)
	pages := paginate(lines, 50)

	doc := newPDFDocument()
	for _, page := range pages {
		doc.addPage(page)
	}
	return doc.write(w)
}

func buildPDFLines(m *Model) []string {
	lines := []string{
		m.CurriculumName,
		fmt.Sprintf("%s - %s - %s", m.Institution, m.DegreeType, m.SystemType),
		"",
		fmt.Sprintf("Total Structural Complexity: %d", m.TotalComplexity),
		fmt.Sprintf("Longest Delay: %d (%s)", m.LongestDelay, m.LongestDelayCourse),
		fmt.Sprintf("Highest Centrality: %d (%s)", m.HighestCentrality, m.HighestCentralityCourse),
		"",
		"Courses:",
	}
	for _, c := range m.Courses {
		lines = append(lines, fmt.Sprintf("  %-16s %-30s C=%-3d B=%-3d D=%-3d X=%-3d",
			c.StorageKey, truncate(c.Name, 30), c.Complexity, c.Blocking, c.Delay, c.Centrality))
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func paginate(lines []string, perPage int) [][]string {
	var pages [][]string
	for i := 0; i < len(lines); i += perPage {
		end := i + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[i:end])
	}
	if len(pages) == 0 {
		pages = append(pages, []string{""})
	}
	return pages
}

// pdfDocument accumulates PDF objects in writing order so object numbers
// can be assigned sequentially and referenced by the xref table.
type pdfDocument struct {
	objects   []string
	pageRefs  []int
	nextIndex int
}

func newPDFDocument() *pdfDocument {
	return &pdfDocument{nextIndex: 1}
}

func (d *pdfDocument) reserve() int {
	idx := d.nextIndex
	d.nextIndex++
	d.objects = append(d.objects, "")
	return idx
}

func (d *pdfDocument) set(idx int, body string) {
	d.objects[idx-1] = body
}

func (d *pdfDocument) addPage(lines []string) {
	contentIdx := d.reserve()
	pageIdx := d.reserve()

	content := pdfContentStream(lines)
	d.set(contentIdx, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	d.set(pageIdx, fmt.Sprintf("<< /Type /Page /Parent %%PAGES%% /Resources << /Font << /F1 %%FONT%% 0 R >> >> /MediaBox [0 0 612 792] /Contents %d 0 R >>", contentIdx))
	d.pageRefs = append(d.pageRefs, pageIdx)
}

func pdfContentStream(lines []string) string {
	var b strings.Builder
	b.WriteString("BT /F1 10 Tf 40 750 Td 12 TL\n")
	for _, line := range lines {
		b.WriteString("(")
		b.WriteString(pdfEscape(line))
		b.WriteString(") Tj T*\n")
	}
	b.WriteString("ET")
	return b.String()
}

func pdfEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `(`, `\(`)
	s = strings.ReplaceAll(s, `)`, `\)`)
	return s
}

func (d *pdfDocument) write(w io.Writer) error {
	fontIdx := d.reserve()
	d.set(fontIdx, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	pagesIdx := d.reserve()
	kids := make([]string, len(d.pageRefs))
	for i, ref := range d.pageRefs {
		kids[i] = fmt.Sprintf("%d 0 R", ref)
	}
	d.set(pagesIdx, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(d.pageRefs)))

	catalogIdx := d.reserve()
	d.set(catalogIdx, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesIdx))

	for i := range d.objects {
		d.objects[i] = strings.ReplaceAll(d.objects[i], "%PAGES%", fmt.Sprintf("%d", pagesIdx))
		d.objects[i] = strings.ReplaceAll(d.objects[i], "%FONT%", fmt.Sprintf("%d", fontIdx))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(d.objects)+1)
	for i, body := range d.objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(d.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(d.objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF", len(d.objects)+1, catalogIdx, xrefStart)

	_, err := w.Write(buf.Bytes())
	return err
}
