package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.CurriculumName}}</title></head>
<body>
<h1>{{.CurriculumName}}</h1>
<p>{{.Institution}} &middot; {{.DegreeType}} &middot; {{.SystemType}}</p>

<h2>Summary</h2>
<ul>
<li>Total Structural Complexity: {{.TotalComplexity}}</li>
<li>Longest Delay: {{.LongestDelay}} ({{.LongestDelayCourse}})</li>
<li>Highest Centrality: {{.HighestCentrality}} ({{.HighestCentralityCourse}})</li>
</ul>

<h2>Courses</h2>
<table>
<tr><th>Course</th><th>Name</th><th>Complexity</th><th>Blocking</th><th>Delay</th><th>Centrality</th></tr>
{{range .Courses}}<tr><td>{{.StorageKey}}</td><td>{{.Name}}</td><td>{{.Complexity}}</td><td>{{.Blocking}}</td><td>{{.Delay}}</td><td>{{.Centrality}}</td></tr>
{{end}}</table>

{{range .Terms}}<h2>Term {{.Index}}</h2>
<ul>{{range .CourseKeys}}<li>{{.}}</li>{{end}}</ul>
{{end}}
</body>
</html>
`))

// RenderHTML executes htmlTemplate against m, then runs a goquery pass
// over the rendered document to inject an id anchor on every h2 heading
// and assemble a table-of-contents <nav> from them.
func RenderHTML(w io.Writer, m *Model) error {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, m); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return fmt.Errorf("parse rendered html: %w", err)
	}

	var toc []string
	doc.Find("h2").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		id := fmt.Sprintf("section-%d", i)
		s.SetAttr("id", id)
		toc = append(toc, fmt.Sprintf(`<li><a href="#%s">%s</a></li>`, id, text))
	})

	nav := "<nav><ul>" + strings.Join(toc, "") + "</ul></nav>"
	doc.Find("h1").First().AfterHtml(nav)

	html, err := doc.Html()
	if err != nil {
		return fmt.Errorf("serialize html: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}
