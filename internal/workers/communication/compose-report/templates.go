// internal/workers/communication/compose-report/templates.go
package composereport

import (
	htmltemplate "html/template"
	texttemplate "text/template"

	"admission-workers/internal/models"
)

// reportView is the data handed to both templates. The same view renders the
// plain-text and the HTML body so the two never drift apart.
type reportView struct {
	RecipientName  string
	Assessment     string
	Grades         models.GradeSet
	Colleges       []collegeRow
	Plan           []string
	Simulated      bool
	SimulationNote string
	GeneratedAt    string
}

type collegeRow struct {
	College    string
	Percentage int
	Chance     string
	Color      string
	Bucket     string
}

const reportTextTemplate = `{{if .RecipientName}}Hello {{.RecipientName}},{{else}}Hello,{{end}}

Here is your college admission analysis.
{{if .Simulated}}
Note: {{.SimulationNote}}
{{end}}
{{.Assessment}}

Grades
  Academic        {{.Grades.Academic}}
  Extracurricular {{.Grades.Extracurricular}}
  Awards          {{.Grades.Awards}}
  Overall         {{.Grades.Overall}}

College chances
{{range .Colleges}}  {{.College}}: {{.Percentage}}% ({{.Chance}}){{if .Bucket}} [{{.Bucket}}]{{end}}
{{end}}{{if .Plan}}
Improvement plan
{{range $i, $step := .Plan}}  {{inc $i}}. {{$step}}
{{end}}{{end}}
Generated on {{.GeneratedAt}}
`

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333333;">
  <h2>{{if .RecipientName}}Hello {{.RecipientName}},{{else}}Hello,{{end}}</h2>
  <p>Here is your college admission analysis.</p>
{{if .Simulated}}  <p style="background-color: #fff8e1; padding: 8px;"><em>{{.SimulationNote}}</em></p>
{{end}}  <p>{{.Assessment}}</p>
  <h3>Grades</h3>
  <table cellpadding="4" cellspacing="0">
    <tr><td>Academic</td><td><strong>{{.Grades.Academic}}</strong></td></tr>
    <tr><td>Extracurricular</td><td><strong>{{.Grades.Extracurricular}}</strong></td></tr>
    <tr><td>Awards</td><td><strong>{{.Grades.Awards}}</strong></td></tr>
    <tr><td>Overall</td><td><strong>{{.Grades.Overall}}</strong></td></tr>
  </table>
  <h3>College chances</h3>
  <table cellpadding="4" cellspacing="0">
{{range .Colleges}}    <tr><td>{{.College}}</td><td style="color: {{.Color}};"><strong>{{.Percentage}}% {{.Chance}}</strong></td><td>{{.Bucket}}</td></tr>
{{end}}  </table>
{{if .Plan}}  <h3>Improvement plan</h3>
  <ol>
{{range .Plan}}    <li>{{.}}</li>
{{end}}  </ol>
{{end}}  <p style="color: #888888; font-size: 12px;">Generated on {{.GeneratedAt}}</p>
</body>
</html>
`

// Both templates are parsed once at startup so a syntax slip fails fast
// instead of surfacing on the first job.
var (
	textFuncs = texttemplate.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	reportText = texttemplate.Must(texttemplate.New("report-text").Funcs(textFuncs).Parse(reportTextTemplate))
	reportHTML = htmltemplate.Must(htmltemplate.New("report-html").Parse(reportHTMLTemplate))
)
