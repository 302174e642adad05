package exporter

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"salesinsights/internal/i18n"
	"salesinsights/internal/insights"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}"{{if .RTL}} dir="rtl"{{end}}>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: center; }
th { background: #2c3e50; color: #fff; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.GeneratedLabel}}: {{.Generated}}</p>
{{if .Insights}}<h2>{{.InsightsLabel}}</h2>
<ul>
{{range .Insights}}<li>{{.Icon}} {{.Label}}: {{.Value}}</li>
{{end}}</ul>{{end}}
{{range .Sheets}}<h2>{{.Name}}</h2>
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}</body>
</html>
`))

type htmlInsight struct {
	Icon  string
	Label string
	Value string
}

type htmlReport struct {
	Lang           string
	RTL            bool
	Title          string
	Generated      string
	GeneratedLabel string
	InsightsLabel  string
	Insights       []htmlInsight
	Sheets         []Sheet
}

// WriteHTML renders a printable report: title, generation stamp, insight
// list, then every sheet as a table. This same document serves the PDF
// download use case via the browser's print pipeline.
func WriteHTML(w io.Writer, lang string, items []insights.Insight, sheets []Sheet) error {
	report := htmlReport{
		Lang:           lang,
		RTL:            lang == "ar",
		Title:          i18n.T(lang, "title"),
		Generated:      time.Now().Format("2006-01-02 15:04:05"),
		GeneratedLabel: i18n.T(lang, "generated"),
		InsightsLabel:  i18n.T(lang, "insights"),
		Sheets:         sheets,
	}
	for _, item := range items {
		report.Insights = append(report.Insights, htmlInsight{
			Icon:  item.Icon,
			Label: i18n.T(lang, item.Key),
			Value: item.Value,
		})
	}
	if err := reportTemplate.Execute(w, report); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
