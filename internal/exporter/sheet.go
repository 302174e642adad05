// Package exporter assembles analysis results into downloadable documents:
// Excel workbooks, HTML reports and CSV files. It consumes only the outputs
// of the normalization, aggregation and forecast packages.
package exporter

import (
	"salesinsights/internal/analytics"
	"salesinsights/internal/forecast"
	"salesinsights/internal/i18n"
	"salesinsights/internal/table"
)

// Sheet is one tabular section of a report: a name, a header row and data
// rows, already rendered to strings.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// SheetFromTable renders a table into a sheet.
func SheetFromTable(name string, t *table.Table) Sheet {
	s := Sheet{Name: name, Headers: t.Names()}
	for i := 0; i < t.NumRows(); i++ {
		row := make([]string, t.NumCols())
		for j := 0; j < t.NumCols(); j++ {
			row[j] = t.ColumnAt(j).ValueString(i)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// SheetFromStats renders a stats summary, with labels translated for lang.
func SheetFromStats(name string, stats *analytics.StatsSummary, lang string) Sheet {
	s := Sheet{
		Name: name,
		Headers: []string{
			i18n.T(lang, "stat_metric"),
			i18n.T(lang, "stat_count"),
			i18n.T(lang, "stat_mean"),
			i18n.T(lang, "stat_median"),
			i18n.T(lang, "stat_max"),
			i18n.T(lang, "stat_min"),
			i18n.T(lang, "stat_std"),
		},
	}
	for _, c := range stats.Columns {
		s.Rows = append(s.Rows, []string{
			c.Column,
			formatCount(c.Count),
			formatFloat(c.Mean),
			formatFloat(c.Median),
			formatFloat(c.Max),
			formatFloat(c.Min),
			formatFloat(c.Std),
		})
	}
	return s
}

// SheetFromPivot renders a pivot result, margins included.
func SheetFromPivot(name string, p *analytics.PivotResult) Sheet {
	return Sheet{Name: name, Headers: p.Headers(), Rows: p.RenderRows()}
}

// SheetFromForecast renders the projected points with their band.
func SheetFromForecast(name string, res *forecast.Result, lang string) Sheet {
	s := Sheet{
		Name: name,
		Headers: []string{
			keyHeader(res),
			i18n.T(lang, "forecast"),
			i18n.T(lang, "confidence") + " -",
			i18n.T(lang, "confidence") + " +",
		},
	}
	for _, p := range res.Points {
		key := formatCount(p.Index)
		if res.Dated {
			key = p.Key.Format("2006-01-02")
		}
		s.Rows = append(s.Rows, []string{
			key,
			formatFloat(p.Value),
			formatFloat(p.Lower),
			formatFloat(p.Upper),
		})
	}
	return s
}

func keyHeader(res *forecast.Result) string {
	if res.Dated {
		return "Date"
	}
	return "Index"
}
