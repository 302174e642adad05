// Package services wires the ingestion pipeline and analysis engines behind
// one session-scoped facade: raw file -> extractor -> normalizer -> table
// store -> {aggregation, forecast, insights} -> export.
package services

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"salesinsights/internal/analytics"
	"salesinsights/internal/exporter"
	"salesinsights/internal/extract"
	"salesinsights/internal/forecast"
	"salesinsights/internal/grid"
	"salesinsights/internal/insights"
	"salesinsights/internal/table"
)

// LoadResult reports what a successful ingestion produced.
type LoadResult struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

// TablePage is a bounded view of the current table for display.
type TablePage struct {
	Source  string     `json:"source"`
	Columns []string   `json:"columns"`
	Kinds   []string   `json:"kinds"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total_rows"`
}

// TotalsResult pairs the per-column totals with the grand total.
type TotalsResult struct {
	Totals map[string]float64 `json:"totals"`
	Grand  float64            `json:"grand_total"`
}

// Service coordinates one analysis session. All operations are synchronous
// and pure with respect to the loaded table snapshot; repeated calls with
// identical parameters are served from the store's memoization cache.
type Service struct {
	store      *table.Store
	reader     *extract.Reader
	normalizer *grid.Normalizer
	engine     *forecast.Engine
	logger     *slog.Logger
}

// New creates a session service.
func New(store *table.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:      store,
		reader:     extract.NewReader(logger),
		normalizer: grid.NewNormalizer(logger),
		engine:     forecast.NewEngine(logger),
		logger:     logger,
	}
}

// LoadFile ingests an uploaded file: extract a raw grid, normalize it and
// swap it into the store. On any failure the previously loaded table is left
// untouched.
func (s *Service) LoadFile(filename string, src io.Reader) (*LoadResult, error) {
	g, err := s.reader.Read(filename, src)
	if err != nil {
		return nil, err
	}
	t, err := s.normalizer.Normalize(g)
	if err != nil {
		return nil, err
	}
	if err := s.store.Load(t, filename); err != nil {
		return nil, err
	}
	return &LoadResult{Source: filename, Rows: t.NumRows(), Cols: t.NumCols()}, nil
}

// LoadSample loads the built-in demo dataset.
func (s *Service) LoadSample() (*LoadResult, error) {
	t := table.Sample()
	if err := s.store.Load(t, "Sample_Data.csv"); err != nil {
		return nil, err
	}
	return &LoadResult{Source: "Sample_Data.csv", Rows: t.NumRows(), Cols: t.NumCols()}, nil
}

// Page returns up to limit rows of the current table for display.
func (s *Service) Page(limit int) (*TablePage, error) {
	t, source, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	preview := t
	if limit > 0 && t.NumRows() > limit {
		preview = t.Head(limit)
	}
	sheet := exporter.SheetFromTable(source, preview)
	page := &TablePage{Source: source, Columns: sheet.Headers, Rows: sheet.Rows, Total: t.NumRows()}
	for i := 0; i < t.NumCols(); i++ {
		page.Kinds = append(page.Kinds, t.ColumnAt(i).Kind.String())
	}
	return page, nil
}

// Classify returns the current table's column classification.
func (s *Service) Classify() (table.Classification, error) {
	return s.store.Classification()
}

// Totals sums the selected numeric columns.
func (s *Service) Totals(columns []string) (*TotalsResult, error) {
	v, err := s.store.Memo("totals", strings.Join(columns, ","), func(t *table.Table) (interface{}, error) {
		totals, grand, err := analytics.Totals(t, columns)
		if err != nil {
			return nil, err
		}
		return &TotalsResult{Totals: totals, Grand: grand}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TotalsResult), nil
}

// Stats computes the descriptive statistics summary.
func (s *Service) Stats() (*analytics.StatsSummary, error) {
	v, err := s.store.Memo("stats", "", func(t *table.Table) (interface{}, error) {
		return analytics.Describe(t), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.StatsSummary), nil
}

// Correlation computes the numeric correlation matrix.
func (s *Service) Correlation() (*analytics.Matrix, error) {
	v, err := s.store.Memo("correlation", "", func(t *table.Table) (interface{}, error) {
		return analytics.Correlation(t)
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.Matrix), nil
}

// Pivot cross-tabulates the current table.
func (s *Service) Pivot(spec analytics.PivotSpec) (*analytics.PivotResult, error) {
	params := fmt.Sprintf("%q|%q|%q|%s", spec.Rows, spec.Cols, spec.Values, spec.Agg)
	v, err := s.store.Memo("pivot", params, func(t *table.Table) (interface{}, error) {
		return analytics.Pivot(t, spec)
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.PivotResult), nil
}

// Forecast fits and projects a trend over the selected column.
func (s *Service) Forecast(req forecast.Request) (*forecast.Result, error) {
	params := fmt.Sprintf("%s|%s|%s|%d", req.ValueColumn, req.DateColumn, req.Freq, req.Horizon)
	v, err := s.store.Memo("forecast", params, func(t *table.Table) (interface{}, error) {
		return s.engine.Forecast(t, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*forecast.Result), nil
}

// Insights generates the automated keyword insights.
func (s *Service) Insights() ([]insights.Insight, error) {
	v, err := s.store.Memo("insights", "", func(t *table.Table) (interface{}, error) {
		return insights.Generate(t, s.logger), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]insights.Insight), nil
}

// reportSheets assembles the standard report: data preview, stats, and the
// insight list, localized for lang.
func (s *Service) reportSheets(lang string, headRows int) ([]exporter.Sheet, []insights.Insight, error) {
	t, _, err := s.store.Current()
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.Stats()
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Insights()
	if err != nil {
		return nil, nil, err
	}
	preview := t
	if headRows > 0 {
		preview = t.Head(headRows)
	}
	sheets := []exporter.Sheet{
		exporter.SheetFromTable("Data", preview),
		exporter.SheetFromStats("Statistics", stats, lang),
	}
	return sheets, items, nil
}

// ExportExcel writes the standard report as an xlsx workbook.
func (s *Service) ExportExcel(w io.Writer, lang string, headRows int) error {
	sheets, _, err := s.reportSheets(lang, headRows)
	if err != nil {
		return err
	}
	return exporter.WriteExcel(w, sheets)
}

// ExportHTML writes the standard report as a printable HTML document.
func (s *Service) ExportHTML(w io.Writer, lang string, headRows int) error {
	sheets, items, err := s.reportSheets(lang, headRows)
	if err != nil {
		return err
	}
	return exporter.WriteHTML(w, lang, items, sheets)
}

// ExportPivotExcel writes a single-sheet workbook holding the pivot result
// for spec, margins included.
func (s *Service) ExportPivotExcel(w io.Writer, spec analytics.PivotSpec) error {
	res, err := s.Pivot(spec)
	if err != nil {
		return err
	}
	return exporter.WriteExcel(w, []exporter.Sheet{exporter.SheetFromPivot("Pivot", res)})
}

// ExportCSV writes the full current table as CSV with a UTF-8 BOM.
func (s *Service) ExportCSV(w io.Writer) error {
	t, source, err := s.store.Current()
	if err != nil {
		return err
	}
	return exporter.WriteCSV(w, exporter.SheetFromTable(source, t), exporter.CSVOptions{BOMPrefix: true})
}
