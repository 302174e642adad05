package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"salesinsights/internal/analytics"
	"salesinsights/internal/exporter"
	"salesinsights/internal/forecast"
	"salesinsights/internal/i18n"
	"salesinsights/internal/insights"
	"salesinsights/internal/services"
	"salesinsights/internal/table"
)

func main() {
	in := flag.String("in", "", "input data file (csv, xlsx, html, or pdf); empty loads the bundled sample")
	out := flag.String("out", "reports", "output directory for the generated report files")
	lang := flag.String("lang", i18n.DefaultLanguage, "report language (en or ar)")
	forecastCol := flag.String("forecast-col", "", "numeric column to forecast; empty skips forecasting")
	dateCol := flag.String("date-col", "", "temporal column for the forecast axis; empty uses row position")
	freqName := flag.String("freq", "monthly", "resample frequency for dated forecasts (daily, weekly, monthly, quarterly, yearly)")
	horizon := flag.Int("horizon", 6, "number of periods to project")
	headRows := flag.Int("head", 100, "maximum data rows included in the report preview")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger, *in, *out, *lang, *forecastCol, *dateCol, *freqName, *horizon, *headRows); err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, out, lang, forecastCol, dateCol, freqName string, horizon, headRows int) error {
	store := table.NewStore(logger)
	service := services.New(store, logger)

	if in == "" {
		if _, err := service.LoadSample(); err != nil {
			return err
		}
		logger.Info("loaded bundled sample data")
	} else {
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		res, err := service.LoadFile(filepath.Base(in), f)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", in, err)
		}
		logger.Info("loaded input file",
			slog.String("path", in),
			slog.Int("rows", res.Rows),
			slog.Int("columns", res.Cols))
	}

	// Stats, insights, and the optional forecast are independent reads of
	// the same immutable snapshot, so they run concurrently.
	var (
		stats *analytics.StatsSummary
		items []insights.Insight
		fc    *forecast.Result
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		stats, err = service.Stats()
		return err
	})
	g.Go(func() error {
		var err error
		items, err = service.Insights()
		return err
	})
	if forecastCol != "" {
		freq, err := forecast.ParseFreq(freqName)
		if err != nil {
			return err
		}
		g.Go(func() error {
			var err error
			fc, err = service.Forecast(forecast.Request{
				DateColumn:  dateCol,
				ValueColumn: forecastCol,
				Freq:        freq,
				Horizon:     horizon,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t, source, err := store.Current()
	if err != nil {
		return err
	}
	preview := t
	if headRows > 0 {
		preview = t.Head(headRows)
	}
	sheets := []exporter.Sheet{
		exporter.SheetFromTable("Data", preview),
		exporter.SheetFromStats("Statistics", stats, lang),
	}
	if fc != nil {
		sheets = append(sheets, exporter.SheetFromForecast("Forecast", fc, lang))
		logger.Info("forecast fitted",
			slog.String("column", forecastCol),
			slog.Int("degree", fc.Degree),
			slog.Int("horizon", len(fc.Points)))
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFile(filepath.Join(out, "sales_report.xlsx"), func(f *os.File) error {
		return exporter.WriteExcel(f, sheets)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(out, "sales_report.html"), func(f *os.File) error {
		return exporter.WriteHTML(f, lang, items, sheets)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(out, "sales_data.csv"), func(f *os.File) error {
		return exporter.WriteCSV(f, exporter.SheetFromTable(source, t), exporter.CSVOptions{BOMPrefix: true})
	}); err != nil {
		return err
	}

	logger.Info("report written",
		slog.String("dir", out),
		slog.String("lang", lang),
		slog.Int("insights", len(items)))
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
