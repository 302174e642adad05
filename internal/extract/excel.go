package extract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"salesinsights/internal/grid"
)

// readWorkbook extracts every sheet of an xlsx workbook and concatenates the
// sheets' rows in workbook order. Legacy .xls containers are not OOXML and
// fail here as malformed files. Per-sheet grid conversion fans out over an
// errgroup; the excelize row reads themselves stay on this goroutine since
// the workbook handle is not safe for concurrent access.
func (r *Reader) readWorkbook(src io.Reader) (grid.RawGrid, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	rawRows := make([][][]string, len(sheets))
	for i, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		rawRows[i] = rows
	}

	grids := make([]grid.RawGrid, len(sheets))
	var g errgroup.Group
	for i := range rawRows {
		i := i // go directive is below 1.22, so the loop variable is per-loop, not per-iteration
		g.Go(func() error {
			grids[i] = grid.FromStrings(rawRows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined grid.RawGrid
	total := 0
	for i, sheetGrid := range grids {
		combined = combined.Append(sheetGrid)
		total += len(sheetGrid)
		r.logger.Debug("sheet extracted",
			slog.String("sheet", sheets[i]),
			slog.Int("rows", len(sheetGrid)),
		)
	}
	if total == 0 {
		return nil, ErrNoTables
	}
	return combined, nil
}
