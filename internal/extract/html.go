package extract

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"salesinsights/internal/grid"
)

// readHTML extracts every <table> element from the document and concatenates
// their rows in document order. Column alignment across tables is assumed,
// matching the contract with upstream report generators.
func (r *Reader) readHTML(src io.Reader) (grid.RawGrid, error) {
	doc, err := goquery.NewDocumentFromReader(src)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var combined grid.RawGrid
	tables := 0
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		var rows [][]string
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		if len(rows) > 0 {
			combined = combined.Append(grid.FromStrings(rows))
			tables++
		}
	})

	if tables == 0 {
		return nil, ErrNoTables
	}
	r.logger.Debug("html extracted", slog.Int("tables", tables), slog.Int("rows", len(combined)))
	return combined, nil
}
