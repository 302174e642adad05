package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"salesinsights/internal/grid"
)

// cellGap is the horizontal whitespace, in PDF points, separating two text
// fragments that belong to different table cells.
const cellGap = 6.0

// readPDF extracts tabular text from each page. Text fragments are grouped
// into rows by the PDF library and split into cells wherever a horizontal gap
// wider than cellGap appears, which recovers column boundaries from ruled and
// whitespace-aligned tables alike.
func (r *Reader) readPDF(src io.Reader) (grid.RawGrid, error) {
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var rows [][]string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		textRows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		for _, textRow := range textRows {
			if cells := splitRow(textRow.Content); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
	}

	if len(rows) == 0 {
		return nil, ErrNoTables
	}
	r.logger.Debug("pdf extracted", slog.Int("pages", reader.NumPage()), slog.Int("rows", len(rows)))
	return grid.FromStrings(rows), nil
}

// splitRow merges a row's text fragments into cells, starting a new cell at
// every gap wider than cellGap.
func splitRow(texts []pdf.Text) []string {
	var cells []string
	var current strings.Builder
	lastEnd := 0.0
	for i, t := range texts {
		if i > 0 && t.X-lastEnd > cellGap {
			if s := strings.TrimSpace(current.String()); s != "" {
				cells = append(cells, s)
			}
			current.Reset()
		}
		current.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}
