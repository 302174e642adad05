package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"salesinsights/internal/table"
)

var (
	// ErrEmptyTable means every row and column of the grid was empty
	ErrEmptyTable = errors.New("table is empty after cleaning")
	// ErrNoValidRows means no data rows survived header extraction
	ErrNoValidRows = errors.New("no valid data rows remain")
)

// placeholderPrefix marks auto-generated header names from upstream tools
// ("Unnamed: 3" and friends) that must be replaced with synthetic names.
const placeholderPrefix = "Unnamed"

// Normalizer turns a raw untyped grid into a clean typed table: it drops
// empty rows and columns, detects the header row, sanitizes column names and
// coerces numeric-looking columns.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts the grid into a typed table.
//
// The header is the densest row: the one with the most non-blank cells, ties
// broken by the lowest row index. Banner rows above it are discarded. Column
// names that are blank or start with "Unnamed" become Column_<i>, where i is
// the column's position after empty-column removal. A column is coerced to
// numeric only when every non-blank cell in it parses as a number. Duplicate
// names keep the first column and drop the rest.
func (n *Normalizer) Normalize(g RawGrid) (*table.Table, error) {
	rows := keepNonBlankRows(g)
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	cols := keepNonBlankCols(g, rows)
	if len(cols) == 0 {
		return nil, ErrEmptyTable
	}

	header := detectHeader(g, rows, cols)
	names := make([]string, len(cols))
	for j, c := range cols {
		name := strings.TrimSpace(g.at(rows[header], c).String())
		if name == "" || strings.HasPrefix(name, placeholderPrefix) {
			name = fmt.Sprintf("Column_%d", j)
		}
		names[j] = name
	}

	// Body rows sit strictly below the header; rows that lost their content
	// to column removal are dropped so data rows stay contiguous from zero.
	var body []int
	for _, r := range rows[header+1:] {
		blank := true
		for _, c := range cols {
			if !g.at(r, c).IsBlank() {
				blank = false
				break
			}
		}
		if !blank {
			body = append(body, r)
		}
	}
	if len(body) == 0 {
		return nil, ErrNoValidRows
	}

	columns := make([]table.Column, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for j, c := range cols {
		if seen[names[j]] {
			n.logger.Warn("dropping duplicate column", slog.String("name", names[j]), slog.Int("position", j))
			continue
		}
		seen[names[j]] = true
		columns = append(columns, buildColumn(g, names[j], body, c))
	}

	t, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("assemble table: %w", err)
	}
	n.logger.Info("grid normalized",
		slog.Int("header_row", rows[header]),
		slog.Int("rows", t.NumRows()),
		slog.Int("cols", t.NumCols()),
	)
	return t, nil
}

// keepNonBlankRows returns the indices of rows holding at least one value.
func keepNonBlankRows(g RawGrid) []int {
	var rows []int
	for i, row := range g {
		for _, c := range row {
			if !c.IsBlank() {
				rows = append(rows, i)
				break
			}
		}
	}
	return rows
}

// keepNonBlankCols returns the indices of columns holding at least one value
// across the kept rows.
func keepNonBlankCols(g RawGrid, rows []int) []int {
	var cols []int
	for j := 0; j < g.NumCols(); j++ {
		for _, r := range rows {
			if !g.at(r, j).IsBlank() {
				cols = append(cols, j)
				break
			}
		}
	}
	return cols
}

// detectHeader returns the position (within rows) of the densest row. A
// strict greater-than comparison makes the earliest of tied rows win, which
// keeps detection deterministic.
func detectHeader(g RawGrid, rows, cols []int) int {
	best, bestCount := 0, -1
	for i, r := range rows {
		count := 0
		for _, c := range cols {
			if !g.at(r, c).IsBlank() {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// buildColumn types one column: numeric when every non-blank cell parses as a
// number (an all-or-nothing decision), textual otherwise. Blanks stay null.
func buildColumn(g RawGrid, name string, body []int, col int) table.Column {
	numeric := true
	for _, r := range body {
		cell := g.at(r, col)
		if cell.IsBlank() {
			continue
		}
		if _, ok := cell.Number(); !ok {
			numeric = false
			break
		}
	}

	if numeric {
		values := make([]float64, len(body))
		for i, r := range body {
			cell := g.at(r, col)
			if cell.IsBlank() {
				values[i] = math.NaN()
				continue
			}
			v, _ := cell.Number()
			values[i] = v
		}
		return table.Numeric(name, values)
	}

	values := make([]string, len(body))
	for i, r := range body {
		cell := g.at(r, col)
		if cell.IsBlank() {
			continue
		}
		values[i] = strings.TrimSpace(cell.String())
	}
	return table.Text(name, values)
}
