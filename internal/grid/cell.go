package grid

import (
	"strconv"
	"strings"
)

type cellKind uint8

const (
	kindBlank cellKind = iota
	kindNumber
	kindText
)

// Cell is a single raw grid value before any type inference: absent, a
// number, or text. Extractors keep the distinction explicit instead of
// collapsing everything into strings with sentinel values.
type Cell struct {
	kind cellKind
	num  float64
	text string
}

// Blank returns an absent cell.
func Blank() Cell {
	return Cell{kind: kindBlank}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: kindNumber, num: v}
}

// Text returns a textual cell.
func Text(s string) Cell {
	return Cell{kind: kindText, text: s}
}

// IsBlank reports whether the cell carries no value. Whitespace-only text
// counts as blank, matching how merged and padded spreadsheet cells arrive
// from extractors.
func (c Cell) IsBlank() bool {
	switch c.kind {
	case kindBlank:
		return true
	case kindText:
		return strings.TrimSpace(c.text) == ""
	default:
		return false
	}
}

// String renders the cell's raw content. Blank cells render empty.
func (c Cell) String() string {
	switch c.kind {
	case kindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case kindText:
		return c.text
	default:
		return ""
	}
}

// Number attempts to read the cell as a number. Textual cells parse with
// surrounding whitespace and thousands separators tolerated ("1,250.00").
func (c Cell) Number() (float64, bool) {
	switch c.kind {
	case kindNumber:
		return c.num, true
	case kindText:
		s := strings.ReplaceAll(strings.TrimSpace(c.text), ",", "")
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// RawGrid is an untyped 2-D grid of cells as delivered by the format
// extractors. Rows may be ragged; consumers treat missing trailing cells as
// blank. No header position is assumed.
type RawGrid [][]Cell

// FromStrings converts extractor output of plain strings into a grid. Empty
// strings become blank cells.
func FromStrings(rows [][]string) RawGrid {
	g := make(RawGrid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, s := range row {
			if strings.TrimSpace(s) == "" {
				cells[j] = Blank()
			} else {
				cells[j] = Text(s)
			}
		}
		g[i] = cells
	}
	return g
}

// Append concatenates another grid's rows below this one. Column alignment
// across concatenated tables is the extractor's responsibility.
func (g RawGrid) Append(other RawGrid) RawGrid {
	return append(g, other...)
}

// NumCols returns the widest row length.
func (g RawGrid) NumCols() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// at returns the cell at (row i, col j), blank when the row is too short.
func (g RawGrid) at(i, j int) Cell {
	if j >= len(g[i]) {
		return Blank()
	}
	return g[i][j]
}
