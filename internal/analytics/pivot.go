package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"salesinsights/internal/table"
)

// ErrNoValueColumns rejects pivot requests that need value columns but name
// none. Only the count aggregation can run without them.
var ErrNoValueColumns = errors.New("no value columns selected")

// MarginLabel names the subtotal row and column of a pivot result.
const MarginLabel = "All"

// countColumn is the synthetic value column used when counting group rows.
const countColumn = "Count"

// PivotSpec describes a pivot computation. Row and column field order is
// significant: it controls key nesting.
type PivotSpec struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Values []string `json:"values"`
	Agg    Agg      `json:"-"`
}

// PivotResult is a dense cross-tabulation. Cells for row/column combinations
// absent from the data hold 0, which is indistinguishable from a true zero
// aggregate; downstream consumers rely on the dense zero-filled shape, so
// this lossy fill is deliberate.
type PivotResult struct {
	RowFields    []string `json:"row_fields"`
	ColFields    []string `json:"col_fields"`
	ValueColumns []string `json:"value_columns"`
	Agg          string   `json:"agg"`

	RowKeys [][]string `json:"row_keys"`
	ColKeys [][]string `json:"col_keys"`

	// Body is indexed [row][col][value column].
	Body [][][]float64 `json:"body"`
	// RowMargins is the "All" column: one aggregate per row key and value.
	RowMargins [][]float64 `json:"row_margins"`
	// ColMargins is the "All" row: one aggregate per column key and value.
	ColMargins [][]float64 `json:"col_margins"`
	// Grand holds the overall aggregate per value column.
	Grand []float64 `json:"grand"`
}

type pivotCell struct {
	values []float64
	count  int
}

// Pivot cross-tabulates the table. Margins use the same aggregation as the
// body, so a mean margin is the mean over the full axis, not a combination
// of sub-means.
func Pivot(t *table.Table, spec PivotSpec) (*PivotResult, error) {
	if spec.Agg != AggCount && len(spec.Values) == 0 {
		return nil, fmt.Errorf("%w for aggregation %q", ErrNoValueColumns, spec.Agg)
	}

	rowCols, err := lookupAll(t, spec.Rows)
	if err != nil {
		return nil, err
	}
	colCols, err := lookupAll(t, spec.Cols)
	if err != nil {
		return nil, err
	}
	valueCols, err := lookupAll(t, spec.Values)
	if err != nil {
		return nil, err
	}
	for _, c := range valueCols {
		if spec.Agg != AggCount && c.Kind != table.KindNumeric {
			return nil, fmt.Errorf("value column %q is not numeric", c.Name)
		}
	}
	valueNames := spec.Values
	if len(valueCols) == 0 {
		// Count with no value columns counts rows per group.
		valueNames = []string{countColumn}
	}
	nv := len(valueNames)

	body := make(map[string]map[string][]pivotCell)
	rowAxis := make(map[string][]pivotCell)
	colAxis := make(map[string][]pivotCell)
	grand := make([]pivotCell, nv)
	rowKeySet := make(map[string][]string)
	colKeySet := make(map[string][]string)

	for i := 0; i < t.NumRows(); i++ {
		rk, ok := groupKey(rowCols, i)
		if !ok {
			continue
		}
		ck, ok := groupKey(colCols, i)
		if !ok {
			continue
		}
		rkey, ckey := joinKey(rk), joinKey(ck)
		rowKeySet[rkey] = rk
		colKeySet[ckey] = ck

		if _, ok := body[rkey]; !ok {
			body[rkey] = make(map[string][]pivotCell)
		}
		if _, ok := body[rkey][ckey]; !ok {
			body[rkey][ckey] = make([]pivotCell, nv)
		}
		if _, ok := rowAxis[rkey]; !ok {
			rowAxis[rkey] = make([]pivotCell, nv)
		}
		if _, ok := colAxis[ckey]; !ok {
			colAxis[ckey] = make([]pivotCell, nv)
		}

		for v := 0; v < nv; v++ {
			var num float64
			var hasNum, counted bool
			if len(valueCols) == 0 {
				counted = true
			} else {
				c := valueCols[v]
				if !c.IsNull(i) {
					counted = true
					if c.Kind == table.KindNumeric {
						num, hasNum = c.Floats[i], true
					}
				}
			}
			accumulate(&body[rkey][ckey][v], num, hasNum, counted)
			accumulate(&rowAxis[rkey][v], num, hasNum, counted)
			accumulate(&colAxis[ckey][v], num, hasNum, counted)
			accumulate(&grand[v], num, hasNum, counted)
		}
	}

	rowKeys := sortedKeys(rowKeySet)
	colKeys := sortedKeys(colKeySet)

	res := &PivotResult{
		RowFields:    spec.Rows,
		ColFields:    spec.Cols,
		ValueColumns: valueNames,
		Agg:          spec.Agg.String(),
		RowKeys:      rowKeys,
		ColKeys:      colKeys,
		Body:         make([][][]float64, len(rowKeys)),
		RowMargins:   make([][]float64, len(rowKeys)),
		ColMargins:   make([][]float64, len(colKeys)),
		Grand:        make([]float64, nv),
	}
	for r, rk := range rowKeys {
		rkey := joinKey(rk)
		res.Body[r] = make([][]float64, len(colKeys))
		res.RowMargins[r] = applyAll(spec.Agg, rowAxis[rkey], nv)
		for c, ck := range colKeys {
			res.Body[r][c] = applyAll(spec.Agg, body[rkey][joinKey(ck)], nv)
		}
	}
	for c, ck := range colKeys {
		res.ColMargins[c] = applyAll(spec.Agg, colAxis[joinKey(ck)], nv)
	}
	for v := range grand {
		res.Grand[v] = spec.Agg.apply(grand[v].values, grand[v].count)
	}
	return res, nil
}

// Headers renders the flat header row of the dense result, row fields first,
// then one label per column key and value column, then the margin labels.
func (p *PivotResult) Headers() []string {
	headers := append([]string{}, p.RowFields...)
	if len(p.RowFields) == 0 {
		headers = append(headers, "")
	}
	for _, ck := range p.ColKeys {
		for _, v := range p.ValueColumns {
			headers = append(headers, columnLabel(ck, v, len(p.ColFields) > 0, len(p.ValueColumns) > 1))
		}
	}
	for _, v := range p.ValueColumns {
		headers = append(headers, columnLabel([]string{MarginLabel}, v, len(p.ColFields) > 0, len(p.ValueColumns) > 1))
	}
	return headers
}

// RenderRows renders the dense body including the trailing "All" margin row.
func (p *PivotResult) RenderRows() [][]string {
	var out [][]string
	for r, rk := range p.RowKeys {
		row := append([]string{}, rk...)
		if len(rk) == 0 {
			row = append(row, "")
		}
		for c := range p.ColKeys {
			for _, v := range p.Body[r][c] {
				row = append(row, formatNumber(v))
			}
		}
		for _, v := range p.RowMargins[r] {
			row = append(row, formatNumber(v))
		}
		out = append(out, row)
	}

	margin := []string{MarginLabel}
	for i := 1; i < len(p.RowFields); i++ {
		margin = append(margin, "")
	}
	for c := range p.ColKeys {
		for _, v := range p.ColMargins[c] {
			margin = append(margin, formatNumber(v))
		}
	}
	for _, v := range p.Grand {
		margin = append(margin, formatNumber(v))
	}
	return append(out, margin)
}

func columnLabel(key []string, value string, hasColFields, multiValue bool) string {
	if !hasColFields {
		// Without column grouping the body carries a single zero-length key.
		if len(key) == 0 || key[0] != MarginLabel {
			return value
		}
		if multiValue {
			return value + " | " + MarginLabel
		}
		return MarginLabel
	}
	label := strings.Join(key, " / ")
	if multiValue {
		return value + " | " + label
	}
	return label
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func lookupAll(t *table.Table, names []string) ([]table.Column, error) {
	cols := make([]table.Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// groupKey builds a row's key over the grouping columns. Rows with a null in
// any grouping column are excluded from the pivot entirely.
func groupKey(cols []table.Column, row int) ([]string, bool) {
	key := make([]string, len(cols))
	for i, c := range cols {
		if c.IsNull(row) {
			return nil, false
		}
		key[i] = c.ValueString(row)
	}
	return key, true
}

func joinKey(parts []string) string {
	return strings.Join(parts, "\x00")
}

func accumulate(cell *pivotCell, num float64, hasNum, counted bool) {
	if counted {
		cell.count++
	}
	if hasNum {
		cell.values = append(cell.values, num)
	}
}

func applyAll(agg Agg, cells []pivotCell, nv int) []float64 {
	out := make([]float64, nv)
	for v := 0; v < nv; v++ {
		if cells == nil {
			continue // absent combination, dense zero fill
		}
		out[v] = agg.apply(cells[v].values, cells[v].count)
	}
	return out
}

func sortedKeys(set map[string][]string) [][]string {
	joined := make([]string, 0, len(set))
	for k := range set {
		joined = append(joined, k)
	}
	sort.Strings(joined)
	out := make([][]string, len(joined))
	for i, k := range joined {
		out[i] = set[k]
	}
	return out
}
