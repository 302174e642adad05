package table

import (
	"fmt"
	"math"
	"time"
)

// Select returns a new table holding only the given row indices, in the given
// order. The receiver is left untouched.
func (t *Table) Select(rows []int) (*Table, error) {
	n := t.NumRows()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, fmt.Errorf("row index %d out of range [0,%d)", r, n)
		}
	}
	cols := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		switch c.Kind {
		case KindNumeric:
			nc.Floats = make([]float64, len(rows))
			for i, r := range rows {
				nc.Floats[i] = c.Floats[r]
			}
		case KindTime:
			nc.Times = make([]time.Time, len(rows))
			for i, r := range rows {
				nc.Times[i] = c.Times[r]
			}
		default:
			nc.Strings = make([]string, len(rows))
			for i, r := range rows {
				nc.Strings[i] = c.Strings[r]
			}
		}
		cols = append(cols, nc)
	}
	return New(cols...)
}

// Head returns a new table holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	head, _ := t.Select(rows)
	return head
}

// Melt unpivots the given numeric value columns into long form with a Metric
// and a Value column, optionally carrying an id column. Chart consumers use
// this to plot several series against one axis.
func (t *Table) Melt(idVar string, valueVars []string) (*Table, error) {
	var id Column
	if idVar != "" {
		c, ok := t.Column(idVar)
		if !ok {
			return nil, fmt.Errorf("id column %q not found", idVar)
		}
		id = c
	}
	values := make([]Column, 0, len(valueVars))
	for _, name := range valueVars {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("value column %q not found", name)
		}
		if c.Kind != KindNumeric {
			return nil, fmt.Errorf("value column %q is not numeric", name)
		}
		values = append(values, c)
	}

	n := t.NumRows()
	total := n * len(values)
	metric := make([]string, 0, total)
	value := make([]float64, 0, total)
	var ids []string
	if idVar != "" {
		ids = make([]string, 0, total)
	}
	for _, vc := range values {
		for i := 0; i < n; i++ {
			if idVar != "" {
				ids = append(ids, id.ValueString(i))
			}
			metric = append(metric, vc.Name)
			if vc.IsNull(i) {
				value = append(value, math.NaN())
			} else {
				value = append(value, vc.Floats[i])
			}
		}
	}

	cols := make([]Column, 0, 3)
	if idVar != "" {
		cols = append(cols, Text(idVar, ids))
	}
	cols = append(cols, Text("Metric", metric), Numeric("Value", value))
	return New(cols...)
}
