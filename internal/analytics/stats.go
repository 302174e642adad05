package analytics

import (
	"fmt"
	"math"

	"salesinsights/internal/table"
)

// ColumnStats holds the descriptive statistics of one numeric column.
// Std uses the sample (n-1) convention throughout the application.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
	Std    float64 `json:"std"`
}

// StatsSummary is the per-column descriptive statistics table. A table with
// no numeric columns yields an empty (not nil, not error) summary.
type StatsSummary struct {
	Columns []ColumnStats `json:"columns"`
}

// Totals sums the named numeric columns. The grand total is the sum of the
// per-column sums, so callers should not mix columns with different units.
func Totals(t *table.Table, columns []string) (map[string]float64, float64, error) {
	totals := make(map[string]float64, len(columns))
	grand := 0.0
	for _, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			return nil, 0, fmt.Errorf("column %q not found", name)
		}
		if c.Kind != table.KindNumeric {
			return nil, 0, fmt.Errorf("column %q is not numeric", name)
		}
		s := 0.0
		for i, v := range c.Floats {
			if !c.IsNull(i) {
				s += v
			}
		}
		totals[name] = s
		grand += s
	}
	return totals, grand, nil
}

// Describe computes count, mean, median, max, min and sample std for every
// numeric column.
func Describe(t *table.Table) *StatsSummary {
	summary := &StatsSummary{}
	for i := 0; i < t.NumCols(); i++ {
		c := t.ColumnAt(i)
		if c.Kind != table.KindNumeric {
			continue
		}
		values := nonNull(c)
		cs := ColumnStats{Column: c.Name, Count: len(values)}
		if len(values) > 0 {
			cs.Mean = sum(values) / float64(len(values))
			cs.Median = median(values)
			cs.Max = AggMax.apply(values, len(values))
			cs.Min = AggMin.apply(values, len(values))
			cs.Std = sampleStd(values)
		}
		summary.Columns = append(summary.Columns, cs)
	}
	return summary
}

// Matrix is a symmetric correlation matrix over numeric columns.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Correlation computes the Pearson correlation between every pair of numeric
// columns, using the rows where both values are present. At least two numeric
// columns are required.
func Correlation(t *table.Table) (*Matrix, error) {
	var cols []table.Column
	for i := 0; i < t.NumCols(); i++ {
		if c := t.ColumnAt(i); c.Kind == table.KindNumeric {
			cols = append(cols, c)
		}
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("correlation needs at least 2 numeric columns, have %d", len(cols))
	}

	m := &Matrix{Values: make([][]float64, len(cols))}
	for _, c := range cols {
		m.Columns = append(m.Columns, c.Name)
	}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			m.Values[i][j] = pearson(cols[i], cols[j])
		}
	}
	return m, nil
}

func pearson(a, b table.Column) float64 {
	var xs, ys []float64
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) || b.IsNull(i) {
			continue
		}
		xs = append(xs, a.Floats[i])
		ys = append(ys, b.Floats[i])
	}
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}
	mx, my := sum(xs)/n, sum(ys)/n
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

func nonNull(c table.Column) []float64 {
	values := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.IsNull(i) {
			values = append(values, v)
		}
	}
	return values
}
