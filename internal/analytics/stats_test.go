package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesinsights/internal/table"
)

func mustTable(t *testing.T, cols ...table.Column) *table.Table {
	t.Helper()
	tab, err := table.New(cols...)
	require.NoError(t, err)
	return tab
}

func TestTotals(t *testing.T) {
	tab := mustTable(t,
		table.Numeric("Sales", []float64{100, 150, math.NaN()}),
		table.Numeric("Profit", []float64{20, 30, 10}),
		table.Text("Region", []string{"N", "S", "N"}),
	)

	totals, grand, err := Totals(tab, []string{"Sales", "Profit"})
	require.NoError(t, err)
	assert.InDelta(t, 250, totals["Sales"], 1e-12)
	assert.InDelta(t, 60, totals["Profit"], 1e-12)
	assert.InDelta(t, 310, grand, 1e-12)
}

func TestTotals_Errors(t *testing.T) {
	tab := mustTable(t, table.Text("Region", []string{"N"}))

	_, _, err := Totals(tab, []string{"Sales"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = Totals(tab, []string{"Region"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestDescribe(t *testing.T) {
	tab := mustTable(t,
		table.Numeric("V", []float64{1, 2, 3, 4, 5}),
		table.Text("Region", []string{"a", "b", "c", "d", "e"}),
	)

	got := Describe(tab)
	require.Len(t, got.Columns, 1)

	cs := got.Columns[0]
	assert.Equal(t, "V", cs.Column)
	assert.Equal(t, 5, cs.Count)
	assert.InDelta(t, 3, cs.Mean, 1e-12)
	assert.InDelta(t, 3, cs.Median, 1e-12)
	assert.InDelta(t, 5, cs.Max, 1e-12)
	assert.InDelta(t, 1, cs.Min, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), cs.Std, 1e-12)
}

func TestDescribe_SkipsNulls(t *testing.T) {
	tab := mustTable(t, table.Numeric("V", []float64{2, math.NaN(), 4}))

	got := Describe(tab)
	require.Len(t, got.Columns, 1)
	assert.Equal(t, 2, got.Columns[0].Count)
	assert.InDelta(t, 3, got.Columns[0].Mean, 1e-12)
}

func TestDescribe_NoNumericColumns(t *testing.T) {
	tab := mustTable(t, table.Text("Region", []string{"N"}))
	got := Describe(tab)
	assert.Empty(t, got.Columns)
}

func TestCorrelation(t *testing.T) {
	tab := mustTable(t,
		table.Numeric("X", []float64{1, 2, 3, 4}),
		table.Numeric("Y", []float64{2, 4, 6, 8}),
		table.Numeric("Z", []float64{8, 6, 4, 2}),
	)

	m, err := Correlation(tab)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, m.Columns)

	assert.InDelta(t, 1, m.Values[0][0], 1e-12)
	assert.InDelta(t, 1, m.Values[0][1], 1e-12)
	assert.InDelta(t, -1, m.Values[0][2], 1e-12)
	assert.InDelta(t, m.Values[1][2], m.Values[2][1], 1e-12)
}

func TestCorrelation_PairwiseCompleteRows(t *testing.T) {
	tab := mustTable(t,
		table.Numeric("X", []float64{1, 2, math.NaN(), 4}),
		table.Numeric("Y", []float64{2, 4, 100, 8}),
	)

	m, err := Correlation(tab)
	require.NoError(t, err)
	assert.InDelta(t, 1, m.Values[0][1], 1e-12, "the row with a null X must be excluded")
}

func TestCorrelation_Degenerate(t *testing.T) {
	_, err := Correlation(mustTable(t, table.Numeric("X", []float64{1, 2})))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 numeric columns")

	m, err := Correlation(mustTable(t,
		table.Numeric("X", []float64{1, 1, 1}),
		table.Numeric("Y", []float64{1, 2, 3}),
	))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.Values[0][1]), "zero variance yields NaN")
}
