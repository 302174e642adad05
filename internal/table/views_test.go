package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *Table {
	t.Helper()
	tab, err := New(
		Text("Month", []string{"Jan", "Feb", "Mar"}),
		Numeric("Sales", []float64{100, 150, 90}),
		Numeric("Profit", []float64{20, 35, 10}),
	)
	require.NoError(t, err)
	return tab
}

func TestSelect_ReordersWithoutMutating(t *testing.T) {
	tab := fixture(t)

	got, err := tab.Select([]int{2, 0})
	require.NoError(t, err)

	month, _ := got.Column("Month")
	assert.Equal(t, []string{"Mar", "Jan"}, month.Strings)

	// The source table is untouched.
	orig, _ := tab.Column("Month")
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, orig.Strings)
}

func TestSelect_OutOfRange(t *testing.T) {
	tab := fixture(t)
	_, err := tab.Select([]int{0, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestHead(t *testing.T) {
	tab := fixture(t)

	assert.Equal(t, 2, tab.Head(2).NumRows())
	assert.Equal(t, 3, tab.Head(10).NumRows())
	assert.Equal(t, 0, tab.Head(0).NumRows())
	assert.Equal(t, 0, tab.Head(-1).NumRows())
}

func TestMelt(t *testing.T) {
	tab := fixture(t)

	got, err := tab.Melt("Month", []string{"Sales", "Profit"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Month", "Metric", "Value"}, got.Names())
	assert.Equal(t, 6, got.NumRows())

	metric, _ := got.Column("Metric")
	assert.Equal(t, []string{"Sales", "Sales", "Sales", "Profit", "Profit", "Profit"}, metric.Strings)

	value, _ := got.Column("Value")
	assert.Equal(t, []float64{100, 150, 90, 20, 35, 10}, value.Floats)
}

func TestMelt_Errors(t *testing.T) {
	tab := fixture(t)

	_, err := tab.Melt("Missing", []string{"Sales"})
	assert.Error(t, err)

	_, err = tab.Melt("Month", []string{"Month"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}
