package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesinsights/internal/table"
)

func TestNormalize_BannerAboveHeader(t *testing.T) {
	g := FromStrings([][]string{
		{"Quarterly Report"},
		{"Date", "Sales"},
		{"2024-01", "100"},
		{"2024-02", "150"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Sales"}, got.Names())
	assert.Equal(t, 2, got.NumRows())

	sales, ok := got.Column("Sales")
	require.True(t, ok)
	assert.Equal(t, table.KindNumeric, sales.Kind)
	assert.Equal(t, []float64{100, 150}, sales.Floats)

	date, ok := got.Column("Date")
	require.True(t, ok)
	assert.Equal(t, table.KindText, date.Kind)
	assert.Equal(t, []string{"2024-01", "2024-02"}, date.Strings)
}

func TestNormalize_HeaderTieEarliestWins(t *testing.T) {
	// Both rows are fully dense; the first must be chosen as header.
	g := FromStrings([][]string{
		{"Name", "Amount"},
		{"Widget", "12"},
		{"Gadget", "7"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, got.Names())
	assert.Equal(t, 2, got.NumRows())
}

func TestNormalize_PlaceholderAndBlankHeaders(t *testing.T) {
	g := FromStrings([][]string{
		{"Region", "", "Unnamed: 2"},
		{"North", "5", "x"},
		{"South", "9", "y"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Column_1", "Column_2"}, got.Names())
}

func TestNormalize_EmptyRowsAndColumnsDropped(t *testing.T) {
	g := RawGrid{
		{Blank(), Blank(), Blank()},
		{Blank(), Text("A"), Text("B")},
		{Blank(), Text("1"), Text("2")},
		{Text("   "), Text("   "), Blank()},
		{Blank(), Text("3"), Text("4")},
	}

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got.Names())
	assert.Equal(t, 2, got.NumRows())
}

func TestNormalize_NumericCoercionAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   table.Kind
	}{
		{"clean integers", []string{"1", "2", "3"}, table.KindNumeric},
		{"thousands separators", []string{"1,250.00", "900"}, table.KindNumeric},
		{"one bad value poisons the column", []string{"1", "2", "n/a"}, table.KindText},
		{"blanks do not poison", []string{"1", "", "3"}, table.KindNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{{"ID", "Value"}}
			for i, v := range tt.values {
				rows = append(rows, []string{fmt.Sprintf("r%d", i), v})
			}
			got, err := NewNormalizer(nil).Normalize(FromStrings(rows))
			require.NoError(t, err)
			col, ok := got.Column("Value")
			require.True(t, ok)
			assert.Equal(t, tt.want, col.Kind)
		})
	}
}

func TestNormalize_BlankNumericCellsBecomeNull(t *testing.T) {
	g := FromStrings([][]string{
		{"ID", "Value"},
		{"a", "1"},
		{"b", ""},
		{"c", "3"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	col, ok := got.Column("Value")
	require.True(t, ok)
	require.Equal(t, table.KindNumeric, col.Kind)
	assert.False(t, col.IsNull(0))
	assert.True(t, col.IsNull(1))
	assert.False(t, col.IsNull(2))
}

func TestNormalize_DuplicateColumnsKeepFirst(t *testing.T) {
	g := FromStrings([][]string{
		{"Sales", "Region", "Sales"},
		{"10", "North", "99"},
		{"20", "South", "88"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Region"}, got.Names())

	sales, ok := got.Column("Sales")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 20}, sales.Floats)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		grid RawGrid
		want error
	}{
		{"nil grid", nil, ErrEmptyTable},
		{"all blank", RawGrid{{Blank(), Blank()}, {Text("  "), Blank()}}, ErrEmptyTable},
		{"header only", FromStrings([][]string{{"A", "B"}}), ErrNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizer(nil).Normalize(tt.grid)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalize_RaggedRows(t *testing.T) {
	g := FromStrings([][]string{
		{"A", "B", "C"},
		{"1", "2"},
		{"3", "4", "5"},
	})

	got, err := NewNormalizer(nil).Normalize(g)
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows())

	c, ok := got.Column("C")
	require.True(t, ok)
	require.Equal(t, table.KindNumeric, c.Kind)
	assert.True(t, c.IsNull(0))
	assert.False(t, c.IsNull(1))
}
