package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr string
	}{
		{
			name:    "blank column name",
			cols:    []Column{Text("", []string{"x"})},
			wantErr: "blank name",
		},
		{
			name: "duplicate column name",
			cols: []Column{
				Numeric("A", []float64{1}),
				Text("A", []string{"x"}),
			},
			wantErr: "duplicate column name",
		},
		{
			name: "mismatched lengths",
			cols: []Column{
				Numeric("A", []float64{1, 2}),
				Text("B", []string{"x"}),
			},
			wantErr: "has 1 rows, want 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTable_Accessors(t *testing.T) {
	tab, err := New(
		Numeric("Sales", []float64{10, 20}),
		Text("Region", []string{"North", "South"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumRows())
	assert.Equal(t, 2, tab.NumCols())
	assert.Equal(t, []string{"Sales", "Region"}, tab.Names())

	c, ok := tab.Column("Region")
	require.True(t, ok)
	assert.Equal(t, KindText, c.Kind)

	_, ok = tab.Column("Missing")
	assert.False(t, ok)

	assert.Equal(t, "Sales", tab.ColumnAt(0).Name)
}

func TestColumn_NullsAndValueString(t *testing.T) {
	num := Numeric("N", []float64{1.5, math.NaN()})
	assert.False(t, num.IsNull(0))
	assert.True(t, num.IsNull(1))
	assert.Equal(t, "1.5", num.ValueString(0))
	assert.Equal(t, "", num.ValueString(1))

	ts := TimeCol("T", []time.Time{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), {}})
	assert.Equal(t, "2024-03-01", ts.ValueString(0))
	assert.True(t, ts.IsNull(1))

	txt := Text("S", []string{"a", ""})
	assert.True(t, txt.IsNull(1))
	assert.Equal(t, "a", txt.ValueString(0))
}

func TestFingerprint_Stability(t *testing.T) {
	a, err := New(Numeric("V", []float64{1, 2, 3}))
	require.NoError(t, err)
	b, err := New(Numeric("V", []float64{1, 2, 3}))
	require.NoError(t, err)
	c, err := New(Numeric("V", []float64{1, 2, 4}))
	require.NoError(t, err)
	d, err := New(Text("V", []string{"1", "2", "3"}))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}
