package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgg(t *testing.T) {
	for _, name := range []string{"sum", "mean", "median", "count", "min", "max", "std"} {
		a, err := ParseAgg(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, a.String())
	}

	_, err := ParseAgg("variance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown aggregation")

	_, err = ParseAgg("Sum")
	assert.Error(t, err, "names are case sensitive")
}

func TestAgg_Apply(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	tests := []struct {
		agg  Agg
		want float64
	}{
		{AggSum, 10},
		{AggMean, 2.5},
		{AggMedian, 2.5},
		{AggMin, 1},
		{AggMax, 4},
	}
	for _, tt := range tests {
		t.Run(tt.agg.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.agg.apply(values, len(values)), 1e-12)
		})
	}

	assert.InDelta(t, 4, AggCount.apply(values, 4), 0)
	assert.InDelta(t, 6, AggCount.apply(nil, 6), 0, "count follows the cell count, not the numeric values")

	// Odd-length median picks the middle element.
	assert.InDelta(t, 3, AggMedian.apply([]float64{5, 1, 3}, 3), 1e-12)

	// sqrt(2.5) for 1..5 under the n-1 convention.
	assert.InDelta(t, 1.5811388300841898, AggStd.apply([]float64{1, 2, 3, 4, 5}, 5), 1e-12)
	assert.InDelta(t, 0, AggStd.apply([]float64{7}, 1), 0)

	// Empty groups collapse to zero for every aggregation.
	assert.InDelta(t, 0, AggSum.apply(nil, 0), 0)
	assert.InDelta(t, 0, AggMean.apply(nil, 0), 0)
}
