package forecast

import (
	"math"
	"testing"
	"time"

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

func TestForecast_TwoPointLinearExtrapolation(t *testing.T) {
	tab := mustTable(t, table.Numeric("Sales", []float64{100, 150}))

	res, err := NewEngine(nil).Forecast(tab, Request{ValueColumn: "Sales", Horizon: 3})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Degree)
	assert.False(t, res.Dated)
	require.Len(t, res.Points, 3)
	assert.InDelta(t, 200, res.Points[0].Value, 1e-9)
	assert.InDelta(t, 250, res.Points[1].Value, 1e-9)
	assert.InDelta(t, 300, res.Points[2].Value, 1e-9)

	// Two points fit a line exactly, so the residual band collapses to zero.
	assert.InDelta(t, res.Points[0].Value, res.Points[0].Lower, 1e-9)
	assert.InDelta(t, res.Points[0].Value, res.Points[0].Upper, 1e-9)
}

func TestForecast_DegreeSwitchesAtSixPoints(t *testing.T) {
	five := mustTable(t, table.Numeric("V", []float64{1, 2, 3, 4, 5}))
	res, err := NewEngine(nil).Forecast(five, Request{ValueColumn: "V", Horizon: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Degree)

	six := mustTable(t, table.Numeric("V", []float64{1, 2, 3, 4, 5, 6}))
	res, err = NewEngine(nil).Forecast(six, Request{ValueColumn: "V", Horizon: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Degree)
}

func TestForecast_ConstantBandWidth(t *testing.T) {
	tab := mustTable(t, table.Numeric("V", []float64{10, 14, 11, 16, 13}))

	res, err := NewEngine(nil).Forecast(tab, Request{ValueColumn: "V", Horizon: 4})
	require.NoError(t, err)

	first := res.Points[0].Upper - res.Points[0].Lower
	assert.Greater(t, first, 0.0)
	for _, p := range res.Points[1:] {
		assert.InDelta(t, first, p.Upper-p.Lower, 1e-9, "band width must not grow with distance")
	}
}

func TestForecast_InsufficientData(t *testing.T) {
	empty := mustTable(t, table.Numeric("V", nil))
	_, err := NewEngine(nil).Forecast(empty, Request{ValueColumn: "V", Horizon: 1})
	assert.ErrorIs(t, err, ErrInsufficientData)

	one := mustTable(t, table.Numeric("V", []float64{5}))
	_, err = NewEngine(nil).Forecast(one, Request{ValueColumn: "V", Horizon: 1})
	assert.ErrorIs(t, err, ErrInsufficientData)

	// Nulls do not count as observations.
	nulls := mustTable(t, table.Numeric("V", []float64{5, math.NaN(), math.NaN()}))
	_, err = NewEngine(nil).Forecast(nulls, Request{ValueColumn: "V", Horizon: 1})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestForecast_RequestValidation(t *testing.T) {
	tab := mustTable(t, table.Numeric("V", []float64{1, 2}), table.Text("S", []string{"a", "b"}))

	_, err := NewEngine(nil).Forecast(tab, Request{ValueColumn: "V", Horizon: 0})
	assert.ErrorIs(t, err, ErrForecastFailed)

	_, err = NewEngine(nil).Forecast(tab, Request{ValueColumn: "Missing", Horizon: 1})
	assert.ErrorIs(t, err, ErrForecastFailed)

	_, err = NewEngine(nil).Forecast(tab, Request{ValueColumn: "S", Horizon: 1})
	assert.ErrorIs(t, err, ErrForecastFailed)

	_, err = NewEngine(nil).Forecast(tab, Request{ValueColumn: "V", DateColumn: "Missing", Horizon: 1})
	assert.ErrorIs(t, err, ErrForecastFailed)
}

func TestForecast_DatedMonthlyResampling(t *testing.T) {
	// Two rows share the March bucket and average to 120.
	dates := []time.Time{
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	tab := mustTable(t,
		table.TimeCol("Date", dates),
		table.Numeric("Sales", []float64{100, 110, 100, 140}),
	)

	res, err := NewEngine(nil).Forecast(tab, Request{
		DateColumn:  "Date",
		ValueColumn: "Sales",
		Freq:        Monthly,
		Horizon:     2,
	})
	require.NoError(t, err)
	assert.True(t, res.Dated)

	require.Len(t, res.Actual, 3)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), res.Actual[2].Key)
	assert.InDelta(t, 120, res.Actual[2].Value, 1e-9)

	// Projection keys continue month by month after the last bucket.
	require.Len(t, res.Points, 2)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), res.Points[0].Key)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), res.Points[1].Key)
}

func TestForecast_TextualDateColumn(t *testing.T) {
	tab := mustTable(t,
		table.Text("Month", []string{"2024-01", "2024-02", "2024-03"}),
		table.Numeric("Sales", []float64{100, 150, 200}),
	)

	res, err := NewEngine(nil).Forecast(tab, Request{
		DateColumn:  "Month",
		ValueColumn: "Sales",
		Freq:        Monthly,
		Horizon:     1,
	})
	require.NoError(t, err)
	require.Len(t, res.Actual, 3)
	assert.InDelta(t, 250, res.Points[0].Value, 1e-9)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), res.Points[0].Key)
}

func TestForecast_UnorderedDatesAreSorted(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	tab := mustTable(t,
		table.TimeCol("Date", dates),
		table.Numeric("Sales", []float64{300, 100, 200}),
	)

	res, err := NewEngine(nil).Forecast(tab, Request{
		DateColumn:  "Date",
		ValueColumn: "Sales",
		Freq:        Monthly,
		Horizon:     1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Actual[0].Value, 1e-9)
	assert.InDelta(t, 300, res.Actual[2].Value, 1e-9)
	assert.InDelta(t, 400, res.Points[0].Value, 1e-9)
}
