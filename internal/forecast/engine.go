package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"salesinsights/internal/table"
)

var (
	// ErrInsufficientData means fewer than 2 usable points remained; a trend
	// line needs at least two.
	ErrInsufficientData = errors.New("not enough data to forecast")
	// ErrForecastFailed wraps numerical failures during fitting. It is always
	// returned, never allowed to escape as a panic.
	ErrForecastFailed = errors.New("forecasting failed")
)

// quadraticThreshold is the point count at which the trend fit switches from
// linear to quadratic. Quadratic extrapolation from fewer points swings
// wildly, so the threshold is fixed rather than configurable.
const quadraticThreshold = 6

// confidenceZ scales the residual deviation into an approximate 95% band
// under a normal-residual assumption.
const confidenceZ = 1.96

// Request selects the series to forecast. DateColumn is optional; without it
// the value column's position index is the time axis and Freq is ignored.
type Request struct {
	DateColumn  string
	ValueColumn string
	Freq        Freq
	Horizon     int
}

// Point is one observed or projected sample. Keyed points carry a timestamp;
// positional points carry Index.
type Point struct {
	Key   time.Time `json:"key,omitempty"`
	Index int       `json:"index"`
	Value float64   `json:"value"`
}

// ForecastPoint is one projected step with its confidence band.
type ForecastPoint struct {
	Key   time.Time `json:"key,omitempty"`
	Index int       `json:"index"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// Result holds the fitted series and its projection. The band half-width is
// 1.96 times the population std of in-sample residuals and is constant across
// the horizon; it does not widen with distance. That matches the product's
// charting expectations and is deliberately not a rigorous prediction
// interval.
type Result struct {
	Actual []Point         `json:"actual"`
	Points []ForecastPoint `json:"points"`
	Degree int             `json:"degree"`
	Dated  bool            `json:"dated"`
}

// Engine fits low-degree polynomial trends over table columns.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a forecast engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Forecast assembles the requested series, fits the trend and projects it
// Horizon steps forward.
func (e *Engine) Forecast(t *table.Table, req Request) (*Result, error) {
	if req.Horizon < 1 {
		return nil, fmt.Errorf("%w: horizon must be at least 1, got %d", ErrForecastFailed, req.Horizon)
	}
	value, ok := t.Column(req.ValueColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q not found", ErrForecastFailed, req.ValueColumn)
	}
	if value.Kind != table.KindNumeric {
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrForecastFailed, req.ValueColumn)
	}

	var actual []Point
	var err error
	if req.DateColumn != "" {
		actual, err = e.resampledSeries(t, req, value)
		if err != nil {
			return nil, err
		}
	} else {
		actual = positionalSeries(value)
	}
	if len(actual) < 2 {
		return nil, ErrInsufficientData
	}

	degree := 1
	if len(actual) >= quadraticThreshold {
		degree = 2
	}

	// The fit regresses on positions 0..n-1 rather than raw timestamps, so
	// spacing irregularities left after resampling do not skew the trend.
	n := len(actual)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range actual {
		xs[i] = float64(i)
		ys[i] = p.Value
	}
	coeffs, err := polyfit(xs, ys, degree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForecastFailed, err)
	}

	resid := make([]float64, n)
	for i := range xs {
		resid[i] = ys[i] - polyval(coeffs, xs[i])
	}
	halfWidth := confidenceZ * populationStd(resid)

	res := &Result{Actual: actual, Degree: degree, Dated: req.DateColumn != ""}
	key := actual[n-1].Key
	for step := 0; step < req.Horizon; step++ {
		pos := n + step
		v := polyval(coeffs, float64(pos))
		fp := ForecastPoint{Index: pos, Value: v, Lower: v - halfWidth, Upper: v + halfWidth}
		if res.Dated {
			key = req.Freq.Next(key)
			fp.Key = key
		}
		res.Points = append(res.Points, fp)
	}

	e.logger.Info("forecast computed",
		slog.String("column", req.ValueColumn),
		slog.Int("points", n),
		slog.Int("degree", degree),
		slog.Int("horizon", req.Horizon),
	)
	return res, nil
}

// resampledSeries buckets the (date, value) pairs at the requested frequency,
// averaging values per bucket and dropping rows with a null date or value and
// buckets left empty. Duplicate keys are resolved by the same averaging.
func (e *Engine) resampledSeries(t *table.Table, req Request, value table.Column) ([]Point, error) {
	dates, ok := t.Column(req.DateColumn)
	if !ok {
		return nil, fmt.Errorf("%w: date column %q not found", ErrForecastFailed, req.DateColumn)
	}

	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for i := 0; i < t.NumRows(); i++ {
		if dates.IsNull(i) || value.IsNull(i) {
			continue
		}
		ts, ok := cellTime(dates, i)
		if !ok {
			continue
		}
		bucket := req.Freq.Bucket(ts)
		sums[bucket] += value.Floats[i]
		counts[bucket]++
	}

	buckets := make([]time.Time, 0, len(sums))
	for b := range sums {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	points := make([]Point, len(buckets))
	for i, b := range buckets {
		points[i] = Point{Key: b, Index: i, Value: sums[b] / float64(counts[b])}
	}
	return points, nil
}

func positionalSeries(value table.Column) []Point {
	var points []Point
	for i := 0; i < value.Len(); i++ {
		if value.IsNull(i) {
			continue
		}
		points = append(points, Point{Index: len(points), Value: value.Floats[i]})
	}
	return points
}

// cellTime reads a temporal key from either a typed time column or a textual
// column holding date-like strings.
func cellTime(c table.Column, i int) (time.Time, bool) {
	if c.Kind == table.KindTime {
		return c.Times[i], true
	}
	if c.Kind == table.KindText {
		return table.ParseTime(c.Strings[i])
	}
	return time.Time{}, false
}
