package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Agg is the closed set of aggregation kinds the pivot engine supports.
// Unknown names are rejected at the boundary by ParseAgg; nothing defaults
// silently.
type Agg int

const (
	AggSum Agg = iota
	AggMean
	AggMedian
	AggCount
	AggMin
	AggMax
	AggStd
)

var aggNames = map[Agg]string{
	AggSum:    "sum",
	AggMean:   "mean",
	AggMedian: "median",
	AggCount:  "count",
	AggMin:    "min",
	AggMax:    "max",
	AggStd:    "std",
}

// String returns the aggregation's wire name.
func (a Agg) String() string {
	if name, ok := aggNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAgg resolves a wire name to an aggregation kind.
func ParseAgg(name string) (Agg, error) {
	for a, n := range aggNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown aggregation %q", name)
}

// apply evaluates the aggregation over the group's numeric values. The count
// argument carries the group's non-null cell count, which AggCount reports
// regardless of whether those cells were numeric.
func (a Agg) apply(values []float64, count int) float64 {
	if a == AggCount {
		return float64(count)
	}
	if len(values) == 0 {
		return 0
	}
	switch a {
	case AggSum:
		return sum(values)
	case AggMean:
		return sum(values) / float64(len(values))
	case AggMedian:
		return median(values)
	case AggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case AggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case AggStd:
		return sampleStd(values)
	default:
		return 0
	}
}

func sum(values []float64) float64 {
	s := 0.0
	for _, v := range values {
		s += v
	}
	return s
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// sampleStd is the n-1 standard deviation, the same convention the stats
// summary documents. A single observation has no spread and yields 0.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := sum(values) / float64(len(values))
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
