package forecast

import (
	"fmt"
	"time"
)

// Freq is a calendar resampling frequency for date-keyed series.
type Freq int

const (
	// Daily buckets by calendar day
	Daily Freq = iota
	// Weekly buckets by week, weeks starting Monday
	Weekly
	// Monthly buckets by month start
	Monthly
	// Quarterly buckets by quarter start (Jan/Apr/Jul/Oct)
	Quarterly
	// Yearly buckets by year start
	Yearly
)

var freqNames = map[Freq]string{
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Yearly:    "yearly",
}

// String returns the frequency's wire name.
func (f Freq) String() string {
	if name, ok := freqNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFreq resolves a wire name to a frequency.
func ParseFreq(name string) (Freq, error) {
	for f, n := range freqNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", name)
}

// Bucket maps a timestamp to the start of its calendar bucket.
func (f Freq) Bucket(ts time.Time) time.Time {
	y, m, d := ts.Date()
	switch f {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Weekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		back := (int(day.Weekday()) + 6) % 7 // days since Monday
		return day.AddDate(0, 0, -back)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		qm := m - (m-1)%3
		return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// Next steps a bucket start to the following bucket start.
func (f Freq) Next(ts time.Time) time.Time {
	switch f {
	case Daily:
		return ts.AddDate(0, 0, 1)
	case Weekly:
		return ts.AddDate(0, 0, 7)
	case Monthly:
		return ts.AddDate(0, 1, 0)
	case Quarterly:
		return ts.AddDate(0, 3, 0)
	case Yearly:
		return ts.AddDate(1, 0, 0)
	default:
		return ts.AddDate(0, 0, 1)
	}
}
