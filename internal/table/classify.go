package table

import (
	"strings"
	"time"
)

// dateLayouts are the accepted layouts for parsing textual date cells,
// tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2006",
	"2006-01",
}

// maxDateSample bounds how many non-null values are inspected when deciding
// whether a textual column is date-like.
const maxDateSample = 20

// ParseTime attempts to parse s under the accepted date layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Classification partitions the table's columns by role. It is derived
// metadata: recompute it whenever the table changes, never reuse it across
// different tables.
type Classification struct {
	Numeric     []string `json:"numeric"`
	Temporal    []string `json:"temporal"`
	Categorical []string `json:"categorical"`
}

// Classify derives the column classification. Numeric columns are those with
// KindNumeric. Temporal columns are KindTime columns plus textual columns
// whose sampled non-null values all parse as dates. Everything else is
// categorical.
func (t *Table) Classify() Classification {
	var cl Classification
	for _, c := range t.cols {
		switch c.Kind {
		case KindNumeric:
			cl.Numeric = append(cl.Numeric, c.Name)
		case KindTime:
			cl.Temporal = append(cl.Temporal, c.Name)
		default:
			if textColumnIsTemporal(c) {
				cl.Temporal = append(cl.Temporal, c.Name)
			} else {
				cl.Categorical = append(cl.Categorical, c.Name)
			}
		}
	}
	return cl
}

func textColumnIsTemporal(c Column) bool {
	sampled := 0
	for i := 0; i < c.Len() && sampled < maxDateSample; i++ {
		if c.IsNull(i) {
			continue
		}
		if _, ok := ParseTime(c.Strings[i]); !ok {
			return false
		}
		sampled++
	}
	return sampled > 0
}
