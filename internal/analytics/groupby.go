package analytics

import (
	"fmt"
	"sort"

	"salesinsights/internal/table"
)

// GroupTotal is one group's sum of a value column.
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// GroupSum sums the value column per distinct value of the grouping column
// and returns the groups sorted descending by total. Rows with a null group
// key are skipped.
func GroupSum(t *table.Table, by, value string) ([]GroupTotal, error) {
	group, ok := t.Column(by)
	if !ok {
		return nil, fmt.Errorf("column %q not found", by)
	}
	vc, ok := t.Column(value)
	if !ok {
		return nil, fmt.Errorf("column %q not found", value)
	}
	if vc.Kind != table.KindNumeric {
		return nil, fmt.Errorf("column %q is not numeric", value)
	}

	sums := make(map[string]float64)
	var order []string
	for i := 0; i < t.NumRows(); i++ {
		if group.IsNull(i) || vc.IsNull(i) {
			continue
		}
		key := group.ValueString(i)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += vc.Floats[i]
	}

	out := make([]GroupTotal, 0, len(order))
	for _, key := range order {
		out = append(out, GroupTotal{Key: key, Total: sums[key]})
	}
	// Stable sort keeps insertion order for equal totals, so ties stay
	// deterministic.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}
