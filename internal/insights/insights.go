// Package insights generates textual highlights from a sales table by
// matching well-known column names (English and Arabic) and summing or
// ranking them. It is a flat keyword lookup on top of the aggregation
// engine, not an analysis engine of its own.
package insights

import (
	"fmt"
	"log/slog"
	"strings"

	"salesinsights/internal/analytics"
	"salesinsights/internal/table"
)

// Insight is one highlight: an icon, a translation key and the formatted
// value. The UI layer translates Key per the session language.
type Insight struct {
	Icon  string `json:"icon"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Column synonym lists, matched case-insensitively after trimming. The
// Arabic entries mirror the sales report exports this product is fed.
var (
	revenueNames  = []string{"القيمة بعد الضريبة", "صافي المبيعات", "الإيرادات", "revenue", "total revenue", "sales"}
	discountNames = []string{"الخصومات", "خصم", "discount", "total discount"}
	taxNames      = []string{"الضريبة", "ضريبة الصنف", "tax", "total tax"}
	qtyNames      = []string{"الكمية", "كمية كرتون", "quantity", "total quantity"}
	branchNames   = []string{"الفرع", "branch"}
	salesmanNames = []string{"اسم المندوب", "مندوب", "salesman", "seller", "بائع"}
	productNames  = []string{"اسم الصنف", "الصنف", "product", "category"}
)

// Generate produces the automated insights for the table. Missing columns
// simply produce fewer insights; an unrecognizable table yields an empty
// slice, never an error.
func Generate(t *table.Table, logger *slog.Logger) []Insight {
	if logger == nil {
		logger = slog.Default()
	}
	var out []Insight

	revenue := findColumn(t, revenueNames)
	addTotal := func(icon, key, column string) {
		if column == "" {
			return
		}
		totals, _, err := analytics.Totals(t, []string{column})
		if err != nil {
			return // matched a non-numeric column; skip quietly
		}
		out = append(out, Insight{Icon: icon, Key: key, Value: formatAmount(totals[column])})
	}
	addTotal("💰", "insight_total_revenue", revenue)
	addTotal("🎯", "insight_total_discounts", findColumn(t, discountNames))
	addTotal("💸", "insight_total_tax", findColumn(t, taxNames))
	addTotal("📦", "insight_total_qty", findColumn(t, qtyNames))

	if revenue != "" {
		if branch := topGroup(t, findColumn(t, branchNames), revenue); branch != nil {
			out = append(out, Insight{Icon: "🏢", Key: "insight_top_branch", Value: branch.Key})
		}
		if salesman := topGroup(t, findColumn(t, salesmanNames), revenue); salesman != nil {
			out = append(out, Insight{
				Icon:  "🧍",
				Key:   "insight_top_salesman",
				Value: fmt.Sprintf("%s (%s)", salesman.Key, formatAmount(salesman.Total)),
			})
		}
		if product := topGroup(t, findColumn(t, productNames), revenue); product != nil {
			out = append(out, Insight{Icon: "🛒", Key: "insight_top_product", Value: product.Key})
		}
	}

	logger.Debug("insights generated", slog.Int("count", len(out)))
	return out
}

func findColumn(t *table.Table, candidates []string) string {
	for _, cand := range candidates {
		for _, name := range t.Names() {
			if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(cand)) {
				return name
			}
		}
	}
	return ""
}

func topGroup(t *table.Table, by, value string) *analytics.GroupTotal {
	if by == "" {
		return nil
	}
	groups, err := analytics.GroupSum(t, by, value)
	if err != nil || len(groups) == 0 {
		return nil
	}
	return &groups[0]
}

// formatAmount renders a float with thousands separators and two decimals,
// e.g. 1234567.8 -> "1,234,567.80".
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
