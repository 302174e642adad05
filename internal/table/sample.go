package table

import (
	"math/rand"
	"time"
)

// Sample generates the built-in demo dataset: 24 month-start rows of sales
// figures across categories and branches. The seed is fixed so repeated loads
// produce the same table (and therefore the same fingerprint).
func Sample() *Table {
	const rows = 24
	rng := rand.New(rand.NewSource(42))

	dates := make([]time.Time, rows)
	end := time.Now().UTC()
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(rows - 1), 0)
	categories := make([]string, rows)
	branches := make([]string, rows)
	sales := make([]float64, rows)
	quantity := make([]float64, rows)
	profit := make([]float64, rows)

	catNames := []string{"A", "B", "C"}
	branchNames := []string{"North", "South"}
	for i := 0; i < rows; i++ {
		dates[i] = start.AddDate(0, i, 0)
		categories[i] = catNames[i%len(catNames)]
		branches[i] = branchNames[i%len(branchNames)]
		sales[i] = float64(100 + rng.Intn(900))
		quantity[i] = float64(1 + rng.Intn(49))
		profit[i] = float64(-50 + rng.Intn(350))
	}

	t, _ := New(
		TimeCol("Date", dates),
		Text("Category", categories),
		Text("Branch", branches),
		Numeric("Sales", sales),
		Numeric("Quantity", quantity),
		Numeric("Profit", profit),
	)
	return t
}
