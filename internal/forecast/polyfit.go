package forecast

import (
	"fmt"
	"math"
)

// polyfit performs a least-squares polynomial fit of y against x, returning
// coefficients in ascending power order. The normal equations are assembled
// and solved by Gaussian elimination with partial pivoting; the systems here
// are at most 3x3, so numerical sophistication beyond pivoting buys nothing.
func polyfit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x and y lengths differ: %d vs %d", len(x), len(y))
	}
	if len(x) < degree+1 {
		return nil, fmt.Errorf("need at least %d points for degree %d, have %d", degree+1, degree, len(x))
	}

	n := degree + 1

	// powerSums[k] = sum of x_i^k for k in [0, 2*degree].
	powerSums := make([]float64, 2*degree+1)
	for _, xv := range x {
		p := 1.0
		for k := range powerSums {
			powerSums[k] += p
			p *= xv
		}
	}
	// rhs[j] = sum of y_i * x_i^j.
	rhs := make([]float64, n)
	for i, xv := range x {
		p := 1.0
		for j := 0; j < n; j++ {
			rhs[j] += y[i] * p
			p *= xv
		}
	}

	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, n+1)
		for j := 0; j < n; j++ {
			aug[i][j] = powerSums[i+j]
		}
		aug[i][n] = rhs[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular normal equations at column %d", col)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		for r := col + 1; r < n; r++ {
			factor := aug[r][col] / aug[col][col]
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	coeffs := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		v := aug[i][n]
		for j := i + 1; j < n; j++ {
			v -= aug[i][j] * coeffs[j]
		}
		coeffs[i] = v / aug[i][i]
	}
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("fit produced non-finite coefficient")
		}
	}
	return coeffs, nil
}

// polyval evaluates the polynomial (ascending coefficients) at x.
func polyval(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// populationStd is the n-denominator standard deviation, matching the
// convention used for residual confidence bands.
func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
