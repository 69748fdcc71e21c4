// Package curve defines the fixed tenor grid, the dense reporting grid and
// the stylised emerging-market base curve shape they are derived from.
package curve

import "math"

// Grid dimensions. The tenor grid roughly aligns with the LCH cleared BRL
// swap grid, expressed in years; the evaluation grid spans the same range
// densely for smooth reporting.
const (
	TenorGridSize = 11
	EvalGridSize  = 120

	minTenorYears = 0.5
	maxTenorYears = 30.0
)

// TenorYears returns a fresh copy of the fixed tenor grid in years.
func TenorYears() []float64 {
	return []float64{0.5, 1, 2, 3, 4, 5, 7, 10, 15, 20, 30}
}

// EvalGridYears returns the evenly spaced reporting grid spanning the tenor
// range, EvalGridSize points inclusive of both endpoints.
func EvalGridYears() []float64 {
	grid := make([]float64, EvalGridSize)
	step := (maxTenorYears - minTenorYears) / float64(EvalGridSize-1)
	for i := range grid {
		grid[i] = minTenorYears + float64(i)*step
	}
	return grid
}

// Shape computes the stylised emerging-market swap rate for each tenor:
// a decaying short-end level, a saturating term premium, a cyclical ripple
// and a liquidity drag hump centred near the 12y point. Pure; output length
// equals input length and every value is strictly positive over the
// supported tenor range.
func Shape(tenors []float64) []float64 {
	rates := make([]float64, len(tenors))
	for i, t := range tenors {
		shortEnd := 8.0 - 0.8*math.Exp(-t)
		termPremium := 1.4 * (1.0 - math.Exp(-t/7.0))
		cyclical := 0.25 * math.Sin(t/1.5)
		liquidityDrag := 0.35 * math.Exp(-(t-12.0)*(t-12.0)/30.0)
		rates[i] = shortEnd + termPremium + cyclical + liquidityDrag
	}
	return rates
}
