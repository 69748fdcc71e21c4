// Package fitting performs least-squares polynomial fits of observed
// tenor/rate pairs and evaluates them on a dense reporting grid.
package fitting

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultDegree is the polynomial degree used by the snapshot pipeline.
const DefaultDegree = 4

// Result holds one polynomial fit evaluated on a reporting grid.
// Coefficients are ordered highest power first, matching the streaming
// JSON contract. Immutable once produced.
type Result struct {
	GridYears    []float64 `json:"gridYears"`
	Rates        []float64 `json:"rates"`
	Coefficients []float64 `json:"polynomialCoefficients"`
}

// Fit performs a least-squares polynomial fit of the given degree over
// (tenors, rates) and evaluates the polynomial at every grid point.
//
// A zero-variance rate sample is rejected with ErrZeroVariance: a flat
// signal almost always means stale state upstream rather than a valid
// market condition. Numerical ill-conditioning is not a failure; the
// solution is reported as-is. Deterministic for identical inputs.
func Fit(tenors, rates, grid []float64, degree int) (Result, error) {
	if len(tenors) != len(rates) {
		return Result{}, fmt.Errorf("%w: %d tenors vs %d rates", ErrInputMismatch, len(tenors), len(rates))
	}
	if variance(rates) == 0 {
		return Result{}, ErrZeroVariance
	}
	if degree < 0 || len(tenors) < degree+1 {
		return Result{}, fmt.Errorf("%w: degree %d needs at least %d points, got %d",
			ErrInputMismatch, degree, degree+1, len(tenors))
	}

	coeffs := leastSquares(tenors, rates, degree)

	fitted := make([]float64, len(grid))
	for i, x := range grid {
		fitted[i] = evalPoly(coeffs, x)
	}

	return Result{
		GridYears:    append([]float64(nil), grid...),
		Rates:        fitted,
		Coefficients: coeffs,
	}, nil
}

// leastSquares solves the Vandermonde system V c = y in the least-squares
// sense via QR factorisation, returning coefficients highest power first.
func leastSquares(xs, ys []float64, degree int) []float64 {
	rows, cols := len(xs), degree+1

	v := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		p := 1.0
		// Column cols-1 holds x^0 so column 0 carries the highest power.
		for j := cols - 1; j >= 0; j-- {
			v.Set(i, j, p)
			p *= x
		}
	}
	y := mat.NewVecDense(rows, append([]float64(nil), ys...))

	var qr mat.QR
	qr.Factorize(v)

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, y); err != nil {
		// A near-singular system still yields a usable solution; only the
		// conditioning warning is tolerated.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			panic(fmt.Sprintf("fitting: least-squares solve failed: %v", err))
		}
	}

	coeffs := make([]float64, cols)
	for i := range coeffs {
		coeffs[i] = c.AtVec(i)
	}
	return coeffs
}

// evalPoly evaluates a highest-power-first polynomial at x via Horner's
// scheme.
func evalPoly(coeffs []float64, x float64) float64 {
	var y float64
	for _, c := range coeffs {
		y = y*x + c
	}
	return y
}

// variance is the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, v := range xs {
		mean += v
	}
	mean /= float64(len(xs))

	var ss float64
	for _, v := range xs {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}
