package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/climaspiral/internal/series"
)

// FitPolynomial solves the least-squares polynomial of the given degree
// through (xs, ys) by QR decomposition. Coefficients are lowest order
// first.
func FitPolynomial(xs, ys []float64, degree int) ([]float64, error) {
	n := len(xs)
	if degree < 0 {
		return nil, fmt.Errorf("analysis: negative degree %d", degree)
	}
	if n != len(ys) {
		return nil, fmt.Errorf("analysis: length mismatch %d != %d", n, len(ys))
	}
	if n < degree+1 {
		return nil, fmt.Errorf("%w: %d points for degree %d", ErrTooShort, n, degree)
	}

	// Vandermonde matrix
	X := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= degree; j++ {
			X.Set(i, j, math.Pow(xs[i], float64(j)))
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), ys...))

	var qr mat.QR
	qr.Factorize(X)
	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		return nil, fmt.Errorf("solve polynomial: %w", err)
	}

	out := make([]float64, degree+1)
	for i := range out {
		out[i] = coeffs.AtVec(i)
	}
	return out, nil
}

// EvalPolynomial evaluates coefficients (lowest order first) at x.
func EvalPolynomial(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// Acceleration fits a quadratic in decades since the first sample and
// returns the change in trend per decade, in °C/decade².
func Acceleration(s *series.Series) (float64, error) {
	xs := decimalYears(s)
	origin := xs[0]
	for i := range xs {
		xs[i] = (xs[i] - origin) / 10
	}
	coeffs, err := FitPolynomial(xs, s.Values(), 2)
	if err != nil {
		return 0, err
	}
	return 2 * coeffs[2], nil
}
