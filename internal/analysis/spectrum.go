package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Frequency is one bin of a power spectrum of monthly data.
type Frequency struct {
	CyclesPerYear float64 `json:"cycles_per_year"`
	Power         float64 `json:"power"`
}

// Period returns the period in years, or +Inf for the zero bin.
func (f Frequency) Period() float64 {
	if f.CyclesPerYear == 0 {
		return math.Inf(1)
	}
	return 1 / f.CyclesPerYear
}

// Detrend removes the least-squares line through values.
func Detrend(values []float64) []float64 {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - (alpha + beta*xs[i])
	}
	return out
}

// Spectrum returns the power spectrum of monthly values after removing the
// linear trend. Bins run from zero to the Nyquist frequency.
func Spectrum(values []float64) ([]Frequency, error) {
	n := len(values)
	if n < 4 {
		return nil, fmt.Errorf("%w: spectrum needs at least 4 samples, got %d", ErrTooShort, n)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, Detrend(values))

	out := make([]Frequency, len(coeffs))
	for i, c := range coeffs {
		abs := cmplx.Abs(c)
		out[i] = Frequency{
			// Freq is in cycles per sample; samples are months.
			CyclesPerYear: fft.Freq(i) * 12,
			Power:         abs * abs / float64(n),
		}
	}
	return out, nil
}

// Dominant returns the strongest non-zero frequency bin.
func Dominant(spectrum []Frequency) (Frequency, bool) {
	var (
		best  Frequency
		found bool
	)
	if len(spectrum) < 2 {
		return best, false
	}
	for _, f := range spectrum[1:] {
		if !found || f.Power > best.Power {
			best, found = f, true
		}
	}
	return best, found
}
