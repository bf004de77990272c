package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/climaspiral/internal/series"
)

func monthly(t *testing.T, year int, month time.Month, fn func(i int) float64, n int) *series.Series {
	t.Helper()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]series.Sample, n)
	for i := range samples {
		samples[i] = series.Sample{Time: start.AddDate(0, i, 0), Anomaly: fn(i)}
	}
	s, err := series.New(samples)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestSummarizeLinearSeries(t *testing.T) {
	s := monthly(t, 1850, time.January, func(i int) float64 { return 0.01 * float64(i) }, 240)
	sum := Summarize(s)

	if sum.Count != 240 {
		t.Errorf("expected 240 samples, got %d", sum.Count)
	}
	if !near(sum.TrendPerDecade, 1.2, 1e-9) {
		t.Errorf("expected trend 1.2/decade, got %f", sum.TrendPerDecade)
	}
	if !near(sum.RSquared, 1, 1e-9) {
		t.Errorf("expected perfect fit, got %f", sum.RSquared)
	}
	if sum.Min != 0 || !sum.MinAt.Equal(s.First().Time) {
		t.Errorf("unexpected min %f at %v", sum.Min, sum.MinAt)
	}
	if !near(sum.Max, 2.39, 1e-9) || !sum.MaxAt.Equal(s.Last().Time) {
		t.Errorf("unexpected max %f at %v", sum.Max, sum.MaxAt)
	}
	if !near(sum.Mean, 1.195, 1e-9) {
		t.Errorf("expected mean 1.195, got %f", sum.Mean)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	s := monthly(t, 2000, time.June, func(int) float64 { return 0.7 }, 1)
	sum := Summarize(s)
	if sum.Mean != 0.7 || sum.StdDev != 0 || sum.TrendPerDecade != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestAnnualMeans(t *testing.T) {
	s := monthly(t, 1850, time.July, func(i int) float64 {
		if i < 6 {
			return 1
		}
		return float64(i - 6)
	}, 18)

	years := AnnualMeans(s)
	if len(years) != 2 {
		t.Fatalf("expected 2 years, got %d", len(years))
	}
	if years[0].Year != 1850 || years[0].Months != 6 || years[0].Mean != 1 || years[0].Complete() {
		t.Errorf("unexpected first year %+v", years[0])
	}
	if years[1].Year != 1851 || !years[1].Complete() || !near(years[1].Mean, 5.5, 1e-12) {
		t.Errorf("unexpected second year %+v", years[1])
	}
	if got := Means(years); len(got) != 2 || got[1] != years[1].Mean {
		t.Errorf("unexpected means %v", got)
	}
}

func TestClimatology(t *testing.T) {
	s := monthly(t, 1900, time.January, func(i int) float64 { return float64(i%12 + 1) }, 36)
	clim := Climatology(s)
	for m, v := range clim {
		if v != float64(m+1) {
			t.Errorf("month %d: expected %d, got %f", m+1, m+1, v)
		}
	}
}

func TestFitPolynomial(t *testing.T) {
	xs := []float64{-2, -1, 0, 1, 2, 3}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1 + 2*x + 3*x*x
	}

	coeffs, err := FitPolynomial(xs, ys, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{1, 2, 3} {
		if !near(coeffs[i], want, 1e-9) {
			t.Errorf("coefficient %d: expected %f, got %f", i, want, coeffs[i])
		}
	}
	if got := EvalPolynomial(coeffs, 4); !near(got, 57, 1e-9) {
		t.Errorf("expected 57 at x=4, got %f", got)
	}
}

func TestFitPolynomialErrors(t *testing.T) {
	if _, err := FitPolynomial([]float64{1}, []float64{1}, 2); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := FitPolynomial([]float64{1, 2}, []float64{1}, 1); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, err := FitPolynomial([]float64{1, 2}, []float64{1, 2}, -1); err == nil {
		t.Error("expected negative degree error")
	}
}

func TestAcceleration(t *testing.T) {
	linear := monthly(t, 1850, time.January, func(i int) float64 { return 0.002 * float64(i) }, 600)
	acc, err := Acceleration(linear)
	if err != nil {
		t.Fatal(err)
	}
	if !near(acc, 0, 1e-6) {
		t.Errorf("expected no acceleration for a linear series, got %g", acc)
	}

	// 0.01 * (i/120)^2 per decade squared; second derivative is 0.02.
	quad := monthly(t, 1850, time.January, func(i int) float64 {
		d := float64(i) / 120
		return 0.01 * d * d
	}, 600)
	acc, err = Acceleration(quad)
	if err != nil {
		t.Fatal(err)
	}
	if !near(acc, 0.02, 1e-6) {
		t.Errorf("expected acceleration 0.02, got %g", acc)
	}
}

func TestSpectrumFindsAnnualCycle(t *testing.T) {
	n := 240
	values := make([]float64, n)
	for i := range values {
		values[i] = 0.005*float64(i) + 0.3*math.Sin(2*math.Pi*float64(i)/12)
	}

	bins, err := Spectrum(values)
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != n/2+1 {
		t.Errorf("expected %d bins, got %d", n/2+1, len(bins))
	}
	if !near(bins[len(bins)-1].CyclesPerYear, 6, 1e-9) {
		t.Errorf("expected Nyquist at 6 cycles/year, got %f", bins[len(bins)-1].CyclesPerYear)
	}

	dom, ok := Dominant(bins)
	if !ok {
		t.Fatal("expected a dominant frequency")
	}
	if !near(dom.CyclesPerYear, 1, 1e-9) || !near(dom.Period(), 1, 1e-9) {
		t.Errorf("expected annual cycle, got %+v", dom)
	}
	if !math.IsInf(bins[0].Period(), 1) {
		t.Error("expected infinite period for the zero bin")
	}
}

func TestSpectrumTooShort(t *testing.T) {
	if _, err := Spectrum([]float64{1, 2, 3}); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, ok := Dominant(nil); ok {
		t.Error("expected no dominant frequency for empty spectrum")
	}
}

func TestDetrend(t *testing.T) {
	out := Detrend([]float64{1, 3, 5, 7})
	for i, v := range out {
		if !near(v, 0, 1e-12) {
			t.Errorf("index %d: expected 0, got %g", i, v)
		}
	}
}
