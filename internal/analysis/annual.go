package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/climaspiral/internal/series"
)

type YearMean struct {
	Year   int     `json:"year"`
	Mean   float64 `json:"mean"`
	Months int     `json:"months"`
}

// Complete reports whether all twelve months contributed.
func (y YearMean) Complete() bool { return y.Months == 12 }

// AnnualMeans averages the samples of each calendar year, in order.
// Partial first and last years are included with their month count.
func AnnualMeans(s *series.Series) []YearMean {
	var (
		out  []YearMean
		vals []float64
	)
	flush := func(year int) {
		if len(vals) == 0 {
			return
		}
		out = append(out, YearMean{Year: year, Mean: stat.Mean(vals, nil), Months: len(vals)})
		vals = vals[:0]
	}

	year := s.First().Time.Year()
	for _, sample := range s.Samples() {
		if y := sample.Time.Year(); y != year {
			flush(year)
			year = y
		}
		vals = append(vals, sample.Anomaly)
	}
	flush(year)
	return out
}

// Climatology returns the mean anomaly of each calendar month, January
// first. Months with no samples are zero.
func Climatology(s *series.Series) [12]float64 {
	var groups [12][]float64
	for _, sample := range s.Samples() {
		m := int(sample.Time.Month()) - 1
		groups[m] = append(groups[m], sample.Anomaly)
	}
	var out [12]float64
	for m, g := range groups {
		if len(g) > 0 {
			out[m] = stat.Mean(g, nil)
		}
	}
	return out
}

// Means extracts the mean values from annual averages.
func Means(years []YearMean) []float64 {
	out := make([]float64, len(years))
	for i, y := range years {
		out[i] = y.Mean
	}
	return out
}
