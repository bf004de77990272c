package analysis

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/climaspiral/internal/series"
)

var ErrTooShort = errors.New("analysis: series too short")

type Summary struct {
	Count          int       `json:"count"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Mean           float64   `json:"mean"`
	StdDev         float64   `json:"std_dev"`
	Min            float64   `json:"min"`
	MinAt          time.Time `json:"min_at"`
	Max            float64   `json:"max"`
	MaxAt          time.Time `json:"max_at"`
	TrendPerDecade float64   `json:"trend_per_decade"`
	RSquared       float64   `json:"r_squared"`
}

// DecimalYear returns t as a fractional year, months counted from the
// start of the year.
func DecimalYear(t time.Time) float64 {
	return float64(t.Year()) + float64(t.Month()-1)/12
}

func decimalYears(s *series.Series) []float64 {
	xs := make([]float64, s.Len())
	for i := range xs {
		xs[i] = DecimalYear(s.At(i).Time)
	}
	return xs
}

func Summarize(s *series.Series) Summary {
	values := s.Values()
	minIdx := floats.MinIdx(values)
	maxIdx := floats.MaxIdx(values)

	sum := Summary{
		Count: s.Len(),
		Start: s.First().Time,
		End:   s.Last().Time,
		Min:   values[minIdx],
		MinAt: s.At(minIdx).Time,
		Max:   values[maxIdx],
		MaxAt: s.At(maxIdx).Time,
	}
	if len(values) == 1 {
		sum.Mean = values[0]
		return sum
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(values, nil)

	xs := decimalYears(s)
	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	sum.TrendPerDecade = beta * 10
	sum.RSquared = stat.RSquared(xs, values, nil, alpha, beta)
	return sum
}
