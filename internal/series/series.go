// Package series loads monthly temperature-anomaly time series.
package series

import (
	"errors"
	"time"
)

var (
	ErrEmpty            = errors.New("series: no samples")
	ErrMissingColumn    = errors.New("series: missing column")
	ErrMalformedRow     = errors.New("series: malformed row")
	ErrNotChronological = errors.New("series: samples not consecutive months")
)

// Sample is one month of data.
type Sample struct {
	Time    time.Time `json:"time"`
	Anomaly float64   `json:"anomaly"`
}

// Series is an immutable, strictly monthly sequence of samples.
type Series struct {
	samples []Sample
}

// New validates samples and copies them into a Series.
func New(samples []Sample) (*Series, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}
	cp := make([]Sample, len(samples))
	for i, s := range samples {
		cp[i] = Sample{Time: monthStart(s.Time), Anomaly: s.Anomaly}
		if i > 0 && !cp[i].Time.Equal(cp[i-1].Time.AddDate(0, 1, 0)) {
			return nil, &RowError{Line: i + 1, Err: ErrNotChronological, Detail: cp[i].Time.Format("2006-01") + " follows " + cp[i-1].Time.Format("2006-01")}
		}
	}
	return &Series{samples: cp}, nil
}

func (s *Series) Len() int { return len(s.samples) }

func (s *Series) At(i int) Sample { return s.samples[i] }

func (s *Series) First() Sample { return s.samples[0] }

func (s *Series) Last() Sample { return s.samples[len(s.samples)-1] }

// Samples returns a copy of the samples.
func (s *Series) Samples() []Sample {
	cp := make([]Sample, len(s.samples))
	copy(cp, s.samples)
	return cp
}

// Values returns a copy of the anomaly column.
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		vals[i] = smp.Anomaly
	}
	return vals
}

// Years lists the distinct calendar years covered, ascending.
func (s *Series) Years() []int {
	years := make([]int, 0, len(s.samples)/12+1)
	for _, smp := range s.samples {
		y := smp.Time.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// StartsInJanuary reports whether sample 0 is a January. The spiral assigns
// angles by position, so other start months rotate the whole plot.
func (s *Series) StartsInJanuary() bool {
	return s.samples[0].Time.Month() == time.January
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
