package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimeColumn    = "Time"
	DefaultAnomalyColumn = "Anomaly (deg C)"
)

var timeLayouts = []string{"2006-01", "2006-01-02", time.RFC3339, "2006/01"}

// Columns names the CSV header fields to read.
type Columns struct {
	Time    string
	Anomaly string
}

// DefaultColumns matches the HadCRUT5 monthly summary series.
func DefaultColumns() Columns {
	return Columns{Time: DefaultTimeColumn, Anomaly: DefaultAnomalyColumn}
}

// Load reads a series from a CSV file.
func Load(path string, cols Columns) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Parse(file, cols)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Parse reads a series from CSV with a header row.
func Parse(r io.Reader, cols Columns) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}

	timeIdx, anomIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case cols.Time:
			timeIdx = i
		case cols.Anomaly:
			anomIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Time)
	}
	if anomIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Anomaly)
	}

	samples := make([]Sample, 0, 2048)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// the reader skips blank lines, so count from its position
		line, _ := cr.FieldPos(0)
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if timeIdx >= len(record) || anomIdx >= len(record) {
			return nil, &RowError{Line: line, Err: ErrMalformedRow, Detail: "too few fields"}
		}

		ts, err := parseTime(record[timeIdx])
		if err != nil {
			return nil, &RowError{Line: line, Err: ErrMalformedRow, Detail: err.Error()}
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(record[anomIdx]), 64)
		if err != nil {
			return nil, &RowError{Line: line, Err: ErrMalformedRow, Detail: err.Error()}
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, &RowError{Line: line, Err: ErrMalformedRow, Detail: fmt.Sprintf("non-finite anomaly %q", record[anomIdx])}
		}

		if n := len(samples); n > 0 && !monthStart(ts).Equal(samples[n-1].Time.AddDate(0, 1, 0)) {
			return nil, &RowError{Line: line, Err: ErrNotChronological, Detail: ts.Format("2006-01") + " follows " + samples[n-1].Time.Format("2006-01")}
		}
		samples = append(samples, Sample{Time: monthStart(ts), Anomaly: val})
	}

	return New(samples)
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
