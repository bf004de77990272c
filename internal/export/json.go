package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/climaspiral/internal/analysis"
	"github.com/san-kum/climaspiral/internal/series"
	"github.com/san-kum/climaspiral/internal/spiral"
)

type PointRecord struct {
	Index   int       `json:"index"`
	Time    time.Time `json:"time"`
	Month   string    `json:"month"`
	Anomaly float64   `json:"anomaly"`
	Radius  float64   `json:"radius"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
}

type Document struct {
	Source    string              `json:"source,omitempty"`
	StartYear int                 `json:"start_year"`
	Segments  int                 `json:"segments"`
	Offset    float64             `json:"offset"`
	Scale     float64             `json:"scale"`
	Angles    []spiral.AngleEntry `json:"angles"`
	Summary   analysis.Summary    `json:"summary"`
	Points    []PointRecord       `json:"points"`
}

// NewDocument pairs each sample with its spiral point.
func NewDocument(source string, s *series.Series, m spiral.Mapping, points []spiral.Point, startYear int) *Document {
	doc := &Document{
		Source:    source,
		StartYear: startYear,
		Segments:  len(m.Table),
		Offset:    m.Offset,
		Scale:     m.Scale,
		Angles:    m.Table,
		Summary:   analysis.Summarize(s),
		Points:    make([]PointRecord, len(points)),
	}
	for i, p := range points {
		sample := s.At(i)
		doc.Points[i] = PointRecord{
			Index:   i,
			Time:    sample.Time,
			Month:   sample.Time.Month().String()[:3],
			Anomaly: sample.Anomaly,
			Radius:  m.Radius(p.Value),
			X:       p.X,
			Y:       p.Y,
		}
	}
	return doc
}

func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
