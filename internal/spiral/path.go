package spiral

import "fmt"

// Point is one month on the spiral. Value keeps the raw anomaly.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// Mapping carries everything the generator needs. Build it once.
type Mapping struct {
	Offset float64
	Scale  float64
	Table  []AngleEntry
	Order  MonthOrder
}

// NewMapping assembles a mapping from a 12-entry table.
func NewMapping(table []AngleEntry, order MonthOrder, offset, scale float64) Mapping {
	return Mapping{Offset: offset, Scale: scale, Table: table, Order: order}
}

// MappingFor builds the standard monthly mapping: a table of segments
// entries and a scale that puts offset+scaleRange at radius.
func MappingFor(segments int, radius, offset, scaleRange float64) (Mapping, error) {
	table, err := BuildAngleTable(segments)
	if err != nil {
		return Mapping{}, err
	}
	if len(table) != MonthsPerYear {
		return Mapping{}, fmt.Errorf("%w: month order needs %d segments, got %d", ErrInvalidMonthOrder, MonthsPerYear, segments)
	}
	return NewMapping(table, DefaultMonthOrder(), offset, radius/scaleRange), nil
}

// Radius returns the plotted radius of a raw value.
func (m Mapping) Radius(value float64) float64 {
	return (value + m.Offset) * m.Scale
}

// Entry returns the angle entry used for sample i.
func (m Mapping) Entry(i int) AngleEntry {
	return m.Table[m.Order.Slot(i)]
}

// Generate maps values onto the spiral. Sample i takes the angle of calendar
// slot i mod 12, so values must start in January.
func Generate(values []float64, m Mapping) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		x, y := m.Entry(i).At(m.Radius(v))
		points[i] = Point{X: x, Y: y, Value: v}
	}
	return points
}
