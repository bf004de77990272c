package spiral

import "math"

// AngleEntry is one segment of the circle.
type AngleEntry struct {
	UnitX float64 `json:"unit_x"`
	UnitY float64 `json:"unit_y"`
	Angle float64 `json:"angle"`
}

// BuildAngleTable splits the circle into n equal segments starting at angle 0
// and moving counter-clockwise.
func BuildAngleTable(n int) ([]AngleEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidSegmentCount
	}

	step := 2 * math.Pi / float64(n)
	table := make([]AngleEntry, n)
	for i := range table {
		angle := step * float64(i)
		table[i] = AngleEntry{
			UnitX: math.Cos(angle),
			UnitY: math.Sin(angle),
			Angle: angle,
		}
	}
	return table, nil
}

// Degrees returns the entry angle in degrees.
func (e AngleEntry) Degrees() float64 {
	return e.Angle * 180 / math.Pi
}

// At scales the unit vector by radius.
func (e AngleEntry) At(radius float64) (x, y float64) {
	return radius * e.UnitX, radius * e.UnitY
}
