package spiral

// MinDrawPoints is the number of revealed points a path needs before a
// renderer draws it.
const MinDrawPoints = 2

// Segment joins two consecutive points. Value is the raw anomaly of the
// starting point and drives the segment color.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
	Value  float64
}

// ShouldDraw reports whether frame n, which reveals points [0, n), has a
// path to draw.
func ShouldDraw(n int) bool {
	return n >= MinDrawPoints
}

// Reveal returns the first n points, clamped to the slice length.
func Reveal(points []Point, n int) []Point {
	if n < 0 {
		n = 0
	}
	if n > len(points) {
		n = len(points)
	}
	return points[:n:n]
}

// Segments returns the n-1 segments joining the first n points, or nil when
// nothing would be drawn.
func Segments(points []Point, n int) []Segment {
	prefix := Reveal(points, n)
	if !ShouldDraw(len(prefix)) {
		return nil
	}
	segs := make([]Segment, len(prefix)-1)
	for i := range segs {
		a, b := prefix[i], prefix[i+1]
		segs[i] = Segment{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y, Value: a.Value}
	}
	return segs
}

// Year returns the calendar year of the latest point revealed on frame n,
// for a series starting in January of startYear.
func Year(startYear, n int) int {
	if n <= 0 {
		return startYear
	}
	return startYear + (n-1)/MonthsPerYear
}
