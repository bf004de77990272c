// Package spiral maps monthly anomaly values onto a polar "climate spiral".
//
// The package holds the geometric kernel shared by every output format:
//
//   - [BuildAngleTable]: evenly spaced unit-circle positions, one per segment
//   - [MonthOrder]: rim labels plus the calendar-month to segment permutation
//   - [Mapping]: offset, radial scale and lookup tables passed to the generator
//   - [Generate]: one [Point] per sample, in input order
//   - [ShouldDraw], [Segments]: the progressive reveal used by renderers
//
// # Example
//
//	table, _ := spiral.BuildAngleTable(12)
//	m := spiral.NewMapping(table, spiral.DefaultMonthOrder(), 1.5, 7.0/3.6)
//	points := spiral.Generate(values, m)
//	segs := spiral.Segments(points, frame)
//
// Everything here is deterministic and allocation is O(n); the returned
// slices are never mutated by the package after construction.
package spiral
