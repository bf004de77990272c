package spiral

import "errors"

var (
	// ErrInvalidSegmentCount indicates a non-positive segment count.
	ErrInvalidSegmentCount = errors.New("spiral: segment count must be positive")

	// ErrInvalidMonthOrder indicates a month permutation that is not a
	// bijection onto the angle table, or mismatched label count.
	ErrInvalidMonthOrder = errors.New("spiral: invalid month order")
)
