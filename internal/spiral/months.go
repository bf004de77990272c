package spiral

import "fmt"

// MonthsPerYear is the length of the repeating angular assignment.
const MonthsPerYear = 12

// MonthOrder describes how calendar months sit around the rim.
//
// Labels[k] is drawn at angle-table entry k. Index[c] is the table entry for
// calendar month c (0 = January).
type MonthOrder struct {
	Labels [MonthsPerYear]string
	Index  [MonthsPerYear]int
}

// DefaultMonthOrder runs the months clockwise with March at angle 0, so
// January sits two segments counter-clockwise of it.
func DefaultMonthOrder() MonthOrder {
	return MonthOrder{
		Labels: [MonthsPerYear]string{"Mar", "Feb", "Jan", "Dec", "Nov", "Oct", "Sep", "Aug", "Jul", "Jun", "May", "Apr"},
		Index:  [MonthsPerYear]int{2, 1, 0, 11, 10, 9, 8, 7, 6, 5, 4, 3},
	}
}

// NewMonthOrder validates that index is a permutation of 0..11 before
// returning the order.
func NewMonthOrder(labels [MonthsPerYear]string, index [MonthsPerYear]int) (MonthOrder, error) {
	var seen [MonthsPerYear]bool
	for month, slot := range index {
		if slot < 0 || slot >= MonthsPerYear {
			return MonthOrder{}, fmt.Errorf("%w: month %d maps to slot %d", ErrInvalidMonthOrder, month, slot)
		}
		if seen[slot] {
			return MonthOrder{}, fmt.Errorf("%w: slot %d assigned twice", ErrInvalidMonthOrder, slot)
		}
		seen[slot] = true
	}
	return MonthOrder{Labels: labels, Index: index}, nil
}

// Slot returns the angle-table entry for the sample at position i.
func (o MonthOrder) Slot(i int) int {
	return o.Index[i%MonthsPerYear]
}

// Label returns the rim label drawn at table entry k.
func (o MonthOrder) Label(k int) string {
	return o.Labels[k%MonthsPerYear]
}
