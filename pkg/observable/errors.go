package observable

import "fmt"

// RangeError reports a list operation against an index outside the valid
// range for that operation. The list is left untouched and nobody is
// notified.
type RangeError struct {
	Op    string
	Index int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range with length %d", e.Op, e.Index, e.Size)
}

// BoundsError reports a value outside a bounded property's closed
// interval. The stored value is left at its prior valid state.
type BoundsError struct {
	Op    string
	Value float64
	Lower float64
	Upper float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: value %v out of bounds [%v, %v]", e.Op, e.Value, e.Lower, e.Upper)
}
