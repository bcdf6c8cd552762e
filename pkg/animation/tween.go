package animation

import "github.com/go-tabletop/tabletop/pkg/geometry"

// Tween maps animation progress in [0, 1] onto a begin/end value range.
// Listeners on an Animator's Progress evaluate a tween to get the value
// to write into a component property.
type Tween[T any] struct {
	Begin T
	End   T
	// Lerp interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at progress t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform evaluates the tween at the animator's current progress.
func (tw *Tween[T]) Transform(a *Animator) T {
	return tw.Evaluate(a.Progress.Value())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two offsets.
func LerpOffset(a, b geometry.Offset, t float64) geometry.Offset {
	return geometry.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// TweenFloat64 creates a float64 tween.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenOffset creates an offset tween.
func TweenOffset(begin, end geometry.Offset) *Tween[geometry.Offset] {
	return &Tween[geometry.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}
