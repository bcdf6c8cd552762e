package animation

import "math"

// A curve maps linear progress in [0, 1] to eased progress. Assign one
// to an Animator's Curve field.

// LinearCurve returns progress unchanged.
func LinearCurve(t float64) float64 {
	return t
}

// Ease is the general-purpose curve, equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut accelerates through the middle. Equivalent to CSS
// ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// BackOut decelerates past the target and settles back, overshooting
// above 1 near the end of the run. Feeding it to a bounds-validated
// property exercises the property's rejection path.
func BackOut(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// CubicBezier returns an easing function matching CSS cubic-bezier with
// control points (x1, y1) and (x2, y2). The curve runs from (0, 0) to
// (1, 1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierAt(y1, y2, solveBezierX(x1, x2, t))
	}
}

// solveBezierX finds u such that the bezier's x component at u equals t.
// Newton-Raphson handles most inputs in a few iterations; bisection
// covers the flat-derivative cases.
func solveBezierX(x1, x2, t float64) float64 {
	u := t
	for range 8 {
		diff := bezierAt(x1, x2, u) - t
		if math.Abs(diff) < 1e-7 {
			return clampUnit(u)
		}
		slope := bezierSlope(x1, x2, u)
		if math.Abs(slope) < 1e-7 {
			break
		}
		u -= diff / slope
	}

	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 12 {
		diff := bezierAt(x1, x2, u) - t
		if math.Abs(diff) < 1e-7 {
			break
		}
		if diff > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func bezierAt(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
