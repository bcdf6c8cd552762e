package animation

import (
	"math"
	"testing"
)

func TestCurves_Endpoints(t *testing.T) {
	curves := map[string]func(float64) float64{
		"linear":    LinearCurve,
		"ease":      Ease,
		"easeIn":    EaseIn,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
		"backOut":   BackOut,
	}
	for name, curve := range curves {
		if got := curve(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCurves_BezierMonotonic(t *testing.T) {
	curves := map[string]func(float64) float64{
		"ease":      Ease,
		"easeIn":    EaseIn,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
	}
	for name, curve := range curves {
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := curve(float64(i) / 100)
			if v < prev {
				t.Errorf("%s decreases at t=%v: %v < %v", name, float64(i)/100, v, prev)
			}
			if v < 0 || v > 1 {
				t.Errorf("%s(%v) = %v, outside [0, 1]", name, float64(i)/100, v)
			}
			prev = v
		}
	}
}

func TestCurves_IdentityBezier(t *testing.T) {
	// Control points on the diagonal give back linear progress, which
	// round-trips the x solver.
	identity := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for i := 0; i <= 20; i++ {
		u := float64(i) / 20
		if got := identity(u); math.Abs(got-u) > 1e-6 {
			t.Errorf("identity bezier at %v = %v", u, got)
		}
	}
}

func TestCurves_BackOutOvershoots(t *testing.T) {
	if got := BackOut(0.8); got <= 1 {
		t.Errorf("BackOut(0.8) = %v, want an overshoot above 1", got)
	}
	if got := BackOut(0.2); got < 0 || got > 1 {
		t.Errorf("BackOut(0.2) = %v, want a value inside [0, 1]", got)
	}
}

func TestTween_Evaluate(t *testing.T) {
	tw := TweenFloat64(10, 20)
	if got := tw.Evaluate(0); got != 10 {
		t.Errorf("Evaluate(0) = %v, want 10", got)
	}
	if got := tw.Evaluate(0.5); got != 15 {
		t.Errorf("Evaluate(0.5) = %v, want 15", got)
	}
	if got := tw.Evaluate(1); got != 20 {
		t.Errorf("Evaluate(1) = %v, want 20", got)
	}
}

func TestTween_Transform(t *testing.T) {
	a := NewAnimator(0)
	if err := a.Progress.Set(0.25); err != nil {
		t.Fatal(err)
	}
	tw := TweenFloat64(0, 100)
	if got := tw.Transform(a); got != 25 {
		t.Errorf("Transform = %v, want 25", got)
	}
}

func TestTween_NilLerpReturnsEnd(t *testing.T) {
	tw := &Tween[string]{Begin: "a", End: "b"}
	if got := tw.Evaluate(0.5); got != "b" {
		t.Errorf("Evaluate with nil Lerp = %q, want %q", got, "b")
	}
}
