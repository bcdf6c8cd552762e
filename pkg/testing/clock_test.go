package testing

import (
	"testing"
	"time"

	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/component"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestSceneTester_Clock(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	clk := tester.Clock()

	if clk == nil {
		t.Fatal("expected non-nil clock")
	}

	start := clk.Now()
	clk.Advance(500 * time.Millisecond)
	if clk.Now().Sub(start) != 500*time.Millisecond {
		t.Error("clock advancement not reflected")
	}
}

func TestSceneTester_InstallsClock(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	if !animation.Now().Equal(tester.Clock().Now()) {
		t.Error("expected animation package to read the tester's clock")
	}

	tester.Clock().Advance(time.Second)
	if !animation.Now().Equal(tester.Clock().Now()) {
		t.Error("expected animation time to follow the fake clock")
	}
}

func TestAnimatedCard_ClockAdvance(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	card := component.NewCardView("A", component.SuitSpades)
	card.Reposition(50, 100)
	tester.Scene().Add(card)
	tester.Pump()

	anim := animation.NewAnimator(1 * time.Second)
	anim.Progress.AddListener(func(_, v float64) {
		card.X.Set(animation.LerpFloat64(50, 200, v))
	})
	anim.Forward()

	initial := card.X.Value()

	// Advance to ~halfway
	tester.Clock().Advance(500 * time.Millisecond)
	tester.Pump()

	mid := card.X.Value()
	if mid == initial {
		t.Errorf("expected x to change after advancing clock, still %v", mid)
	}

	// Advance past the end of the animation
	tester.Clock().Advance(600 * time.Millisecond)
	tester.Pump()

	final := card.X.Value()
	if final != 200 {
		t.Errorf("expected final x 200, got %v", final)
	}
	if !anim.IsCompleted() {
		t.Errorf("expected completed status, got %v", anim.Status())
	}
}

func TestPumpAndSettle_AnimatedCard(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	card := component.NewCardView("K", component.SuitHearts)
	tester.Scene().Add(card)
	tester.Pump()

	anim := animation.NewAnimator(100 * time.Millisecond)
	anim.Progress.AddListener(func(_, v float64) {
		card.Opacity.Set(v)
	})
	anim.Forward()

	err := tester.PumpAndSettle(time.Second)
	if err != nil {
		t.Errorf("expected settle after animation completes, got: %v", err)
	}
	if card.Opacity.Value() != 1 {
		t.Errorf("expected opacity 1 after settle, got %v", card.Opacity.Value())
	}
}
