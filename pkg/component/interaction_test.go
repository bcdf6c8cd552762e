package component_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/container"
	tabletoptest "github.com/go-tabletop/tabletop/pkg/testing"
)

// --- Button tests through the scene harness ---

func TestButton_TapCallback(t *testing.T) {
	tester := tabletoptest.NewSceneTesterWithT(t)

	tapped := false
	b := component.NewButton("Deal")
	b.OnActivate = func() { tapped = true }
	tester.Scene().Add(b)
	tester.Pump()

	if err := tester.Tap(tabletoptest.ByType[*component.Button]()); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	tester.Pump()

	if !tapped {
		t.Error("expected OnActivate to run")
	}
}

func TestButton_TapUpdatesBoundLabel(t *testing.T) {
	tester := tabletoptest.NewSceneTesterWithT(t)

	count := 0
	score := component.NewLabel("taps: 0")
	b := component.NewButton("Hit")
	b.OnActivate = func() {
		count++
		score.Text.Set(fmt.Sprintf("taps: %d", count))
	}
	tester.Scene().Add(score)
	tester.Scene().Add(b)
	tester.Pump()

	for i := 0; i < 2; i++ {
		if err := tester.Tap(tabletoptest.ByText("Hit")); err != nil {
			t.Fatalf("Tap failed: %v", err)
		}
		tester.Pump()
	}

	if !tester.Find(tabletoptest.ByText("taps: 2")).Exists() {
		t.Error("expected the label to follow the taps")
	}
}

func TestCardView_FlipAnimatedOpacity(t *testing.T) {
	tester := tabletoptest.NewSceneTesterWithT(t)

	card := component.NewCardView("A", component.SuitSpades)
	tester.Scene().Add(card)
	tester.Pump()

	// A flip fades the card back in, the way a table would present it.
	anim := animation.NewAnimator(200 * time.Millisecond)
	anim.Progress.AddListener(func(_, v float64) {
		card.Opacity.Set(0.25 + 0.75*v)
	})
	card.FaceUp.AddListener(func(_, _ bool) {
		anim.Reset()
		anim.Forward()
	})

	if err := tester.Tap(tabletoptest.ByKind("card")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	tester.Pump()

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if got := card.Opacity.Value(); got != 1 {
		t.Errorf("expected opacity 1 after the fade, got %v", got)
	}
}

func TestLabel_ResizeReflowsHand(t *testing.T) {
	tester := tabletoptest.NewSceneTesterWithT(t)

	name := component.NewLabel("P1")
	chips := component.NewLabel("100")
	row := container.NewLinearLayout(container.Horizontal)
	row.Spacing.Set(8)
	row.Add(name)
	row.Add(chips)
	tester.Scene().Add(row)
	tester.Pump()

	before := chips.X.Value()
	name.Text.Set("Player One")
	tester.Pump()

	if after := chips.X.Value(); after <= before {
		t.Errorf("expected the second label pushed right, %v -> %v", before, after)
	}
}
