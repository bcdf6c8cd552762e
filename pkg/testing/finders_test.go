package testing

import (
	"testing"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/container"
)

func TestByType(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("score: 0"))
	tester.Pump()

	result := tester.Find(ByType[*component.Label]())
	if !result.Exists() {
		t.Fatal("expected to find Label component")
	}
	label := result.First().(*component.Label)
	if label.Text.Value() != "score: 0" {
		t.Errorf("expected text 'score: 0', got %q", label.Text.Value())
	}
}

func TestByKind(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewCardView("A", component.SuitSpades))
	tester.Pump()

	if !tester.Find(ByKind("card")).Exists() {
		t.Error("expected to find a card")
	}
	if tester.Find(ByKind("button")).Exists() {
		t.Error("should not find a button")
	}
}

func TestByID(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	card := component.NewCardView("Q", component.SuitDiamonds)
	tester.Scene().Add(card)
	tester.Pump()

	result := tester.Find(ByID(card.ID()))
	if result.Count() != 1 {
		t.Fatalf("expected exactly one match, got %d", result.Count())
	}
	if result.First().ID() != card.ID() {
		t.Error("expected ByID to return the same component")
	}
}

func TestByText(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("42"))
	tester.Pump()

	if !tester.Find(ByText("42")).Exists() {
		t.Error("expected to find text '42'")
	}
	if tester.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
}

func TestByText_MatchesButtons(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewButton("Deal"))
	tester.Pump()

	result := tester.Find(ByText("Deal"))
	if !result.Exists() {
		t.Fatal("expected to find button caption")
	}
	if _, ok := result.First().(*component.Button); !ok {
		t.Errorf("expected a Button, got %T", result.First())
	}
}

func TestByTextContaining(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("round 123"))
	tester.Pump()

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestFind_NestedComponents(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	hand := container.NewLinearLayout(container.Horizontal)
	hand.Add(component.NewCardView("A", component.SuitSpades))
	hand.Add(component.NewCardView("K", component.SuitSpades))
	tester.Scene().Add(hand)
	tester.Pump()

	result := tester.Find(ByKind("card"))
	if result.Count() != 2 {
		t.Errorf("expected 2 cards inside the layout, got %d", result.Count())
	}
}

func TestFinderResult_Count(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("one"))
	tester.Scene().Add(component.NewLabel("two"))
	tester.Pump()

	result := tester.Find(ByType[*component.Label]())
	if result.Count() != 2 {
		t.Errorf("expected 2 Label components, got %d", result.Count())
	}
}

func TestFinderResult_At(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("first"))
	tester.Scene().Add(component.NewLabel("second"))
	tester.Pump()

	result := tester.Find(ByType[*component.Label]())
	second := result.At(1).(*component.Label)
	if second.Text.Value() != "second" {
		t.Errorf("expected 'second' at index 1, got %q", second.Text.Value())
	}
}

func TestFinderResult_FirstOrNil(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("hello"))
	tester.Pump()

	if tester.Find(ByText("hello")).FirstOrNil() == nil {
		t.Error("FirstOrNil should return component for existing text")
	}
	if tester.Find(ByText("missing")).FirstOrNil() != nil {
		t.Error("FirstOrNil should return nil for missing text")
	}
}

func TestFinderResult_First_PanicsOnEmpty(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Scene().Add(component.NewLabel("hello"))
	tester.Pump()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected First() to panic on empty result")
		}
	}()
	tester.Find(ByText("missing")).First()
}

func TestByPredicate(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	faceUp := component.NewCardView("7", component.SuitClubs)
	faceUp.Flip()
	tester.Scene().Add(faceUp)
	tester.Scene().Add(component.NewCardView("8", component.SuitClubs))
	tester.Pump()

	result := tester.Find(ByPredicate(func(c component.Component) bool {
		card, ok := c.(*component.CardView)
		return ok && card.FaceUp.Value()
	}))
	if result.Count() != 1 {
		t.Fatalf("expected one face-up card, got %d", result.Count())
	}
	if result.First().(*component.CardView).Rank != "7" {
		t.Error("expected the flipped card to match")
	}
}

func TestDescendant(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	table := container.NewPane()
	table.Add(component.NewCardView("J", component.SuitHearts))
	tester.Scene().Add(table)
	tester.Scene().Add(component.NewCardView("2", component.SuitHearts))
	tester.Pump()

	result := tester.Find(Descendant(
		ByType[*container.Pane](),
		ByKind("card"),
	))
	if result.Count() != 1 {
		t.Fatalf("expected only the nested card, got %d", result.Count())
	}
	if result.First().(*component.CardView).Rank != "J" {
		t.Error("expected the card inside the pane")
	}
}

func TestDescendant_NoDuplicates(t *testing.T) {
	tester := NewSceneTesterWithT(t)

	outer := container.NewPane()
	inner := container.NewPane()
	inner.Add(component.NewCardView("9", component.SuitSpades))
	outer.Add(inner)
	tester.Scene().Add(outer)
	tester.Pump()

	// The card is a descendant of both panes; it must appear once.
	result := tester.Find(Descendant(
		ByType[*container.Pane](),
		ByKind("card"),
	))
	if result.Count() != 1 {
		t.Errorf("expected one match across nested ancestors, got %d", result.Count())
	}
}
