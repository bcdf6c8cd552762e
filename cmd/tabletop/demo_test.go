package main

import "testing"

func TestBuildTable(t *testing.T) {
	table, hand, cards, score := buildTable("demo")

	if got := table.ComponentCount(); got != 8 {
		t.Errorf("ComponentCount() = %d, want 8", got)
	}
	if len(cards) != 5 {
		t.Fatalf("cards dealt = %d, want 5", len(cards))
	}

	// The hand flows horizontally with 12px spacing between 60px cards.
	wantX := []float64{0, 72, 144, 216, 288}
	for i, card := range cards {
		if got := card.X.Value(); got != wantX[i] {
			t.Errorf("card %d X = %v, want %v", i, got, wantX[i])
		}
		if card.FaceUp.Value() {
			t.Errorf("card %d dealt face up", i)
		}
	}
	if w := hand.Width.Value(); w != 348 {
		t.Errorf("hand width = %v, want 348", w)
	}
	if h := hand.Height.Value(); h != 84 {
		t.Errorf("hand height = %v, want 84", h)
	}

	if score.Text.Value() != "score: 0" {
		t.Errorf("score text = %q, want %q", score.Text.Value(), "score: 0")
	}
}
