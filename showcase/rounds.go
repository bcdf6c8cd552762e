package main

// Act is one beat of the table's self-running game.
type Act struct {
	Name string
	Note string
	Run  func(t *Table)
}

// acts is the registry of beats in play order. The table loops through
// them forever; each beat drives the same paths a player's taps would.
var acts = []Act{
	{"deal", "two cards each, the hole card stays down", func(t *Table) {
		t.DealButton.Activate()
	}},
	{"hit", "player draws to seventeen", func(t *Table) {
		for t.phase == phasePlaying && handTotal(cardsOf(t.Player)) < 17 {
			if !t.HitButton.Activate() {
				break
			}
		}
	}},
	{"stand", "hole card turns over, dealer draws", func(t *Table) {
		t.StandButton.Activate()
	}},
	{"settle", "hands are compared and the book updated", (*Table).settle},
	{"sweep", "cards leave the table", (*Table).sweep},
}

// Step runs the next act. With auto play unchecked the table sits
// still and waits for button activations.
func (t *Table) Step() {
	if !t.AutoPlay.Checked.Value() {
		return
	}
	act := acts[t.actStep%len(acts)]
	t.actStep++
	act.Run(t)
}
