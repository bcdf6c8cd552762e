package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/container"
	"github.com/go-tabletop/tabletop/pkg/errors"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

type phase int

const (
	phaseIdle phase = iota
	phasePlaying
	phaseStanding
	phaseScored
)

// Table holds the whole game as a scene. Every label, gauge, and card
// is reached through observable properties, so the diagnostics server
// sees each act as it lands.
type Table struct {
	Scene *scene.Scene

	Dealer *container.LinearLayout
	Player *container.LinearLayout

	Round     *component.Label
	Score     *component.Label
	Status    *component.Label
	DeckGauge *component.ProgressBar
	AutoPlay  *component.CheckBox

	DealButton  *component.Button
	HitButton   *component.Button
	StandButton *component.Button

	rng   *rand.Rand
	deck  []cardSpec
	drawn int

	wins, losses, pushes int
	rounds               int

	phase   phase
	actStep int
}

type cardSpec struct {
	rank string
	suit component.Suit
}

var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var suits = []component.Suit{
	component.SuitSpades,
	component.SuitHearts,
	component.SuitDiamonds,
	component.SuitClubs,
}

// NewTable deals nothing yet: it builds the scene and waits for the
// first act.
func NewTable(rng *rand.Rand) *Table {
	t := &Table{
		Scene: scene.NewScene(960, 540),
		rng:   rng,
	}
	t.freshShoe()

	title := component.NewLabel("tabletop blackjack")
	title.Reposition(24, 16)
	t.Scene.Add(title)

	// The book column reflows itself when a label grows.
	t.Round = component.NewLabel("round 0")
	t.Score = component.NewLabel("wins 0, losses 0, pushes 0")
	t.Status = component.NewLabel("waiting for the first deal")
	book := container.NewLinearLayout(container.Vertical)
	book.Spacing.Set(6)
	book.Reposition(24, 48)
	book.Add(t.Round)
	book.Add(t.Score)
	book.Add(t.Status)
	t.Scene.Add(book)

	// Hands live on the felt; their positions are felt-local.
	t.Dealer = container.NewLinearLayout(container.Horizontal)
	t.Dealer.Spacing.Set(12)
	t.Player = container.NewLinearLayout(container.Horizontal)
	t.Player.Spacing.Set(12)
	t.Player.Reposition(0, 110)

	felt := container.NewPane()
	felt.Reposition(24, 150)
	felt.Add(t.Dealer)
	felt.Add(t.Player)
	t.Scene.Add(felt)

	t.DealButton = component.NewButton("Deal")
	t.DealButton.OnActivate = t.deal
	t.HitButton = component.NewButton("Hit")
	t.HitButton.OnActivate = t.hitOnce
	t.HitButton.Disabled.Set(true)
	t.StandButton = component.NewButton("Stand")
	t.StandButton.OnActivate = t.stand
	t.StandButton.Disabled.Set(true)

	controls := container.NewLinearLayout(container.Horizontal)
	controls.Spacing.Set(8)
	controls.Reposition(24, 400)
	controls.Add(t.DealButton)
	controls.Add(t.HitButton)
	controls.Add(t.StandButton)
	t.Scene.Add(controls)

	t.AutoPlay = component.NewCheckBox()
	t.AutoPlay.Checked.Set(true)
	autoRow := container.NewLinearLayout(container.Horizontal)
	autoRow.Spacing.Set(8)
	autoRow.Reposition(24, 448)
	autoRow.Add(t.AutoPlay)
	autoRow.Add(component.NewLabel("auto play"))
	t.Scene.Add(autoRow)

	t.DeckGauge = component.NewProgressBar()
	t.DeckGauge.Reposition(24, 490)
	t.Scene.Add(t.DeckGauge)

	return t
}

// RoundsPlayed returns the number of settled rounds.
func (t *Table) RoundsPlayed() int {
	return t.rounds
}

// Book returns the running win, loss, and push counts.
func (t *Table) Book() (wins, losses, pushes int) {
	return t.wins, t.losses, t.pushes
}

// freshShoe rebuilds and shuffles the deck.
func (t *Table) freshShoe() {
	t.deck = t.deck[:0]
	for _, suit := range suits {
		for _, rank := range ranks {
			t.deck = append(t.deck, cardSpec{rank: rank, suit: suit})
		}
	}
	t.rng.Shuffle(len(t.deck), func(i, j int) {
		t.deck[i], t.deck[j] = t.deck[j], t.deck[i]
	})
	t.drawn = 0
	if t.DeckGauge != nil {
		t.setGauge()
	}
}

// deal opens a round: two cards each, the dealer's first face down.
func (t *Table) deal() {
	if t.phase != phaseIdle {
		return
	}
	if len(t.deck)-t.drawn < 16 {
		t.freshShoe()
		t.Status.Text.Set("fresh shoe")
	}

	t.draw(t.Dealer, false)
	t.draw(t.Dealer, true)
	t.draw(t.Player, true)
	t.draw(t.Player, true)

	t.phase = phasePlaying
	t.DealButton.Disabled.Set(true)
	t.HitButton.Disabled.Set(false)
	t.StandButton.Disabled.Set(false)
	t.Round.Text.Set(fmt.Sprintf("round %d", t.rounds+1))
	t.Status.Text.Set(fmt.Sprintf("player holds %d", handTotal(cardsOf(t.Player))))
}

// hitOnce draws one card for the player. A bust stands automatically.
func (t *Table) hitOnce() {
	if t.phase != phasePlaying {
		return
	}
	t.draw(t.Player, true)

	total := handTotal(cardsOf(t.Player))
	if total > 21 {
		t.Status.Text.Set(fmt.Sprintf("player busts with %d", total))
		t.stand()
		return
	}
	t.Status.Text.Set(fmt.Sprintf("player holds %d", total))
}

// stand ends the player's turn: the hole card turns over and the dealer
// draws to seventeen, unless the player already busted.
func (t *Table) stand() {
	if t.phase != phasePlaying {
		return
	}
	t.phase = phaseStanding
	t.HitButton.Disabled.Set(true)
	t.StandButton.Disabled.Set(true)

	dealer := cardsOf(t.Dealer)
	if len(dealer) > 0 && !dealer[0].FaceUp.Value() {
		dealer[0].Flip()
	}

	if handTotal(cardsOf(t.Player)) <= 21 {
		for handTotal(cardsOf(t.Dealer)) < 17 {
			t.draw(t.Dealer, true)
		}
	}

	total := handTotal(cardsOf(t.Dealer))
	if total > 21 {
		t.Status.Text.Set(fmt.Sprintf("dealer busts with %d", total))
	} else {
		t.Status.Text.Set(fmt.Sprintf("dealer stands at %d", total))
	}
}

// settle compares the hands and updates the book.
func (t *Table) settle() {
	if t.phase != phaseStanding {
		return
	}
	t.phase = phaseScored
	t.rounds++

	player := handTotal(cardsOf(t.Player))
	dealer := handTotal(cardsOf(t.Dealer))
	switch {
	case player > 21:
		t.losses++
		t.Status.Text.Set(fmt.Sprintf("dealer takes round %d", t.rounds))
	case dealer > 21 || player > dealer:
		t.wins++
		t.Status.Text.Set(fmt.Sprintf("player takes round %d, %d to %d", t.rounds, player, dealer))
	case dealer > player:
		t.losses++
		t.Status.Text.Set(fmt.Sprintf("dealer takes round %d, %d to %d", t.rounds, dealer, player))
	default:
		t.pushes++
		t.Status.Text.Set(fmt.Sprintf("round %d pushes at %d", t.rounds, player))
	}
	t.Score.Text.Set(fmt.Sprintf("wins %d, losses %d, pushes %d", t.wins, t.losses, t.pushes))
}

// sweep clears both hands and reopens the table.
func (t *Table) sweep() {
	if t.phase != phaseScored {
		return
	}
	t.Player.Children.Clear()
	t.Dealer.Children.Clear()
	t.phase = phaseIdle
	t.DealButton.Disabled.Set(false)
	t.Status.Text.Set("table cleared")
}

// draw moves the next card from the shoe into hand and fades it in.
func (t *Table) draw(hand *container.LinearLayout, faceUp bool) {
	if t.drawn >= len(t.deck) {
		// The shoe ran dry mid-round; cut in a fresh one.
		t.freshShoe()
	}
	spec := t.deck[t.drawn]
	t.drawn++

	card := component.NewCardView(spec.rank, spec.suit)
	if faceUp {
		card.FaceUp.Set(true)
	}
	t.setOpacity(card, 0.25)
	hand.Add(card)
	t.fadeIn(card)
	t.setGauge()
}

// fadeIn raises a fresh card's opacity over a short run. The animator
// disposes itself from its own completion signal; dispatch snapshots
// make that safe.
func (t *Table) fadeIn(card *component.CardView) {
	anim := animation.NewAnimator(180 * time.Millisecond)
	anim.Curve = animation.EaseOut
	anim.Progress.AddListener(func(_, v float64) {
		t.setOpacity(card, 0.25+0.75*v)
	})
	anim.Finished.AddListener(func() {
		anim.Dispose()
	})
	anim.Forward()
}

func (t *Table) setOpacity(card *component.CardView, v float64) {
	if err := card.Opacity.Set(v); err != nil {
		errors.Report(&errors.FrameworkError{Op: "showcase.fade", Kind: errors.KindAnimation, Err: err})
	}
}

func (t *Table) setGauge() {
	used := float64(t.drawn) / float64(len(t.deck))
	if err := t.DeckGauge.Progress.Set(used); err != nil {
		errors.Report(&errors.FrameworkError{Op: "showcase.gauge", Kind: errors.KindScene, Err: err})
	}
}

// cardsOf returns the card views in a hand, in deal order.
func cardsOf(hand *container.LinearLayout) []*component.CardView {
	values := hand.Children.Values()
	cards := make([]*component.CardView, 0, len(values))
	for _, c := range values {
		if card, ok := c.(*component.CardView); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// handTotal scores a hand the blackjack way: aces count eleven until
// the hand would bust.
func handTotal(cards []*component.CardView) int {
	total := 0
	aces := 0
	for _, card := range cards {
		v := rankValue(card.Rank)
		if card.Rank == "A" {
			aces++
		}
		total += v
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

func rankValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "K", "Q", "J":
		return 10
	default:
		n, err := strconv.Atoi(rank)
		if err != nil {
			return 0
		}
		return n
	}
}
