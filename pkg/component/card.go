package component

import (
	"fmt"

	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Standard playing-card size at table scale.
const (
	cardWidth  = 60
	cardHeight = 84
)

// Suit identifies one of the four French suits.
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
)

// Symbol returns the suit's single-rune display form.
func (s Suit) Symbol() string {
	switch s {
	case SuitSpades:
		return "♠"
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	default:
		return "?"
	}
}

// CardView shows a single playing card. Rank and suit are fixed at
// construction; only orientation changes over the card's life.
type CardView struct {
	ComponentBase
	Rank string
	Suit Suit

	FaceUp *observable.BooleanProperty
}

// NewCardView returns a face-down card at the standard size.
func NewCardView(rank string, suit Suit) *CardView {
	c := &CardView{
		ComponentBase: NewComponentBase("card"),
		Rank:          rank,
		Suit:          suit,
		FaceUp:        observable.NewBooleanProperty(false),
	}
	c.Resize(cardWidth, cardHeight)
	return c
}

// Flip turns the card over.
func (c *CardView) Flip() {
	c.FaceUp.Set(!c.FaceUp.Value())
}

// Name returns the card's display name, e.g. "A♠".
func (c *CardView) Name() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Symbol())
}

// Properties enumerates the shared refs plus the card's orientation.
func (c *CardView) Properties() []PropertyRef {
	return append(c.ComponentBase.Properties(),
		PropertyRef{Name: "faceUp", Source: c.FaceUp, Value: func() any { return c.FaceUp.Value() }},
	)
}
