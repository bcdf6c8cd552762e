package component

import (
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/text"
)

// Padding around a button's text when autosizing.
const (
	buttonPadX = 12
	buttonPadY = 6
)

// Button is an activatable component with a text caption. Input routing
// lives outside this package; hosts call Activate when the button is
// triggered.
type Button struct {
	ComponentBase
	Text *observable.StringProperty

	// OnActivate runs when Activate fires. Nil is allowed.
	OnActivate func()

	measurer *text.Measurer
}

// NewButton returns a button sized to its caption plus padding.
func NewButton(caption string) *Button {
	b := &Button{
		ComponentBase: NewComponentBase("button"),
		Text:          observable.NewStringProperty(caption),
		measurer:      text.Default(),
	}
	b.Text.SetInternalListener(func(_, newValue string) {
		b.applyCaptionSize(newValue)
	})
	b.applyCaptionSize(caption)
	return b
}

func (b *Button) applyCaptionSize(caption string) {
	size := b.measurer.Measure(caption)
	b.Resize(size.Width+2*buttonPadX, size.Height+2*buttonPadY)
}

// Activate invokes OnActivate. Disabled or invisible buttons ignore
// activation and report false.
func (b *Button) Activate() bool {
	if b.Disabled.Value() || !b.Visible.Value() {
		return false
	}
	if b.OnActivate != nil {
		b.OnActivate()
	}
	return true
}

// Properties enumerates the shared refs plus the button's caption.
func (b *Button) Properties() []PropertyRef {
	return append(b.ComponentBase.Properties(),
		PropertyRef{Name: "text", Source: b.Text, Value: func() any { return b.Text.Value() }},
	)
}
