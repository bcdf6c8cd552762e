package component

import (
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/text"
)

// Label displays a line of text and sizes itself to its content. The
// label owns its Text property's internal slot: a text change re-measures
// and resizes, which in turn notifies the size properties' own channels,
// so a parent layout reflows before the renderer sees the change.
type Label struct {
	ComponentBase
	Text *observable.StringProperty

	measurer *text.Measurer
}

// NewLabel returns a label measured with the shared default face.
func NewLabel(content string) *Label {
	return NewLabelWithMeasurer(content, text.Default())
}

// NewLabelWithMeasurer returns a label measured with a specific face.
func NewLabelWithMeasurer(content string, m *text.Measurer) *Label {
	l := &Label{
		ComponentBase: NewComponentBase("label"),
		Text:          observable.NewStringProperty(content),
		measurer:      m,
	}
	l.Text.SetInternalListener(func(_, newValue string) {
		l.applyTextSize(newValue)
	})
	l.applyTextSize(content)
	return l
}

func (l *Label) applyTextSize(content string) {
	size := l.measurer.Measure(content)
	l.Resize(size.Width, size.Height)
}

// Properties enumerates the shared refs plus the label's text.
func (l *Label) Properties() []PropertyRef {
	return append(l.ComponentBase.Properties(),
		PropertyRef{Name: "text", Source: l.Text, Value: func() any { return l.Text.Value() }},
	)
}
