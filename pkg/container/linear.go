package container

import (
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Axis selects a LinearLayout's flow direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// LinearLayout places children sequentially along one axis. It claims the
// internal slots of each child's size and visibility properties: a child
// growing, shrinking, or hiding reflows all positions synchronously
// inside the notification pass, before the GUI channel fires. Positions
// are owned by the layout and expressed in layout-local coordinates.
type LinearLayout struct {
	component.ComponentBase
	Children *observable.ObservableList[component.Component]
	Spacing  *observable.DoubleProperty

	axis Axis
}

// NewLinearLayout returns an empty layout flowing along axis.
func NewLinearLayout(axis Axis) *LinearLayout {
	l := &LinearLayout{
		ComponentBase: component.NewComponentBase("linearlayout"),
		Children:      observable.NewObservableListWithEquality(component.SameComponent),
		Spacing:       observable.NewDoubleProperty(0),
		axis:          axis,
	}
	l.Children.SetInternalListener(func(oldValues, newValues []component.Component) {
		l.reconcile(oldValues, newValues)
	})
	l.Spacing.SetInternalListener(func(_, _ float64) {
		l.reflow()
	})
	return l
}

// Axis returns the layout's flow direction.
func (l *LinearLayout) Axis() Axis {
	return l.axis
}

// Add appends child, claims its slots, and reflows.
func (l *LinearLayout) Add(child component.Component) {
	l.Children.Add(child)
}

// Remove drops child and reflows the remainder. Slots are released only
// if this layout still owns them.
func (l *LinearLayout) Remove(child component.Component) bool {
	return l.Children.Remove(child)
}

// ChildComponents returns the current children in order.
func (l *LinearLayout) ChildComponents() []component.Component {
	return l.Children.Values()
}

// Properties enumerates the shared refs plus the child count and spacing.
func (l *LinearLayout) Properties() []component.PropertyRef {
	return append(l.ComponentBase.Properties(),
		component.PropertyRef{Name: "children", Source: l.Children, Value: func() any { return l.Children.Len() }},
		component.PropertyRef{Name: "spacing", Source: l.Spacing, Value: func() any { return l.Spacing.Value() }},
	)
}

func (l *LinearLayout) reconcile(oldValues, newValues []component.Component) {
	current := make(map[uint64]bool, len(newValues))
	for _, c := range newValues {
		current[c.ID()] = true
	}
	previous := make(map[uint64]bool, len(oldValues))
	for _, c := range oldValues {
		previous[c.ID()] = true
	}

	for _, c := range oldValues {
		if !current[c.ID()] {
			l.release(c)
		}
	}
	for _, c := range newValues {
		if !previous[c.ID()] {
			l.claim(c)
		}
	}
	l.reflow()
}

// claim takes authority over every structural slot a container can hold.
// Positions are layout-owned, so the X and Y slots are cleared rather
// than listened on; listening there would re-enter reflow from its own
// writes.
func (l *LinearLayout) claim(c component.Component) {
	base := c.Base()
	base.AttachOwner(l)
	resize := func(_, _ float64) {
		l.reflow()
	}
	base.X.SetInternalListener(nil)
	base.Y.SetInternalListener(nil)
	base.Width.SetInternalListener(resize)
	base.Height.SetInternalListener(resize)
	base.Visible.SetInternalListener(func(_, _ bool) {
		l.reflow()
	})
}

func (l *LinearLayout) release(c component.Component) {
	base := c.Base()
	if base.Owner() != l {
		return
	}
	base.Width.SetInternalListener(nil)
	base.Height.SetInternalListener(nil)
	base.Visible.SetInternalListener(nil)
	base.DetachOwner(l)
}

// reflow repositions every visible child along the axis and resizes the
// layout to its content. Child positions are layout-local, starting at
// zero, so moving the layout itself never touches them. Reflow writes
// only positions and its own size, never child sizes, so it cannot
// re-enter itself through the slots it listens on.
func (l *LinearLayout) reflow() {
	spacing := l.Spacing.Value()

	cursor := 0.0
	crossExtent := 0.0
	count := 0
	l.Children.ForEach(func(_ int, c component.Component) {
		base := c.Base()
		if !base.Visible.Value() {
			return
		}
		if count > 0 {
			cursor += spacing
		}
		count++
		switch l.axis {
		case Horizontal:
			base.Reposition(cursor, 0)
			cursor += base.Width.Value()
			if h := base.Height.Value(); h > crossExtent {
				crossExtent = h
			}
		case Vertical:
			base.Reposition(0, cursor)
			cursor += base.Height.Value()
			if w := base.Width.Value(); w > crossExtent {
				crossExtent = w
			}
		}
	})

	switch l.axis {
	case Horizontal:
		l.Resize(cursor, crossExtent)
	case Vertical:
		l.Resize(crossExtent, cursor)
	}
}
