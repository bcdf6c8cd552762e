// Package container provides the structural-owner role: containers claim
// the internal-listener slots of their children's geometry properties and
// keep their bookkeeping settled before any GUI listener observes a
// change.
package container

import (
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/geometry"
	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Pane is a free-position container. Children keep whatever position
// they are given; the pane only tracks the union of their bounds.
//
// Membership lives in the Children list. The pane reconciles its
// internal-slot claims inside the list's internal channel, so direct
// list mutations and the Add/Remove conveniences behave identically.
type Pane struct {
	component.ComponentBase
	Children *observable.ObservableList[component.Component]

	contentBounds geometry.Rect
}

// NewPane returns an empty pane.
func NewPane() *Pane {
	p := &Pane{
		ComponentBase: component.NewComponentBase("pane"),
		Children:      observable.NewObservableListWithEquality(component.SameComponent),
	}
	p.Children.SetInternalListener(func(oldValues, newValues []component.Component) {
		p.reconcile(oldValues, newValues)
	})
	return p
}

// Add appends child and claims its geometry slots.
func (p *Pane) Add(child component.Component) {
	p.Children.Add(child)
}

// Remove drops child from the pane. Slots are released only if this pane
// still owns them; a child re-parented elsewhere keeps its new owner's
// listeners.
func (p *Pane) Remove(child component.Component) bool {
	return p.Children.Remove(child)
}

// ContentBounds returns the cached union of all child bounds, maintained
// through the children's internal geometry channels.
func (p *Pane) ContentBounds() geometry.Rect {
	return p.contentBounds
}

// ChildComponents returns the current children in order.
func (p *Pane) ChildComponents() []component.Component {
	return p.Children.Values()
}

// Properties enumerates the shared refs plus the child count.
func (p *Pane) Properties() []component.PropertyRef {
	return append(p.ComponentBase.Properties(),
		component.PropertyRef{Name: "children", Source: p.Children, Value: func() any { return p.Children.Len() }},
	)
}

func (p *Pane) reconcile(oldValues, newValues []component.Component) {
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
			p.release(c)
		}
	}
	for _, c := range newValues {
		if !previous[c.ID()] {
			p.claim(c)
		}
	}
	p.recomputeBounds()
}

// claim takes authority over every structural slot a container can hold,
// clearing the ones this pane does not track, so a re-parent from any
// other container fully displaces the prior claims.
func (p *Pane) claim(c component.Component) {
	base := c.Base()
	base.AttachOwner(p)
	track := func(_, _ float64) {
		p.recomputeBounds()
	}
	base.X.SetInternalListener(track)
	base.Y.SetInternalListener(track)
	base.Width.SetInternalListener(track)
	base.Height.SetInternalListener(track)
	base.Visible.SetInternalListener(nil)
}

func (p *Pane) release(c component.Component) {
	base := c.Base()
	if base.Owner() != p {
		return
	}
	base.X.SetInternalListener(nil)
	base.Y.SetInternalListener(nil)
	base.Width.SetInternalListener(nil)
	base.Height.SetInternalListener(nil)
	base.DetachOwner(p)
}

func (p *Pane) recomputeBounds() {
	var bounds geometry.Rect
	p.Children.ForEach(func(_ int, c component.Component) {
		bounds = bounds.Union(c.Base().Bounds())
	})
	p.contentBounds = bounds
}
