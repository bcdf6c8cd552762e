// Package component provides the retained-mode scene elements. Every
// mutable aspect of a component is an observable property: game logic
// writes through the property, and containers, renderers, and application
// listeners react through its notification channels.
package component

import (
	"sync/atomic"

	"github.com/go-tabletop/tabletop/pkg/geometry"
	"github.com/go-tabletop/tabletop/pkg/observable"
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// PropertyRef names one observable property of a component so renderers
// and diagnostics can enumerate them without knowing the value types.
type PropertyRef struct {
	// Name identifies the property within its component ("x", "text").
	Name string
	// Source is the payload-erased attachment point.
	Source observable.Listenable
	// Value reads the current value for display purposes.
	Value func() any
}

// Component is the interface every scene element implements. Concrete
// components embed ComponentBase and extend Properties with their own
// refs.
type Component interface {
	ID() uint64
	Kind() string
	Base() *ComponentBase
	Properties() []PropertyRef
}

// Parent is implemented by components that hold other components, so
// traversal and rendering can walk nested containers without knowing
// their concrete types.
type Parent interface {
	Component
	ChildComponents() []Component
}

// SameComponent compares components by identity. Component lists use it
// as their equality so two components with equal state stay distinct
// entries.
func SameComponent(a, b Component) bool {
	return a == b
}

// ComponentBase holds the properties shared by all components. The
// geometry properties' internal-listener slots belong to the parent
// container once the component is added to one.
type ComponentBase struct {
	id    uint64
	kind  string
	owner any

	X        *observable.DoubleProperty
	Y        *observable.DoubleProperty
	Width    *observable.DoubleProperty
	Height   *observable.DoubleProperty
	Rotation *observable.DoubleProperty
	Opacity  *observable.LimitedDoubleProperty
	Visible  *observable.BooleanProperty
	Disabled *observable.BooleanProperty
}

// NewComponentBase returns a base with a fresh identity and default
// property values: origin geometry, full opacity, visible, enabled.
func NewComponentBase(kind string) ComponentBase {
	return ComponentBase{
		id:       nextID(),
		kind:     kind,
		X:        observable.NewDoubleProperty(0),
		Y:        observable.NewDoubleProperty(0),
		Width:    observable.NewDoubleProperty(0),
		Height:   observable.NewDoubleProperty(0),
		Rotation: observable.NewDoubleProperty(0),
		Opacity:  newOpacity(),
		Visible:  observable.NewBooleanProperty(true),
		Disabled: observable.NewBooleanProperty(false),
	}
}

func newOpacity() *observable.LimitedDoubleProperty {
	p, err := observable.NewLimitedDoubleProperty(1, 0, 1)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the component's unique identity.
func (b *ComponentBase) ID() uint64 {
	return b.id
}

// Kind returns the component type name used by diagnostics.
func (b *ComponentBase) Kind() string {
	return b.kind
}

// Base returns the component's shared property set.
func (b *ComponentBase) Base() *ComponentBase {
	return b
}

// AttachOwner records owner as the component's structural owner,
// displacing any previous owner without informing it. Called by
// containers when they claim the component's internal-listener slots.
func (b *ComponentBase) AttachOwner(owner any) {
	b.owner = owner
}

// DetachOwner clears the structural owner, but only if owner still holds
// the claim. A displaced former owner's detach is a no-op, matching the
// replace-and-discard slot semantics.
func (b *ComponentBase) DetachOwner(owner any) {
	if b.owner == owner {
		b.owner = nil
	}
}

// Owner returns the current structural owner, or nil.
func (b *ComponentBase) Owner() any {
	return b.owner
}

// Reposition sets X and Y. Each property notifies separately.
func (b *ComponentBase) Reposition(x, y float64) {
	b.X.Set(x)
	b.Y.Set(y)
}

// Resize sets Width and Height. Each property notifies separately.
func (b *ComponentBase) Resize(width, height float64) {
	b.Width.Set(width)
	b.Height.Set(height)
}

// Bounds returns the component's rectangle in parent coordinates.
func (b *ComponentBase) Bounds() geometry.Rect {
	return geometry.RectFromLTWH(b.X.Value(), b.Y.Value(), b.Width.Value(), b.Height.Value())
}

// ContainsPoint reports whether p, in parent coordinates, lies within the
// component's bounds.
func (b *ComponentBase) ContainsPoint(p geometry.Offset) bool {
	return b.Bounds().Contains(p)
}

// Properties enumerates the shared property set. Concrete components
// append their own refs.
func (b *ComponentBase) Properties() []PropertyRef {
	return []PropertyRef{
		{Name: "x", Source: b.X, Value: func() any { return b.X.Value() }},
		{Name: "y", Source: b.Y, Value: func() any { return b.Y.Value() }},
		{Name: "width", Source: b.Width, Value: func() any { return b.Width.Value() }},
		{Name: "height", Source: b.Height, Value: func() any { return b.Height.Value() }},
		{Name: "rotation", Source: b.Rotation, Value: func() any { return b.Rotation.Value() }},
		{Name: "opacity", Source: b.Opacity, Value: func() any { return b.Opacity.Value() }},
		{Name: "visible", Source: b.Visible, Value: func() any { return b.Visible.Value() }},
		{Name: "disabled", Source: b.Disabled, Value: func() any { return b.Disabled.Value() }},
	}
}
