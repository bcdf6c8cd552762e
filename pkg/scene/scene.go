// Package scene holds the root of a component tree. A scene is the unit
// a render pipeline attaches to and a diagnostics server reports on; it
// owns no layout and claims no slots.
package scene

import (
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Scene is the root of a component tree. Top-level components live in
// Components; nested ones are reached through their containers.
type Scene struct {
	Components *observable.ObservableList[component.Component]

	Width   *observable.DoubleProperty
	Height  *observable.DoubleProperty
	Opacity *observable.LimitedDoubleProperty
}

// NewScene returns an empty scene with the given stage size.
func NewScene(width, height float64) *Scene {
	opacity, err := observable.NewLimitedDoubleProperty(1, 0, 1)
	if err != nil {
		panic(err)
	}
	return &Scene{
		Components: observable.NewObservableListWithEquality(component.SameComponent),
		Width:      observable.NewDoubleProperty(width),
		Height:     observable.NewDoubleProperty(height),
		Opacity:    opacity,
	}
}

// Add appends a top-level component.
func (s *Scene) Add(c component.Component) {
	s.Components.Add(c)
}

// Remove drops a top-level component. Components nested in containers
// are removed through their container, not the scene.
func (s *Scene) Remove(c component.Component) bool {
	return s.Components.Remove(c)
}

// VisitComponents walks every component in the scene depth-first,
// parents before children, in list order.
func (s *Scene) VisitComponents(visit func(component.Component)) {
	s.Components.ForEach(func(_ int, c component.Component) {
		visitTree(c, visit)
	})
}

func visitTree(c component.Component, visit func(component.Component)) {
	visit(c)
	if parent, ok := c.(component.Parent); ok {
		for _, child := range parent.ChildComponents() {
			visitTree(child, visit)
		}
	}
}

// FindComponent returns the component with id anywhere in the tree.
func (s *Scene) FindComponent(id uint64) (component.Component, bool) {
	var found component.Component
	s.VisitComponents(func(c component.Component) {
		if found == nil && c.ID() == id {
			found = c
		}
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// ComponentCount returns the number of components in the tree, nested
// ones included.
func (s *Scene) ComponentCount() int {
	count := 0
	s.VisitComponents(func(component.Component) {
		count++
	})
	return count
}

// Properties enumerates the scene's own observable properties in the
// same shape components use, so pipelines and diagnostics can treat the
// root uniformly.
func (s *Scene) Properties() []component.PropertyRef {
	return []component.PropertyRef{
		{Name: "width", Source: s.Width, Value: func() any { return s.Width.Value() }},
		{Name: "height", Source: s.Height, Value: func() any { return s.Height.Value() }},
		{Name: "opacity", Source: s.Opacity, Value: func() any { return s.Opacity.Value() }},
	}
}
