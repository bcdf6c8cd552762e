package testing

import (
	"fmt"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/geometry"
)

// Tap activates the first component matched by finder: buttons fire
// their activation hook, checkboxes toggle, cards flip. It returns an
// error when nothing matches or the match rejects the interaction
// (disabled, hidden).
func (t *SceneTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no components: %s", finder.Description())
	}
	return tap(result.First())
}

// TapAt activates the topmost visible component containing pos, in scene
// coordinates. Components paint in traversal order, so the last hit is
// the topmost.
func (t *SceneTester) TapAt(pos geometry.Offset) error {
	target, ok := t.HitTest(pos)
	if !ok {
		return fmt.Errorf("TapAt: no component at (%v, %v)", pos.X, pos.Y)
	}
	return tap(target)
}

// HitTest returns the topmost visible component whose bounds contain
// pos, in scene coordinates.
func (t *SceneTester) HitTest(pos geometry.Offset) (component.Component, bool) {
	var hit component.Component
	t.scene.Components.ForEach(func(_ int, c component.Component) {
		hitTestTree(c, geometry.Offset{}, pos, &hit)
	})
	return hit, hit != nil
}

// hitTestTree walks one subtree accumulating parent origins, since child
// positions are parent-local. Later hits overwrite earlier ones.
func hitTestTree(c component.Component, origin, pos geometry.Offset, hit *component.Component) {
	base := c.Base()
	if !base.Visible.Value() {
		return
	}
	bounds := base.Bounds().Translate(origin.X, origin.Y)
	if bounds.Contains(pos) {
		*hit = c
	}
	if parent, ok := c.(component.Parent); ok {
		childOrigin := bounds.TopLeft()
		for _, child := range parent.ChildComponents() {
			hitTestTree(child, childOrigin, pos, hit)
		}
	}
}

func tap(c component.Component) error {
	switch x := c.(type) {
	case *component.Button:
		if !x.Activate() {
			return fmt.Errorf("Tap: button %q rejected activation", x.Text.Value())
		}
	case *component.CheckBox:
		if !x.Toggle() {
			return fmt.Errorf("Tap: checkbox %d rejected toggle", x.ID())
		}
	case *component.CardView:
		x.Flip()
	default:
		return fmt.Errorf("Tap: %s is not interactive", c.Kind())
	}
	return nil
}
