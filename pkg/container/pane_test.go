package container

import (
	"testing"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/geometry"
)

func fixedBox(x, y, w, h float64) *component.CheckBox {
	c := component.NewCheckBox()
	c.Reposition(x, y)
	c.Resize(w, h)
	return c
}

func TestPane_ContentBounds(t *testing.T) {
	p := NewPane()
	p.Add(fixedBox(0, 0, 10, 10))
	p.Add(fixedBox(30, 5, 10, 10))

	got := p.ContentBounds()
	want := geometry.Rect{Left: 0, Top: 0, Right: 40, Bottom: 15}
	if got != want {
		t.Errorf("ContentBounds() = %+v, want %+v", got, want)
	}
}

func TestPane_TracksChildMoves(t *testing.T) {
	p := NewPane()
	child := fixedBox(0, 0, 10, 10)
	p.Add(child)

	child.X.Set(90)

	got := p.ContentBounds()
	want := geometry.Rect{Left: 90, Top: 0, Right: 100, Bottom: 10}
	if got != want {
		t.Errorf("ContentBounds() = %+v after child move, want %+v", got, want)
	}
}

func TestPane_RemoveReleasesClaim(t *testing.T) {
	p := NewPane()
	child := fixedBox(0, 0, 10, 10)
	p.Add(child)

	if !p.Remove(child) {
		t.Fatal("Remove returned false for a present child")
	}
	if child.Base().Owner() != nil {
		t.Error("removed child still has an owner")
	}

	before := p.ContentBounds()
	child.X.Set(500)
	if p.ContentBounds() != before {
		t.Error("pane bookkeeping reacted to a released child's move")
	}
}

func TestPane_RemoveMissingChild(t *testing.T) {
	p := NewPane()
	p.Add(fixedBox(0, 0, 10, 10))
	stranger := fixedBox(0, 0, 5, 5)

	changes := 0
	p.Children.AddListener(func(_, _ []component.Component) { changes++ })

	if p.Remove(stranger) {
		t.Error("Remove returned true for a child the pane never held")
	}
	if changes != 0 {
		t.Errorf("no-op removal dispatched %d notifications, want 0", changes)
	}
}

func TestPane_IdentityNotEquality(t *testing.T) {
	p := NewPane()
	a := fixedBox(0, 0, 10, 10)
	b := fixedBox(0, 0, 10, 10)
	p.Add(a)

	// b has equal state but is a different component.
	if p.Remove(b) {
		t.Error("Remove matched a structurally equal but distinct component")
	}
	if p.Children.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Children.Len())
	}
}

func TestPane_ReparentReplacesClaims(t *testing.T) {
	first := NewPane()
	second := NewPane()
	child := fixedBox(0, 0, 10, 10)

	first.Add(child)
	second.Add(child)

	if child.Base().Owner() != second {
		t.Fatal("child owner is not the second pane after re-parenting")
	}

	// The first pane's late removal must not disturb the new owner's
	// claims.
	first.Remove(child)
	if child.Base().Owner() != second {
		t.Error("first pane's removal cleared the second pane's ownership")
	}

	child.X.Set(40)
	want := geometry.Rect{Left: 40, Top: 0, Right: 50, Bottom: 10}
	if second.ContentBounds() != want {
		t.Errorf("second pane ContentBounds() = %+v, want %+v (its claim must survive)", second.ContentBounds(), want)
	}
}

func TestPane_BookkeepingSettlesBeforeGUI(t *testing.T) {
	p := NewPane()
	child := fixedBox(0, 0, 10, 10)
	p.Add(child)

	var atUser, atGUI geometry.Rect
	child.X.AddListener(func(_, _ float64) { atUser = p.ContentBounds() })
	child.X.SetGUIListener(func(_, _ float64) { atGUI = p.ContentBounds() })

	child.X.Set(50)

	stale := geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	fresh := geometry.Rect{Left: 50, Top: 0, Right: 60, Bottom: 10}
	if atUser != stale {
		t.Errorf("user channel saw bounds %+v, want the pre-reconcile %+v", atUser, stale)
	}
	if atGUI != fresh {
		t.Errorf("GUI channel saw bounds %+v, want the settled %+v", atGUI, fresh)
	}
}

func TestPane_BatchAddOneNotification(t *testing.T) {
	p := NewPane()
	changes := 0
	p.Children.AddListener(func(_, _ []component.Component) { changes++ })

	p.Children.AddAll(fixedBox(0, 0, 10, 10), fixedBox(20, 0, 10, 10), fixedBox(40, 0, 10, 10))

	if changes != 1 {
		t.Errorf("bulk add dispatched %d notifications, want 1", changes)
	}
	want := geometry.Rect{Left: 0, Top: 0, Right: 50, Bottom: 10}
	if p.ContentBounds() != want {
		t.Errorf("ContentBounds() = %+v after bulk add, want %+v", p.ContentBounds(), want)
	}
}

func TestPane_IsParent(t *testing.T) {
	p := NewPane()
	child := fixedBox(0, 0, 10, 10)
	p.Add(child)

	var parent component.Parent = p
	kids := parent.ChildComponents()
	if len(kids) != 1 || kids[0].ID() != child.ID() {
		t.Errorf("ChildComponents() = %d children, want the added child", len(kids))
	}
}

func TestPane_Properties(t *testing.T) {
	p := NewPane()
	p.Add(fixedBox(0, 0, 10, 10))

	refs := p.Properties()
	last := refs[len(refs)-1]
	if last.Name != "children" {
		t.Fatalf("last ref = %q, want %q", last.Name, "children")
	}
	if got := last.Value(); got != 1 {
		t.Errorf("children ref value = %v, want 1", got)
	}

	adds := 0
	last.Source.AddChangeListener(func() { adds++ })
	p.Add(fixedBox(0, 0, 5, 5))
	if adds != 1 {
		t.Errorf("erased children listener ran %d times, want 1", adds)
	}
}
