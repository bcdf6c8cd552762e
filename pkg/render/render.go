// Package render provides the render-owner role. A Pipeline claims the
// GUI-listener slot of every property in a scene and folds notifications
// into a deduplicated dirty set; a renderer drains the set once per frame
// and reads current values, treating each notification as a redraw hint
// rather than a data delivery.
package render

import (
	"slices"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/geometry"
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

// StageID is the pseudo component id used for invalidations of the scene
// itself: stage size, opacity, top-level membership. Component ids start
// at one, so zero is free.
const StageID uint64 = 0

// Invalidation names one component needing redraw. Bounds are read at
// flush time, so coalesced changes surface the final geometry.
type Invalidation struct {
	ID     uint64
	Kind   string
	Bounds geometry.Rect
}

// Pipeline tracks dirty components for one scene. The zero value is
// ready; Attach claims the scene.
//
// A scene carries at most one pipeline. Attaching a second displaces the
// first's listeners slot by slot, and the displaced pipeline is not
// informed, matching slot semantics everywhere else.
type Pipeline struct {
	scene       *scene.Scene
	stageClaims []observable.Listenable

	attached   map[uint64]bool
	claimed    map[uint64][]observable.Listenable
	order      map[uint64]int // flush position, assigned at attach
	components map[uint64]component.Component
	nextSeq    int

	dirty      map[uint64]struct{}
	needsFlush bool
	needsSync  bool
}

// Attach claims the GUI slots of s and of every component reachable from
// it. All of them start dirty, so the first Flush covers the whole scene.
func (p *Pipeline) Attach(s *scene.Scene) {
	if p.scene != nil {
		p.Detach()
	}
	if p.attached == nil {
		p.attached = make(map[uint64]bool)
		p.claimed = make(map[uint64][]observable.Listenable)
		p.order = make(map[uint64]int)
		p.components = make(map[uint64]component.Component)
	}
	p.scene = s
	p.order[StageID] = p.nextSeq
	p.nextSeq++

	for _, ref := range s.Properties() {
		src := ref.Source
		src.SetGUIChangeListener(func() { p.mark(StageID) })
		p.stageClaims = append(p.stageClaims, src)
	}
	s.Components.SetGUIChangeListener(func() {
		p.mark(StageID)
		p.needsSync = true
	})
	p.stageClaims = append(p.stageClaims, s.Components)

	p.mark(StageID)
	p.sync()
}

// Detach releases every claimed slot and clears the dirty set. Call it
// only while this pipeline still holds the claims; after a displacing
// Attach by another pipeline, detaching would clear the new owner's
// listeners.
func (p *Pipeline) Detach() {
	if p.scene == nil {
		return
	}
	for _, src := range p.stageClaims {
		src.SetGUIChangeListener(nil)
	}
	p.stageClaims = nil
	for id := range p.attached {
		p.release(id)
	}
	p.scene = nil
	p.dirty = nil
	p.needsFlush = false
	p.needsSync = false
}

// NeedsFlush reports whether any component has been invalidated since
// the last flush.
func (p *Pipeline) NeedsFlush() bool {
	return p.needsFlush
}

// Flush drains the dirty set in attach order, parents before children.
// Membership changes observed since the last flush are reconciled first,
// so newly added components appear in the result and removed ones do
// not.
func (p *Pipeline) Flush() []Invalidation {
	if p.scene == nil {
		return nil
	}
	if p.needsSync {
		p.sync()
	}
	if !p.needsFlush || len(p.dirty) == 0 {
		p.dirty = nil
		p.needsFlush = false
		return nil
	}

	ids := make([]uint64, 0, len(p.dirty))
	for id := range p.dirty {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uint64) int {
		return p.order[a] - p.order[b]
	})

	result := make([]Invalidation, 0, len(ids))
	for _, id := range ids {
		if id == StageID {
			result = append(result, Invalidation{
				ID:     StageID,
				Kind:   "scene",
				Bounds: geometry.RectFromLTWH(0, 0, p.scene.Width.Value(), p.scene.Height.Value()),
			})
			continue
		}
		c, ok := p.components[id]
		if !ok {
			continue
		}
		result = append(result, Invalidation{ID: id, Kind: c.Kind(), Bounds: c.Base().Bounds()})
	}

	p.dirty = nil
	p.needsFlush = false
	return result
}

func (p *Pipeline) mark(id uint64) {
	if p.dirty == nil {
		p.dirty = make(map[uint64]struct{})
	}
	if _, exists := p.dirty[id]; exists {
		return
	}
	p.dirty[id] = struct{}{}
	p.needsFlush = true
}

// sync reconciles the attachment set against the scene tree: newcomers
// are claimed and marked for first paint, vanished components are
// released.
func (p *Pipeline) sync() {
	reachable := make(map[uint64]bool)
	p.scene.VisitComponents(func(c component.Component) {
		reachable[c.ID()] = true
		if !p.attached[c.ID()] {
			p.attach(c)
		}
	})
	for id := range p.attached {
		if !reachable[id] {
			p.release(id)
		}
	}
	p.needsSync = false
}

func (p *Pipeline) attach(c component.Component) {
	id := c.ID()
	p.attached[id] = true
	p.components[id] = c
	p.order[id] = p.nextSeq
	p.nextSeq++

	refs := c.Properties()
	claims := make([]observable.Listenable, 0, len(refs))
	for _, ref := range refs {
		src := ref.Source
		if ref.Name == "children" {
			// Membership changes need a tree reconcile before the
			// next drain.
			src.SetGUIChangeListener(func() {
				p.mark(id)
				p.needsSync = true
			})
		} else {
			src.SetGUIChangeListener(func() { p.mark(id) })
		}
		claims = append(claims, src)
	}
	p.claimed[id] = claims
	p.mark(id)
}

func (p *Pipeline) release(id uint64) {
	for _, src := range p.claimed[id] {
		src.SetGUIChangeListener(nil)
	}
	delete(p.claimed, id)
	delete(p.attached, id)
	delete(p.order, id)
	delete(p.components, id)
	delete(p.dirty, id)
}
