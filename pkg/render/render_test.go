package render

import (
	"testing"

	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/container"
	"github.com/go-tabletop/tabletop/pkg/geometry"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

func sizedBox(w, h float64) *component.CheckBox {
	c := component.NewCheckBox()
	c.Resize(w, h)
	return c
}

func flushIDs(invs []Invalidation) []uint64 {
	ids := make([]uint64, 0, len(invs))
	for _, inv := range invs {
		ids = append(ids, inv.ID)
	}
	return ids
}

func TestPipeline_FirstFlushCoversScene(t *testing.T) {
	s := scene.NewScene(800, 600)
	pane := container.NewPane()
	first := component.NewLabel("first")
	second := component.NewLabel("second")
	pane.Add(first)
	pane.Add(second)
	loose := component.NewCheckBox()
	s.Add(pane)
	s.Add(loose)

	p := &Pipeline{}
	p.Attach(s)

	invs := p.Flush()
	want := []uint64{StageID, pane.ID(), first.ID(), second.ID(), loose.ID()}
	got := flushIDs(invs)
	if len(got) != len(want) {
		t.Fatalf("first flush yielded %d invalidations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flush order[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if invs[0].Kind != "scene" {
		t.Errorf("stage invalidation kind = %q, want %q", invs[0].Kind, "scene")
	}
	if invs[0].Bounds != geometry.RectFromLTWH(0, 0, 800, 600) {
		t.Errorf("stage bounds = %+v, want the stage size", invs[0].Bounds)
	}

	if p.NeedsFlush() {
		t.Error("NeedsFlush() still true after a flush")
	}
	if again := p.Flush(); again != nil {
		t.Errorf("second flush yielded %d invalidations, want none", len(again))
	}
}

func TestPipeline_PropertyChangeMarksOneComponent(t *testing.T) {
	s := scene.NewScene(800, 600)
	label := component.NewLabel("score")
	s.Add(label)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	// Text change also resizes the label, but all hints coalesce onto
	// the one component.
	label.Text.Set("score: 42")

	invs := p.Flush()
	if len(invs) != 1 {
		t.Fatalf("flush yielded %d invalidations, want 1", len(invs))
	}
	if invs[0].ID != label.ID() || invs[0].Kind != "label" {
		t.Errorf("invalidation = {%d %q}, want the label", invs[0].ID, invs[0].Kind)
	}
	if invs[0].Bounds != label.Bounds() {
		t.Errorf("invalidation bounds = %+v, want the label's current %+v", invs[0].Bounds, label.Bounds())
	}
}

func TestPipeline_CoalescedMovesYieldFinalBounds(t *testing.T) {
	s := scene.NewScene(800, 600)
	box := sizedBox(16, 16)
	s.Add(box)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	box.Reposition(10, 10)
	box.Reposition(30, 40)

	invs := p.Flush()
	if len(invs) != 1 {
		t.Fatalf("flush yielded %d invalidations, want 1", len(invs))
	}
	want := geometry.RectFromLTWH(30, 40, 16, 16)
	if invs[0].Bounds != want {
		t.Errorf("bounds = %+v, want the final position %+v", invs[0].Bounds, want)
	}
}

func TestPipeline_AddedChildAttachesAtFlush(t *testing.T) {
	s := scene.NewScene(800, 600)
	pane := container.NewPane()
	s.Add(pane)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	newcomer := component.NewLabel("late")
	pane.Add(newcomer)

	invs := p.Flush()
	got := flushIDs(invs)
	want := []uint64{pane.ID(), newcomer.ID()}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("flush ids = %v, want %v", got, want)
	}

	// The newcomer's slots are claimed now: a later change marks it.
	newcomer.Text.Set("later")
	invs = p.Flush()
	if len(invs) != 1 || invs[0].ID != newcomer.ID() {
		t.Errorf("flush after text change = %v, want just the newcomer", flushIDs(invs))
	}
}

func TestPipeline_RemovedChildReleased(t *testing.T) {
	s := scene.NewScene(800, 600)
	pane := container.NewPane()
	child := component.NewLabel("gone")
	pane.Add(child)
	s.Add(pane)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	pane.Remove(child)

	invs := p.Flush()
	got := flushIDs(invs)
	if len(got) != 1 || got[0] != pane.ID() {
		t.Fatalf("removal flush ids = %v, want just the pane", got)
	}

	// The released component no longer reaches the pipeline.
	child.Text.Set("still gone")
	if p.NeedsFlush() {
		t.Error("released component still marks the pipeline")
	}
}

func TestPipeline_SceneMembershipMarksStage(t *testing.T) {
	s := scene.NewScene(800, 600)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	box := sizedBox(16, 16)
	s.Add(box)

	invs := p.Flush()
	got := flushIDs(invs)
	want := []uint64{StageID, box.ID()}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("flush ids = %v, want %v", got, want)
	}
}

func TestPipeline_BatchAddMarksStageOnce(t *testing.T) {
	s := scene.NewScene(800, 600)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	a := sizedBox(10, 10)
	b := sizedBox(10, 10)
	c := sizedBox(10, 10)
	s.Components.AddAll(a, b, c)

	invs := p.Flush()
	got := flushIDs(invs)
	want := []uint64{StageID, a.ID(), b.ID(), c.ID()}
	if len(got) != len(want) {
		t.Fatalf("batch flush yielded %d invalidations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flush order[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPipeline_StagePropertyMarksStage(t *testing.T) {
	s := scene.NewScene(800, 600)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	s.Width.Set(1024)

	invs := p.Flush()
	if len(invs) != 1 || invs[0].ID != StageID {
		t.Fatalf("flush = %v, want just the stage", flushIDs(invs))
	}
	if invs[0].Bounds != geometry.RectFromLTWH(0, 0, 1024, 600) {
		t.Errorf("stage bounds = %+v, want the resized stage", invs[0].Bounds)
	}
}

func TestPipeline_LayoutSettlesBeforeFlush(t *testing.T) {
	s := scene.NewScene(800, 600)
	layout := container.NewLinearLayout(container.Horizontal)
	a := sizedBox(10, 10)
	b := sizedBox(10, 10)
	layout.Add(a)
	layout.Add(b)
	s.Add(layout)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	// One write reflows the sibling and the layout inside the same
	// notification pass; the flush sees all three, settled, parents
	// first.
	a.Width.Set(30)

	invs := p.Flush()
	got := flushIDs(invs)
	want := []uint64{layout.ID(), a.ID(), b.ID()}
	if len(got) != len(want) {
		t.Fatalf("flush ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flush order[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if invs[2].Bounds.Left != 30 {
		t.Errorf("sibling bounds start at %v, want the reflowed 30", invs[2].Bounds.Left)
	}
	if invs[0].Bounds.Width() != 40 {
		t.Errorf("layout bounds width = %v, want the settled 40", invs[0].Bounds.Width())
	}
}

func TestPipeline_DetachStopsMarking(t *testing.T) {
	s := scene.NewScene(800, 600)
	box := sizedBox(16, 16)
	s.Add(box)
	p := &Pipeline{}
	p.Attach(s)
	p.Flush()

	p.Detach()

	box.Reposition(50, 50)
	s.Add(sizedBox(8, 8))
	if p.NeedsFlush() {
		t.Error("detached pipeline still receives marks")
	}
	if invs := p.Flush(); invs != nil {
		t.Errorf("detached flush yielded %d invalidations, want none", len(invs))
	}
}

func TestPipeline_SecondPipelineDisplacesFirst(t *testing.T) {
	s := scene.NewScene(800, 600)
	box := sizedBox(16, 16)
	s.Add(box)

	first := &Pipeline{}
	first.Attach(s)
	first.Flush()

	second := &Pipeline{}
	second.Attach(s)

	// The displacing attach claimed every slot; the first pipeline is
	// simply never told again.
	box.Reposition(5, 5)
	if first.NeedsFlush() {
		t.Error("displaced pipeline still receives marks")
	}
	invs := second.Flush()
	if len(invs) != 2 {
		t.Errorf("new pipeline's first flush yielded %d invalidations, want stage + box", len(invs))
	}
}
