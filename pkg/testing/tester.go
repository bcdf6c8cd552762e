package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/render"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

const (
	// DefaultTestWidth is the default stage width for the test scene.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default stage height for the test scene.
	DefaultTestHeight = 600
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scene did not settle")

// SceneTester drives a scene the way an application loop would, without a
// display: it owns the scene, the render pipeline attached to it, and a
// fake animation clock. Tests mutate properties, pump frames, and assert
// on the invalidations the pipeline reports.
type SceneTester struct {
	scene      *scene.Scene
	pipeline   render.Pipeline
	clock      *FakeClock
	restore    func()
	dispatches []func()
}

// NewSceneTester creates a tester with an empty scene at the default
// stage size and installs its fake clock as the animation time source.
// Call Cleanup() when done, or use NewSceneTesterWithT() instead.
func NewSceneTester() *SceneTester {
	t := &SceneTester{
		scene: scene.NewScene(DefaultTestWidth, DefaultTestHeight),
		clock: NewFakeClock(),
	}
	t.restore = animation.SetClock(t.clock)
	t.pipeline.Attach(t.scene)
	return t
}

// NewSceneTesterWithT creates a tester that auto-cleans up via
// t.Cleanup(). This is the recommended constructor for tests.
func NewSceneTesterWithT(t *testing.T) *SceneTester {
	tester := NewSceneTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup detaches the pipeline and restores the animation clock. Must
// be called if not using NewSceneTesterWithT.
func (t *SceneTester) Cleanup() {
	t.pipeline.Detach()
	t.restore()
}

// Scene returns the scene under test.
func (t *SceneTester) Scene() *scene.Scene {
	return t.scene
}

// Clock returns the fake clock for advancing time in tests.
func (t *SceneTester) Clock() *FakeClock {
	return t.clock
}

// NeedsFlush reports whether any component has been invalidated since
// the last Pump.
func (t *SceneTester) NeedsFlush() bool {
	return t.pipeline.NeedsFlush()
}

// Pump runs a single frame cycle: queued dispatches, tickers, then a
// pipeline flush. It returns the invalidations the flush drained.
func (t *SceneTester) Pump() []render.Invalidation {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}

	animation.StepTickers()
	return t.pipeline.Flush()
}

// PumpAndSettle runs frames until nothing is pending or the timeout is
// reached. Each frame advances the fake clock by 16ms. Returns
// ErrSettleTimeout if the scene does not settle within timeout.
func (t *SceneTester) PumpAndSettle(timeout time.Duration) error {
	const frameDuration = 16 * time.Millisecond
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// needsWork returns true if the scene has pending work.
func (t *SceneTester) needsWork() bool {
	return t.pipeline.NeedsFlush() ||
		animation.HasActiveTickers() ||
		len(t.dispatches) > 0
}

// Dispatch queues a callback for the start of the next frame, mirroring
// how a host loop hands work to the scene goroutine.
func (t *SceneTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Find evaluates a finder against every top-level component in the
// scene.
func (t *SceneTester) Find(finder Finder) FinderResult {
	var matches []component.Component
	t.scene.Components.ForEach(func(_ int, c component.Component) {
		matches = append(matches, finder.Evaluate(c)...)
	})
	return FinderResult{components: matches, finder: finder}
}
