package animation

import (
	"fmt"
	"time"

	"github.com/go-tabletop/tabletop/pkg/errors"
	"github.com/go-tabletop/tabletop/pkg/observable"
)

// Status describes where an animation run stands.
//
//	                 Forward()
//	Dismissed ───────────────────► Completed
//	    ▲                               │
//	    │            Reverse()          │
//	    └───────────────────────────────┘
//
// While running, status is StatusForward or StatusReverse. At rest it is
// StatusDismissed (progress 0) or StatusCompleted (progress 1); a run
// stopped at a mid-range target keeps its direction.
type Status int

const (
	StatusDismissed Status = iota
	StatusForward
	StatusReverse
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Animator drives a bounded progress property toward a target over a
// duration. Progress is an ordinary property: application listeners,
// owners, and render pipelines attach to it like to anything else, and
// its bounds validation applies to the animator's own writes. Finished
// fires once per run when the target is reached.
type Animator struct {
	Progress *observable.LimitedDoubleProperty
	Finished *observable.Observable

	// Duration is the length of one full run. A run from a mid-range
	// start still takes the full duration.
	Duration time.Duration

	// Curve maps linear progress to eased progress. Defaults to
	// LinearCurve. A curve that leaves [0, 1] has its out-of-bounds
	// frames rejected by Progress and reported, not applied.
	Curve func(float64) float64

	status Status
	ticker *Ticker
	target float64
	from   float64
}

// NewAnimator creates an animator at rest with progress zero.
func NewAnimator(duration time.Duration) *Animator {
	progress, err := observable.NewLimitedDoubleProperty(0, 0, 1)
	if err != nil {
		panic(err)
	}
	return &Animator{
		Progress: progress,
		Finished: &observable.Observable{},
		Duration: duration,
		Curve:    LinearCurve,
		status:   StatusDismissed,
	}
}

// Forward runs from the current progress to 1.
func (a *Animator) Forward() {
	a.animateTo(1, StatusForward)
}

// Reverse runs from the current progress to 0.
func (a *Animator) Reverse() {
	a.animateTo(0, StatusReverse)
}

// AnimateTo runs from the current progress to target. A target outside
// the progress bounds is rejected before anything starts.
func (a *Animator) AnimateTo(target float64) error {
	if target < a.Progress.Lower() || target > a.Progress.Upper() {
		return &observable.BoundsError{
			Op:    "Animator.AnimateTo",
			Value: target,
			Lower: a.Progress.Lower(),
			Upper: a.Progress.Upper(),
		}
	}
	if target >= a.Progress.Value() {
		a.animateTo(target, StatusForward)
	} else {
		a.animateTo(target, StatusReverse)
	}
	return nil
}

func (a *Animator) animateTo(target float64, direction Status) {
	if a.ticker != nil {
		a.ticker.Stop()
	}
	a.target = target
	a.from = a.Progress.Value()
	a.status = direction
	a.ticker = NewTicker(func(elapsed time.Duration) {
		a.tick(elapsed)
	})
	a.ticker.Start()
}

func (a *Animator) tick(elapsed time.Duration) {
	if a.Duration <= 0 {
		a.apply(a.target)
		a.finish()
		return
	}

	progress := float64(elapsed) / float64(a.Duration)
	if progress >= 1 {
		progress = 1
	}
	eased := progress
	if a.Curve != nil {
		eased = a.Curve(progress)
	}
	a.apply(a.from + (a.target-a.from)*eased)

	if progress >= 1 {
		a.finish()
	}
}

// apply writes one frame. An out-of-bounds frame is reported and
// dropped; progress keeps its last valid value and the run continues.
func (a *Animator) apply(v float64) {
	if err := a.Progress.Set(v); err != nil {
		errors.Report(&errors.FrameworkError{
			Op:   "Animator.tick",
			Kind: errors.KindAnimation,
			Err:  err,
		})
	}
}

// finish stops the run and fires Finished exactly once. A listener may
// have stopped the run during the final frame already.
func (a *Animator) finish() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	switch {
	case a.target <= a.Progress.Lower():
		a.status = StatusDismissed
	case a.target >= a.Progress.Upper():
		a.status = StatusCompleted
	}
	a.Finished.NotifyChange()
}

// Stop halts the run at the current progress without firing Finished.
func (a *Animator) Stop() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

// Reset stops the run and snaps progress back to zero.
func (a *Animator) Reset() {
	a.Stop()
	a.apply(a.Progress.Lower())
	a.status = StatusDismissed
}

// Status returns where the animation stands.
func (a *Animator) Status() Status {
	return a.status
}

// IsAnimating reports whether a run is in flight.
func (a *Animator) IsAnimating() bool {
	return a.ticker != nil
}

// IsCompleted reports whether the animator rests at full progress.
func (a *Animator) IsCompleted() bool {
	return a.status == StatusCompleted
}

// IsDismissed reports whether the animator rests at zero progress.
func (a *Animator) IsDismissed() bool {
	return a.status == StatusDismissed
}

// Dispose stops the run and drops all user listeners from Progress and
// Finished. The slots are untouched; their owners release them.
func (a *Animator) Dispose() {
	a.Stop()
	a.Progress.ClearListeners()
	a.Finished.ClearListeners()
}
