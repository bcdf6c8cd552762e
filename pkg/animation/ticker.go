// Package animation drives observable properties over time. An Animator
// owns a bounded Progress property and a completion signal; the app loop
// advances every active ticker once per frame through StepTickers.
package animation

import (
	"sync"
	"time"
)

// Clock is the time source for tickers. Tests swap it out to drive
// animations deterministically instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var clock Clock = systemClock{}

// SetClock replaces the ticker time source and returns a restore
// function for cleanup.
func SetClock(c Clock) (restore func()) {
	prev := clock
	clock = c
	return func() { clock = prev }
}

// Now returns the current time from the active clock.
func Now() time.Time {
	return clock.Now()
}

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker invokes a callback with the elapsed time on every step while
// active. It is the low-level primitive under Animator; most code wants
// an Animator.
type Ticker struct {
	callback func(elapsed time.Duration)
	running  bool
	start    time.Time
}

// NewTicker creates an inactive ticker.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. Elapsed time is measured from here.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker. A stopped ticker can be started again.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool {
	return t.running
}

// Elapsed returns the time since Start, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers. The app loop calls this once
// per frame. A ticker stopped by an earlier callback in the same step is
// skipped.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	tickers := make([]*Ticker, 0, len(activeTickers))
	for t := range activeTickers {
		tickers = append(tickers, t)
	}
	tickerMu.Unlock()

	now := Now()
	for _, t := range tickers {
		if t.running && t.callback != nil {
			t.callback(now.Sub(t.start))
		}
	}
}

// HasActiveTickers reports whether any ticker is running, so the app
// loop can idle when nothing animates.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
