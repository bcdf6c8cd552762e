package component

import "github.com/go-tabletop/tabletop/pkg/observable"

// ProgressBar shows completion of a bounded quantity. Progress is
// validated to [0, 1]; out-of-range writes are rejected before any state
// changes, so observers never see an invalid fraction.
type ProgressBar struct {
	ComponentBase
	Progress *observable.LimitedDoubleProperty
}

// NewProgressBar returns a bar at zero progress.
func NewProgressBar() *ProgressBar {
	progress, err := observable.NewLimitedDoubleProperty(0, 0, 1)
	if err != nil {
		panic(err)
	}
	p := &ProgressBar{
		ComponentBase: NewComponentBase("progressbar"),
		Progress:      progress,
	}
	p.Resize(120, 12)
	return p
}

// Properties enumerates the shared refs plus the progress fraction.
func (p *ProgressBar) Properties() []PropertyRef {
	return append(p.ComponentBase.Properties(),
		PropertyRef{Name: "progress", Source: p.Progress, Value: func() any { return p.Progress.Value() }},
	)
}
