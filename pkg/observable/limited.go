package observable

// LimitedDoubleProperty is a float64 property constrained to a closed
// interval. Every write is validated before any state changes, so the
// stored value is valid at all times and listeners never observe an
// out-of-bounds value.
//
// The inner property stays unexported: exposing it would open an
// unvalidated write path around the bounds check.
type LimitedDoubleProperty struct {
	lower float64
	upper float64
	inner Property[float64]
}

// NewLimitedDoubleProperty returns a property bounded to [lower, upper],
// initialized to initial. It fails with a BoundsError when initial lies
// outside the interval; inverted bounds reject every value.
func NewLimitedDoubleProperty(initial, lower, upper float64) (*LimitedDoubleProperty, error) {
	if initial < lower || initial > upper {
		return nil, &BoundsError{Op: "NewLimitedDoubleProperty", Value: initial, Lower: lower, Upper: upper}
	}
	p := &LimitedDoubleProperty{lower: lower, upper: upper}
	p.inner.value = initial
	return p, nil
}

// Value returns the current value, always within [Lower, Upper].
func (p *LimitedDoubleProperty) Value() float64 {
	return p.inner.Value()
}

// Lower returns the inclusive lower bound.
func (p *LimitedDoubleProperty) Lower() float64 {
	return p.lower
}

// Upper returns the inclusive upper bound.
func (p *LimitedDoubleProperty) Upper() float64 {
	return p.upper
}

// Set stores v and notifies all channels, or fails with a BoundsError
// when v lies outside the interval. On failure the stored value is
// unchanged and nobody is notified.
func (p *LimitedDoubleProperty) Set(v float64) error {
	if v < p.lower || v > p.upper {
		return &BoundsError{Op: "LimitedDoubleProperty.Set", Value: v, Lower: p.lower, Upper: p.upper}
	}
	p.inner.Set(v)
	return nil
}

// SetSilent stores v without dispatching, under the same bounds check
// as Set.
func (p *LimitedDoubleProperty) SetSilent(v float64) error {
	if v < p.lower || v > p.upper {
		return &BoundsError{Op: "LimitedDoubleProperty.SetSilent", Value: v, Lower: p.lower, Upper: p.upper}
	}
	p.inner.SetSilent(v)
	return nil
}

// AddListener registers fn as a user listener. It does not invoke fn.
func (p *LimitedDoubleProperty) AddListener(fn func(oldValue, newValue float64)) Subscription {
	return p.inner.AddListener(fn)
}

// AddListenerAndInvoke registers fn and invokes it once immediately with
// the current value as both old and new.
func (p *LimitedDoubleProperty) AddListenerAndInvoke(fn func(oldValue, newValue float64)) Subscription {
	return p.inner.AddListenerAndInvoke(fn)
}

// RemoveListener removes the registration identified by sub and reports
// whether it was found.
func (p *LimitedDoubleProperty) RemoveListener(sub Subscription) bool {
	return p.inner.RemoveListener(sub)
}

// ClearListeners removes all user listeners. The internal and GUI slots
// are untouched.
func (p *LimitedDoubleProperty) ClearListeners() {
	p.inner.ClearListeners()
}

// ListenerCount returns the number of registered user listeners.
func (p *LimitedDoubleProperty) ListenerCount() int {
	return p.inner.ListenerCount()
}

// SetInternalListener assigns the structural-owner slot. Reserved for the
// direct structural owner; nil clears.
func (p *LimitedDoubleProperty) SetInternalListener(fn func(oldValue, newValue float64)) {
	p.inner.SetInternalListener(fn)
}

// SetInternalListenerAndInvoke assigns the structural-owner slot and
// invokes fn once immediately with the current value as both old and new.
func (p *LimitedDoubleProperty) SetInternalListenerAndInvoke(fn func(oldValue, newValue float64)) {
	p.inner.SetInternalListenerAndInvoke(fn)
}

// SetGUIListener assigns the render slot. Reserved for the active
// renderer; nil clears.
func (p *LimitedDoubleProperty) SetGUIListener(fn func(oldValue, newValue float64)) {
	p.inner.SetGUIListener(fn)
}

// SetGUIListenerAndInvoke assigns the render slot and invokes fn once
// immediately with the current value as both old and new.
func (p *LimitedDoubleProperty) SetGUIListenerAndInvoke(fn func(oldValue, newValue float64)) {
	p.inner.SetGUIListenerAndInvoke(fn)
}

// AddChangeListener implements Listenable.
func (p *LimitedDoubleProperty) AddChangeListener(fn func()) Subscription {
	return p.inner.AddChangeListener(fn)
}

// SetInternalChangeListener implements Listenable.
func (p *LimitedDoubleProperty) SetInternalChangeListener(fn func()) {
	p.inner.SetInternalChangeListener(fn)
}

// SetGUIChangeListener implements Listenable.
func (p *LimitedDoubleProperty) SetGUIChangeListener(fn func()) {
	p.inner.SetGUIChangeListener(fn)
}
