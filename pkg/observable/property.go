package observable

// Property owns a value of type T and dispatches through an embedded
// ValueObservable whenever the value is replaced. Set stores first, then
// notifies with the old and new value; listeners therefore always read
// settled state.
//
// By default Set does not compare values: setting 5 over 5 still notifies
// with (5, 5). A property built with NewPropertyWithEquality suppresses
// the whole pass, including the store, when the equality function reports
// the incoming value equal to the current one.
type Property[T any] struct {
	value  T
	equals func(a, b T) bool
	obs    ValueObservable[T]
}

// NewProperty returns a property initialized to initial. No notification
// is dispatched for the initial value.
func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

// NewPropertyWithEquality returns a property whose Set is a complete no-op
// when equals reports the incoming value equal to the current one.
func NewPropertyWithEquality[T any](initial T, equals func(a, b T) bool) *Property[T] {
	return &Property[T]{value: initial, equals: equals}
}

// Value returns the current value.
func (p *Property[T]) Value() T {
	return p.value
}

// Set stores v and notifies all channels with the previous and new value.
// With an equality function configured, an equal v leaves the property
// untouched and notifies nobody.
func (p *Property[T]) Set(v T) {
	if p.equals != nil && p.equals(p.value, v) {
		return
	}
	old := p.value
	p.value = v
	p.obs.NotifyChange(old, v)
}

// SetSilent stores v without dispatching. Used by owners that need echo
// suppression, such as a two-way binding writing back a value it just
// observed.
func (p *Property[T]) SetSilent(v T) {
	p.value = v
}

// Notify re-dispatches the current value as both old and new without
// storing anything. Useful after in-place mutation of a composite value
// the property holds by reference.
func (p *Property[T]) Notify() {
	p.obs.NotifyChange(p.value, p.value)
}

// AddListener registers fn as a user listener. It does not invoke fn.
func (p *Property[T]) AddListener(fn func(oldValue, newValue T)) Subscription {
	return p.obs.AddListener(fn)
}

// AddListenerAndInvoke registers fn and invokes it once immediately with
// the current value as both old and new.
func (p *Property[T]) AddListenerAndInvoke(fn func(oldValue, newValue T)) Subscription {
	return p.obs.AddListenerAndInvoke(p.value, fn)
}

// RemoveListener removes the registration identified by sub and reports
// whether it was found.
func (p *Property[T]) RemoveListener(sub Subscription) bool {
	return p.obs.RemoveListener(sub)
}

// ClearListeners removes all user listeners. The internal and GUI slots
// are untouched.
func (p *Property[T]) ClearListeners() {
	p.obs.ClearListeners()
}

// ListenerCount returns the number of registered user listeners.
func (p *Property[T]) ListenerCount() int {
	return p.obs.ListenerCount()
}

// SetInternalListener assigns the structural-owner slot. Reserved for the
// direct structural owner; nil clears.
func (p *Property[T]) SetInternalListener(fn func(oldValue, newValue T)) {
	p.obs.SetInternalListener(fn)
}

// SetInternalListenerAndInvoke assigns the structural-owner slot and
// invokes fn once immediately with the current value as both old and new.
func (p *Property[T]) SetInternalListenerAndInvoke(fn func(oldValue, newValue T)) {
	p.obs.SetInternalListenerAndInvoke(p.value, fn)
}

// SetGUIListener assigns the render slot. Reserved for the active
// renderer; nil clears.
func (p *Property[T]) SetGUIListener(fn func(oldValue, newValue T)) {
	p.obs.SetGUIListener(fn)
}

// SetGUIListenerAndInvoke assigns the render slot and invokes fn once
// immediately with the current value as both old and new.
func (p *Property[T]) SetGUIListenerAndInvoke(fn func(oldValue, newValue T)) {
	p.obs.SetGUIListenerAndInvoke(p.value, fn)
}

// AddChangeListener implements Listenable.
func (p *Property[T]) AddChangeListener(fn func()) Subscription {
	return p.obs.AddChangeListener(fn)
}

// SetInternalChangeListener implements Listenable.
func (p *Property[T]) SetInternalChangeListener(fn func()) {
	p.obs.SetInternalChangeListener(fn)
}

// SetGUIChangeListener implements Listenable.
func (p *Property[T]) SetGUIChangeListener(fn func()) {
	p.obs.SetGUIChangeListener(fn)
}

// The concrete property forms components declare their state with.
type (
	BooleanProperty = Property[bool]
	IntProperty     = Property[int]
	DoubleProperty  = Property[float64]
	StringProperty  = Property[string]
)

func NewBooleanProperty(initial bool) *BooleanProperty { return NewProperty(initial) }

func NewIntProperty(initial int) *IntProperty { return NewProperty(initial) }

func NewDoubleProperty(initial float64) *DoubleProperty { return NewProperty(initial) }

func NewStringProperty(initial string) *StringProperty { return NewProperty(initial) }
