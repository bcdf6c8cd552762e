package observable

type valueEntry[T any] struct {
	id Subscription
	fn func(oldValue, newValue T)
}

// ValueObservable is the typed observable form: every notification carries
// the previous and current value, so a listener can tell a true transition
// from a redundant re-set. The machinery itself stores no value; the owner
// mutates its own state first and then calls NotifyChange with both values.
// Property builds value storage on top of this.
//
// Dispatch never compares oldValue and newValue. Whether to suppress
// redundant notifications is the owner's choice, made before calling in.
//
// The zero value is ready to use.
type ValueObservable[T any] struct {
	entries  []valueEntry[T]
	internal func(oldValue, newValue T)
	gui      func(oldValue, newValue T)
	lastID   Subscription
}

// AddListener registers fn as a user listener. It does not invoke fn.
func (o *ValueObservable[T]) AddListener(fn func(oldValue, newValue T)) Subscription {
	o.lastID++
	o.entries = append(o.entries, valueEntry[T]{id: o.lastID, fn: fn})
	return o.lastID
}

// AddListenerAndInvoke registers fn and invokes it once immediately with
// (initial, initial). The caller seeds the old value explicitly rather
// than the machinery assuming it equals current state.
func (o *ValueObservable[T]) AddListenerAndInvoke(initial T, fn func(oldValue, newValue T)) Subscription {
	sub := o.AddListener(fn)
	fn(initial, initial)
	return sub
}

// RemoveListener removes the registration identified by sub. It reports
// whether a registration was found; removing an absent subscription is a
// normal outcome, not an error, and notifies nobody.
func (o *ValueObservable[T]) RemoveListener(sub Subscription) bool {
	for i, e := range o.entries {
		if e.id == sub {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ClearListeners removes all user listeners. The internal and GUI slots
// are untouched.
func (o *ValueObservable[T]) ClearListeners() {
	o.entries = nil
}

// ListenerCount returns the number of registered user listeners.
func (o *ValueObservable[T]) ListenerCount() int {
	return len(o.entries)
}

// SetInternalListener assigns the structural-owner slot, replacing any
// previous occupant without notifying it. Passing nil clears the slot.
// Reserved for the direct structural owner.
func (o *ValueObservable[T]) SetInternalListener(fn func(oldValue, newValue T)) {
	o.internal = fn
}

// SetInternalListenerAndInvoke assigns the structural-owner slot and
// invokes fn once immediately with (initial, initial).
func (o *ValueObservable[T]) SetInternalListenerAndInvoke(initial T, fn func(oldValue, newValue T)) {
	o.internal = fn
	fn(initial, initial)
}

// SetGUIListener assigns the render slot, replacing any previous occupant
// without notifying it. Passing nil clears the slot. Reserved for the
// active renderer.
func (o *ValueObservable[T]) SetGUIListener(fn func(oldValue, newValue T)) {
	o.gui = fn
}

// SetGUIListenerAndInvoke assigns the render slot and invokes fn once
// immediately with (initial, initial).
func (o *ValueObservable[T]) SetGUIListenerAndInvoke(initial T, fn func(oldValue, newValue T)) {
	o.gui = fn
	fn(initial, initial)
}

// NotifyChange notifies all three channels in the fixed order: user
// listeners in registration order, then the internal listener, then the
// GUI listener, each with (oldValue, newValue). It dispatches against a
// snapshot taken on entry, so listeners registered or removed during the
// pass do not change the set notified by this pass.
func (o *ValueObservable[T]) NotifyChange(oldValue, newValue T) {
	snapshot := make([]valueEntry[T], len(o.entries))
	copy(snapshot, o.entries)
	internal, gui := o.internal, o.gui

	userInvocations.Add(uint64(len(snapshot)))
	for _, e := range snapshot {
		e.fn(oldValue, newValue)
	}
	if internal != nil {
		internalInvocations.Add(1)
		internal(oldValue, newValue)
	}
	if gui != nil {
		guiInvocations.Add(1)
		gui(oldValue, newValue)
	}
}

// NotifyInternal notifies only the structural-owner channel.
func (o *ValueObservable[T]) NotifyInternal(oldValue, newValue T) {
	if o.internal != nil {
		internalInvocations.Add(1)
		o.internal(oldValue, newValue)
	}
}

// NotifyGUI notifies only the render channel.
func (o *ValueObservable[T]) NotifyGUI(oldValue, newValue T) {
	if o.gui != nil {
		guiInvocations.Add(1)
		o.gui(oldValue, newValue)
	}
}

// AddChangeListener implements Listenable by discarding the payload.
func (o *ValueObservable[T]) AddChangeListener(fn func()) Subscription {
	return o.AddListener(func(T, T) { fn() })
}

// SetInternalChangeListener implements Listenable by discarding the
// payload. Passing nil clears the slot.
func (o *ValueObservable[T]) SetInternalChangeListener(fn func()) {
	if fn == nil {
		o.internal = nil
		return
	}
	o.SetInternalListener(func(T, T) { fn() })
}

// SetGUIChangeListener implements Listenable by discarding the payload.
// Passing nil clears the slot.
func (o *ValueObservable[T]) SetGUIChangeListener(fn func()) {
	if fn == nil {
		o.gui = nil
		return
	}
	o.SetGUIListener(func(T, T) { fn() })
}
