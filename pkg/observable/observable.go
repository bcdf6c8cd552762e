package observable

// Subscription identifies a single listener registration. Registering the
// same function twice yields two distinct subscriptions, and each is
// notified separately. The zero Subscription never matches a registration.
//
// Go functions are not comparable, so removal works through the handle
// returned at registration rather than through the function value itself.
type Subscription uint64

type entry struct {
	id Subscription
	fn func()
}

// Observable is the payload-free observable form: it carries no value and
// notifies plain "something changed" signals. The owning field mutates its
// own state first, then calls NotifyChange.
//
// The zero value is ready to use.
type Observable struct {
	entries  []entry
	internal func()
	gui      func()
	lastID   Subscription
}

// AddListener registers fn as a user listener. It does not invoke fn.
func (o *Observable) AddListener(fn func()) Subscription {
	o.lastID++
	o.entries = append(o.entries, entry{id: o.lastID, fn: fn})
	return o.lastID
}

// AddListenerAndInvoke registers fn and invokes it once immediately, so a
// late subscriber can synchronize to current state without waiting for the
// next mutation.
func (o *Observable) AddListenerAndInvoke(fn func()) Subscription {
	sub := o.AddListener(fn)
	fn()
	return sub
}

// RemoveListener removes the registration identified by sub. It reports
// whether a registration was found; removing an absent subscription is a
// normal outcome, not an error, and notifies nobody.
func (o *Observable) RemoveListener(sub Subscription) bool {
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
func (o *Observable) ClearListeners() {
	o.entries = nil
}

// ListenerCount returns the number of registered user listeners.
func (o *Observable) ListenerCount() int {
	return len(o.entries)
}

// SetInternalListener assigns the structural-owner slot, replacing any
// previous occupant without notifying it. Passing nil clears the slot.
//
// This slot is reserved for the component's direct structural owner (its
// parent container). Application code must not write it.
func (o *Observable) SetInternalListener(fn func()) {
	o.internal = fn
}

// SetInternalListenerAndInvoke assigns the structural-owner slot and
// invokes fn once immediately.
func (o *Observable) SetInternalListenerAndInvoke(fn func()) {
	o.internal = fn
	fn()
}

// SetGUIListener assigns the render slot, replacing any previous occupant
// without notifying it. Passing nil clears the slot.
//
// This slot is reserved for the active renderer. Application code must
// not write it.
func (o *Observable) SetGUIListener(fn func()) {
	o.gui = fn
}

// SetGUIListenerAndInvoke assigns the render slot and invokes fn once
// immediately.
func (o *Observable) SetGUIListenerAndInvoke(fn func()) {
	o.gui = fn
	fn()
}

// NotifyChange notifies all three channels in the fixed order: user
// listeners in registration order, then the internal listener, then the
// GUI listener. It dispatches against a snapshot taken on entry, so
// listeners registered or removed during the pass do not change the set
// notified by this pass.
func (o *Observable) NotifyChange() {
	snapshot := make([]entry, len(o.entries))
	copy(snapshot, o.entries)
	internal, gui := o.internal, o.gui

	userInvocations.Add(uint64(len(snapshot)))
	for _, e := range snapshot {
		e.fn()
	}
	if internal != nil {
		internalInvocations.Add(1)
		internal()
	}
	if gui != nil {
		guiInvocations.Add(1)
		gui()
	}
}

// NotifyInternal notifies only the structural-owner channel.
func (o *Observable) NotifyInternal() {
	if o.internal != nil {
		internalInvocations.Add(1)
		o.internal()
	}
}

// NotifyGUI notifies only the render channel.
func (o *Observable) NotifyGUI() {
	if o.gui != nil {
		guiInvocations.Add(1)
		o.gui()
	}
}

// AddChangeListener implements Listenable.
func (o *Observable) AddChangeListener(fn func()) Subscription {
	return o.AddListener(fn)
}

// SetInternalChangeListener implements Listenable.
func (o *Observable) SetInternalChangeListener(fn func()) {
	o.SetInternalListener(fn)
}

// SetGUIChangeListener implements Listenable.
func (o *Observable) SetGUIChangeListener(fn func()) {
	o.SetGUIListener(fn)
}
