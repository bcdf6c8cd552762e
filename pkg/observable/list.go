package observable

import "reflect"

// ObservableList is a mutable ordered sequence built over the value
// notification machinery, with the payload generalized to the whole
// sequence: listeners receive the pre- and post-mutation snapshots, never
// a per-element diff. Every mutating method dispatches exactly once, so a
// bulk operation notifies once for the whole batch and listeners only
// ever observe settled state.
//
// Element equality, used by Remove, IndexOf, and Contains, defaults to
// reflect.DeepEqual and is configurable per list.
type ObservableList[T any] struct {
	items  []T
	equals func(a, b T) bool
	obs    ValueObservable[[]T]
}

// NewObservableList returns a list holding a copy of items.
func NewObservableList[T any](items ...T) *ObservableList[T] {
	return NewObservableListWithEquality(defaultEquals[T], items...)
}

// NewObservableListWithEquality returns a list holding a copy of items,
// using equals for element comparison.
func NewObservableListWithEquality[T any](equals func(a, b T) bool, items ...T) *ObservableList[T] {
	l := &ObservableList[T]{equals: equals}
	l.items = append(l.items, items...)
	return l
}

func defaultEquals[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// commit is the single funnel every mutation goes through: snapshot,
// mutate, dispatch once with both snapshots.
func (l *ObservableList[T]) commit(mutate func()) {
	before := l.snapshot()
	mutate()
	l.obs.NotifyChange(before, l.snapshot())
}

func (l *ObservableList[T]) snapshot() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of elements.
func (l *ObservableList[T]) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no elements.
func (l *ObservableList[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// Get returns the element at index, or a RangeError when index is outside
// [0, Len).
func (l *ObservableList[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, &RangeError{Op: "ObservableList.Get", Index: index, Size: len(l.items)}
	}
	return l.items[index], nil
}

// Values returns a copy of the current sequence. Mutating the returned
// slice does not affect the list.
func (l *ObservableList[T]) Values() []T {
	return l.snapshot()
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *ObservableList[T]) IndexOf(v T) int {
	for i, item := range l.items {
		if l.equals(item, v) {
			return i
		}
	}
	return -1
}

// Contains reports whether the list holds an element equal to v.
func (l *ObservableList[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

// ForEach invokes fn for each element in order. fn must not mutate the
// list.
func (l *ObservableList[T]) ForEach(fn func(index int, value T)) {
	for i, item := range l.items {
		fn(i, item)
	}
}

// Add appends v and notifies once.
func (l *ObservableList[T]) Add(v T) {
	l.commit(func() {
		l.items = append(l.items, v)
	})
}

// AddAll appends all vs and notifies once for the whole batch. An empty
// batch changes nothing and notifies nobody.
func (l *ObservableList[T]) AddAll(vs ...T) {
	if len(vs) == 0 {
		return
	}
	l.commit(func() {
		l.items = append(l.items, vs...)
	})
}

// Insert places v at index, shifting later elements right, and notifies
// once. index may equal Len to append. An out-of-range index returns a
// RangeError with no mutation and no notification.
func (l *ObservableList[T]) Insert(index int, v T) error {
	if index < 0 || index > len(l.items) {
		return &RangeError{Op: "ObservableList.Insert", Index: index, Size: len(l.items)}
	}
	l.commit(func() {
		l.items = append(l.items, v)
		copy(l.items[index+1:], l.items[index:])
		l.items[index] = v
	})
	return nil
}

// Set replaces the element at index and notifies once. An out-of-range
// index returns a RangeError with no mutation and no notification.
func (l *ObservableList[T]) Set(index int, v T) error {
	if index < 0 || index >= len(l.items) {
		return &RangeError{Op: "ObservableList.Set", Index: index, Size: len(l.items)}
	}
	l.commit(func() {
		l.items[index] = v
	})
	return nil
}

// RemoveAt removes and returns the element at index, notifying once. An
// out-of-range index returns a RangeError with no mutation and no
// notification.
func (l *ObservableList[T]) RemoveAt(index int) (T, error) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, &RangeError{Op: "ObservableList.RemoveAt", Index: index, Size: len(l.items)}
	}
	removed := l.items[index]
	l.commit(func() {
		l.items = append(l.items[:index], l.items[index+1:]...)
	})
	return removed, nil
}

// Remove removes the first element equal to v and notifies once. A
// missing element is a normal outcome: Remove returns false, mutates
// nothing, and notifies nobody.
func (l *ObservableList[T]) Remove(v T) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.commit(func() {
		l.items = append(l.items[:i], l.items[i+1:]...)
	})
	return true
}

// Clear removes all elements and notifies once. Clearing an empty list
// changes nothing and notifies nobody.
func (l *ObservableList[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.commit(func() {
		l.items = nil
	})
}

// AddListener registers fn as a user listener receiving pre- and
// post-mutation snapshots. It does not invoke fn.
func (l *ObservableList[T]) AddListener(fn func(oldValues, newValues []T)) Subscription {
	return l.obs.AddListener(fn)
}

// AddListenerAndInvoke registers fn and invokes it once immediately with
// the current snapshot as both old and new.
func (l *ObservableList[T]) AddListenerAndInvoke(fn func(oldValues, newValues []T)) Subscription {
	return l.obs.AddListenerAndInvoke(l.snapshot(), fn)
}

// RemoveListener removes the registration identified by sub and reports
// whether it was found.
func (l *ObservableList[T]) RemoveListener(sub Subscription) bool {
	return l.obs.RemoveListener(sub)
}

// ClearListeners removes all user listeners. The internal and GUI slots
// are untouched.
func (l *ObservableList[T]) ClearListeners() {
	l.obs.ClearListeners()
}

// ListenerCount returns the number of registered user listeners.
func (l *ObservableList[T]) ListenerCount() int {
	return l.obs.ListenerCount()
}

// SetInternalListener assigns the structural-owner slot. Reserved for the
// direct structural owner; nil clears.
func (l *ObservableList[T]) SetInternalListener(fn func(oldValues, newValues []T)) {
	l.obs.SetInternalListener(fn)
}

// SetInternalListenerAndInvoke assigns the structural-owner slot and
// invokes fn once immediately with the current snapshot as both old and
// new.
func (l *ObservableList[T]) SetInternalListenerAndInvoke(fn func(oldValues, newValues []T)) {
	l.obs.SetInternalListenerAndInvoke(l.snapshot(), fn)
}

// SetGUIListener assigns the render slot. Reserved for the active
// renderer; nil clears.
func (l *ObservableList[T]) SetGUIListener(fn func(oldValues, newValues []T)) {
	l.obs.SetGUIListener(fn)
}

// SetGUIListenerAndInvoke assigns the render slot and invokes fn once
// immediately with the current snapshot as both old and new.
func (l *ObservableList[T]) SetGUIListenerAndInvoke(fn func(oldValues, newValues []T)) {
	l.obs.SetGUIListenerAndInvoke(l.snapshot(), fn)
}

// AddChangeListener implements Listenable.
func (l *ObservableList[T]) AddChangeListener(fn func()) Subscription {
	return l.obs.AddChangeListener(fn)
}

// SetInternalChangeListener implements Listenable.
func (l *ObservableList[T]) SetInternalChangeListener(fn func()) {
	l.obs.SetInternalChangeListener(fn)
}

// SetGUIChangeListener implements Listenable.
func (l *ObservableList[T]) SetGUIChangeListener(fn func()) {
	l.obs.SetGUIChangeListener(fn)
}
