package observable

// Listenable is the payload-erased face shared by every observable form.
// Containers and renderers that track heterogeneous properties attach
// through it without knowing the value type behind each one.
//
// The three channels keep their semantics through erasure: AddChangeListener
// appends to the ordered user list, the two slot setters replace the single
// occupant, and nil clears a slot.
type Listenable interface {
	AddChangeListener(fn func()) Subscription
	RemoveListener(sub Subscription) bool
	SetInternalChangeListener(fn func())
	SetGUIChangeListener(fn func())
}

var (
	_ Listenable = (*Observable)(nil)
	_ Listenable = (*ValueObservable[int])(nil)
	_ Listenable = (*Property[int])(nil)
	_ Listenable = (*LimitedDoubleProperty)(nil)
	_ Listenable = (*ObservableList[int])(nil)
)
