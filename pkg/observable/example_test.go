package observable_test

import (
	"fmt"
	"strings"

	"github.com/go-tabletop/tabletop/pkg/observable"
)

// This example shows the three notification channels firing in their
// fixed order: user listeners first, then the structural owner, then
// the renderer.
func ExampleProperty() {
	score := observable.NewIntProperty(0)

	score.AddListener(func(oldValue, newValue int) {
		fmt.Printf("user: %d -> %d\n", oldValue, newValue)
	})
	score.SetInternalListener(func(oldValue, newValue int) {
		fmt.Println("container: update bookkeeping")
	})
	score.SetGUIListener(func(oldValue, newValue int) {
		fmt.Println("renderer: redraw")
	})

	score.Set(21)

	// Output:
	// user: 0 -> 21
	// container: update bookkeeping
	// renderer: redraw
}

// This example shows that redundant sets still notify, and how an
// equality function opts a property out of that.
func ExampleNewPropertyWithEquality() {
	plain := observable.NewIntProperty(5)
	plain.AddListener(func(oldValue, newValue int) {
		fmt.Printf("plain: (%d, %d)\n", oldValue, newValue)
	})
	plain.Set(5)

	suppressed := observable.NewPropertyWithEquality(5, func(a, b int) bool { return a == b })
	suppressed.AddListener(func(oldValue, newValue int) {
		fmt.Printf("suppressed: (%d, %d)\n", oldValue, newValue)
	})
	suppressed.Set(5)
	suppressed.Set(6)

	// Output:
	// plain: (5, 5)
	// suppressed: (5, 6)
}

// This example shows a list dispatching once per mutation, with bulk
// operations batched into a single notification.
func ExampleObservableList() {
	hand := observable.NewObservableList[string]()

	hand.AddListener(func(oldValues, newValues []string) {
		fmt.Printf("%d -> %d cards: %s\n", len(oldValues), len(newValues), strings.Join(newValues, " "))
	})

	hand.AddAll("A♠", "K♥", "Q♦")
	hand.Remove("K♥")

	// Output:
	// 0 -> 3 cards: A♠ K♥ Q♦
	// 3 -> 2 cards: A♠ Q♦
}

// This example shows a bounded property rejecting writes before any
// state changes, so listeners never observe an invalid value.
func ExampleLimitedDoubleProperty() {
	opacity, err := observable.NewLimitedDoubleProperty(1, 0, 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := opacity.Set(1.5); err != nil {
		fmt.Println(err)
	}
	fmt.Printf("still %v\n", opacity.Value())

	// Output:
	// LimitedDoubleProperty.Set: value 1.5 out of bounds [0, 1]
	// still 1
}

// This example shows subscription handles identifying individual
// registrations, including duplicates of the same function.
func ExampleSubscription() {
	var changed observable.Observable
	count := 0
	fn := func() { count++ }

	first := changed.AddListener(fn)
	changed.AddListener(fn)

	changed.NotifyChange()
	changed.RemoveListener(first)
	changed.NotifyChange()

	fmt.Println(count)

	// Output:
	// 3
}
