// Package observable provides the change-notification primitives that back
// every mutable field in the framework: scene and component state lives in
// properties, and containers, renderers, and application code all react to
// the same mutation through separate channels.
//
// # Notification Channels
//
// Every observable form carries three channels:
//
//   - User listeners: any number, notified in registration order.
//     Application code subscribes here.
//   - Internal listener: a single slot reserved for the structural owner
//     (typically the parent container). Assigning it replaces the previous
//     occupant without notice.
//   - GUI listener: a single slot reserved for the active renderer. Same
//     replace semantics.
//
// A mutation notifies user listeners first, then the internal listener,
// then the GUI listener. The order is a contract: structural bookkeeping
// settles before the renderer reacts, and user code only ever reads the
// exposed value, never owner bookkeeping.
//
// # Forms
//
// Observable is the payload-free form ("something changed"). For typed
// state, ValueObservable threads the previous and current value through
// every notification, Property adds value storage on top of it, and
// ObservableList is an ordered sequence that notifies once per mutation
// with pre- and post-mutation snapshots.
//
// # Failure Semantics
//
// Dispatch never recovers panics. A listener that panics aborts the rest
// of the notification pass and the panic surfaces at the mutation call
// site. Swallowing listener failures here would mask application bugs, so
// callers that need isolation must recover in their own listeners.
//
// # Thread Safety
//
// Observables are NOT thread-safe. All mutation and notification happen
// synchronously on the calling goroutine, and state must stay confined to
// the application loop. To mutate from a background goroutine, dispatch
// onto the loop first.
package observable
