package observable

import "sync/atomic"

// Package-wide dispatch counters, one per channel. They count listener
// invocations rather than notification passes, so the user figure
// reflects fan-out. Counters are atomic so a diagnostics goroutine can
// read them while the owning goroutine dispatches.
var (
	userInvocations     atomic.Uint64
	internalInvocations atomic.Uint64
	guiInvocations      atomic.Uint64
)

// Stats is a snapshot of dispatch activity since process start.
type Stats struct {
	// UserInvocations is the number of user-listener calls delivered.
	UserInvocations uint64
	// InternalInvocations is the number of internal-slot calls delivered.
	InternalInvocations uint64
	// GUIInvocations is the number of GUI-slot calls delivered.
	GUIInvocations uint64
}

// ReadStats returns the current dispatch counters. Counters only grow;
// callers that want rates keep their own previous snapshot.
func ReadStats() Stats {
	return Stats{
		UserInvocations:     userInvocations.Load(),
		InternalInvocations: internalInvocations.Load(),
		GUIInvocations:      guiInvocations.Load(),
	}
}
