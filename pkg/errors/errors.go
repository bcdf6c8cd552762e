// Package errors provides structured error handling for the framework
// edges: configuration, scene management, animation, and the diagnostics
// server. Observable listener failures are deliberately not routed here;
// they propagate to the mutation call site uncaught.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or validation error.
	KindConfig
	// KindScene indicates a scene or component tree error.
	KindScene
	// KindAnimation indicates an animation setup or clock error.
	KindAnimation
	// KindServe indicates a diagnostics server error.
	KindServe
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScene:
		return "scene"
	case KindAnimation:
		return "animation"
	case KindServe:
		return "serve"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// FrameworkError represents a structured error at a framework boundary.
type FrameworkError struct {
	// Op is the operation that failed (e.g., "config.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameworkError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameworkError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "demo.Frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FrameworkError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
