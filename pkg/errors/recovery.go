package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError represents an error that was created from a recovered panic.
// It includes the original panic value and stack trace information.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace contains the stack trace at the time of panic
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String provides detailed information including stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a new PanicError with the given operation context and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover is meant to be deferred by functions that call into backend code
// which may panic. It converts the panic into a *PanicError assigned to err.
// If err already holds an error, the panic is recorded as a wrapping message
// and the original error stays in the chain.
//
// Usage:
//
//	func (o *Orchestrator) runFold(...) (err error) {
//	    defer Recover(&err, "CV.fold")
//	    ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = errors.Wrapf(*err, "panic in %s: %v", operation, r)
			return
		}
		*err = NewPanicError(operation, r)
	}
}
