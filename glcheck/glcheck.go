// Package glcheck turns the driver's sticky, poll-only error queue into
// ordinary Go errors.
//
// The driver reports faults through a separate "get error" entry point that
// returns and clears one pending code per call. A single logical operation can
// leave more than one code behind, so every check drains the queue until it
// reports no error and hands back the whole list, oldest first.
package glcheck

import (
	"fmt"
	"strings"
)

// Error is one driver fault code.
type Error uint32

// Driver fault codes. NoError is the empty-queue sentinel and is never
// returned to callers.
const (
	NoError                     Error = 0x0000
	InvalidEnum                 Error = 0x0500
	InvalidValue                Error = 0x0501
	InvalidOperation            Error = 0x0502
	StackOverflow               Error = 0x0503
	StackUnderflow              Error = 0x0504
	OutOfMemory                 Error = 0x0505
	InvalidFramebufferOperation Error = 0x0506
	ContextLost                 Error = 0x0507
)

// MaxDrain bounds a single drain. A conforming driver empties its queue in a
// handful of polls; the cap only matters for a driver that never reports
// NoError.
const MaxDrain = 256

func (e Error) String() string {
	switch e {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case StackOverflow:
		return "STACK_OVERFLOW"
	case StackUnderflow:
		return "STACK_UNDERFLOW"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case ContextLost:
		return "CONTEXT_LOST"
	default:
		return fmt.Sprintf("Error(0x%04x)", uint32(e))
	}
}

// Error implements the error interface so a single code can be matched with
// errors.Is against an Errors list.
func (e Error) Error() string {
	return "gl: " + e.String()
}

// Known reports whether e is one of the enumerated fault codes.
func (e Error) Known() bool {
	switch e {
	case InvalidEnum, InvalidValue, InvalidOperation, StackOverflow,
		StackUnderflow, OutOfMemory, InvalidFramebufferOperation, ContextLost:
		return true
	}
	return false
}

// Errors is the ordered list of codes collected by one drain. A non-nil
// Errors returned as an error always holds at least one code.
type Errors []Error

func (es Errors) Error() string {
	names := make([]string, len(es))
	for i, e := range es {
		names[i] = e.String()
	}
	return "gl: " + strings.Join(names, ", ")
}

// Unwrap exposes each code so errors.Is(err, glcheck.InvalidValue) matches
// anywhere in the list.
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Has reports whether code appears in the list.
func (es Errors) Has(code Error) bool {
	for _, e := range es {
		if e == code {
			return true
		}
	}
	return false
}

// Poller is the one driver entry point the bridge needs.
type Poller interface {
	GetError() uint32
}

// Drain polls p until it reports NoError and returns every code seen, in the
// order received. It returns nil when the queue was already empty.
func Drain(p Poller) Errors {
	var errs Errors
	for i := 0; i < MaxDrain; i++ {
		code := Error(p.GetError())
		if code == NoError {
			break
		}
		errs = append(errs, code)
	}
	return errs
}

// Result pairs a success value with the codes drained after producing it.
// An empty list yields v; otherwise v is discarded.
func Result[T any](v T, errs Errors) (T, error) {
	if len(errs) == 0 {
		return v, nil
	}
	var zero T
	return zero, errs
}

// Check drains p and folds the outcome into v. It must follow every
// state-mutating driver call.
func Check[T any](p Poller, v T) (T, error) {
	return Result(v, Drain(p))
}

// Err is Check for calls without a result value.
func Err(p Poller) error {
	if errs := Drain(p); len(errs) > 0 {
		return errs
	}
	return nil
}
