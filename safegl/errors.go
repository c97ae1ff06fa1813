package safegl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/richinsley/glguard/caps"
	"github.com/richinsley/glguard/glcheck"
)

// Caller logic errors. They are detected before any driver call and never
// touch the driver's error queue.
var (
	ErrInvalidCount      = errors.New("safegl: count must be at least 1")
	ErrDeleted           = errors.New("safegl: handle does not own a driver object")
	ErrNotBound          = errors.New("safegl: buffer is not bound to its target")
	ErrOutOfRange        = errors.New("safegl: range exceeds buffer contents")
	ErrInvalidArity      = errors.New("safegl: vertex arity must be between 1 and 4")
	ErrComponentMismatch = errors.New("safegl: value count is not a multiple of the component count")
	ErrStaleLocation     = errors.New("safegl: uniform location is stale")
	ErrStaleProgram      = errors.New("safegl: program was relinked or deleted")
	ErrProgramNotCurrent = errors.New("safegl: program is not current")
)

// CompileError carries the compiler's info log for a shader that failed to
// compile, together with any driver errors drained by the same check.
type CompileError struct {
	Stage  caps.StageKind
	Log    string
	Driver glcheck.Errors
}

func (e *CompileError) Error() string {
	return diagnostic(fmt.Sprintf("safegl: %s shader failed to compile", e.Stage), e.Log, e.Driver)
}

func (e *CompileError) Unwrap() error {
	if len(e.Driver) == 0 {
		return nil
	}
	return e.Driver
}

// LinkError carries the linker's info log for a program that failed to link.
type LinkError struct {
	Log    string
	Driver glcheck.Errors
}

func (e *LinkError) Error() string {
	return diagnostic("safegl: program failed to link", e.Log, e.Driver)
}

func (e *LinkError) Unwrap() error {
	if len(e.Driver) == 0 {
		return nil
	}
	return e.Driver
}

func diagnostic(head, log string, errs glcheck.Errors) string {
	var b strings.Builder
	b.WriteString(head)
	if log = strings.TrimSpace(log); log != "" {
		b.WriteString(": ")
		b.WriteString(log)
	}
	if len(errs) > 0 {
		b.WriteString(" (")
		b.WriteString(errs.Error())
		b.WriteString(")")
	}
	return b.String()
}
