package dramsim

import (
	"errors"
	"fmt"
)

// Code categorizes an Error the way callers might want to switch on,
// without string-matching Error's message. Grounded on the teacher's
// errors.go UblkErrorCode pattern, with the syscall.Errno mapping
// dropped -- this simulator never talks to a kernel.
type Code string

const (
	CodeInvalidConfig   Code = "invalid configuration"
	CodeQueueFull       Code = "queue full"
	CodeMalformedTrace  Code = "malformed trace"
	CodeUnknownStandard Code = "unknown standard"
	CodeInternal        Code = "internal error"
)

// Error is the structured error type every exported dramsim entry
// point returns on failure.
type Error struct {
	Op    string // operation that failed, e.g. "dramsim.New", "Memory.Send"
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("dramsim: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("dramsim: %s", msg)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Inner }

// Is supports errors.Is(err, &Error{Code: ...}) comparisons by Code.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// newError builds an *Error, wrapping inner if non-nil.
func newError(op string, code Code, msg string, inner error) *Error {
	return &Error{Op: op, Code: code, Msg: msg, Inner: inner}
}

// WrapError wraps inner with op, preserving its Code if inner is
// already a *dramsim.Error, otherwise classifying it CodeInternal.
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	var de *Error
	if errors.As(inner, &de) {
		return &Error{Op: op, Code: de.Code, Msg: de.Msg, Inner: de.Inner}
	}
	return &Error{Op: op, Code: CodeInternal, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is a *dramsim.Error carrying code.
func IsCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
