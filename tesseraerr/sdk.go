// Package tesseraerr provides the structured error type used throughout the
// Tessera core. It is modeled on the "one SDKError type, compared with
// errors.Is, sentinels wrapped with context" pattern used across this
// codebase's crypto and storage layers.
package tesseraerr

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure for programmatic handling.
type ErrorCode string

// Error is a structured error carrying a stable code, a human-readable
// message, and an optional wrapped cause.
//
// Usage pattern:
//  1. Compare with errors.Is(err, tesseraerr.ErrSomething), never by string.
//  2. Add call-specific context with .Wrap(cause) or by cloning and setting
//     Msg; never construct ad hoc errors.Error() out of this package for a
//     condition that already has a sentinel.
type Error struct {
	Code    ErrorCode
	Msg     string
	Wrapped error
}

// New creates an Error. Prefer wrapping a predefined sentinel over calling
// this directly.
func New(code ErrorCode, msg string, wrapped error) *Error {
	return &Error{Code: code, Msg: msg, Wrapped: wrapped}
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
}

// Unwrap enables errors.Is/errors.As traversal through the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Wrap returns a new Error with the same code and message, wrapping cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Msg: e.Msg, Wrapped: cause}
}

// WithMsg returns a copy of e with Msg replaced, preserving Code and Wrapped.
func (e *Error) WithMsg(msg string) *Error {
	return &Error{Code: e.Code, Msg: msg, Wrapped: e.Wrapped}
}

// Clone returns a shallow copy, useful for customizing Msg without mutating
// a shared sentinel.
func (e *Error) Clone() *Error {
	return &Error{Code: e.Code, Msg: e.Msg, Wrapped: e.Wrapped}
}

// Is implements error-code equality for errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}
