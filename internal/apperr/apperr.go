// Package apperr classifies errors from the domain and persistence layers
// into the structured failure value returned across the request boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a failure category understood by callers of the request surface.
type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION_ERROR"
	CodeDatabase   Code = "DATABASE_ERROR"
	CodeFileIO     Code = "FILE_IO_ERROR"
)

// Sentinel errors wrapped by domain-specific errors so that classification
// does not need to know every package.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrFileIO     = errors.New("file i/o failed")
)

// Error is the structured failure {code, message, details}.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Expected reports whether the failure is a user-correctable condition
// (missing entity or bad input) rather than a system fault.
func (e *Error) Expected() bool {
	return e.Code == CodeNotFound || e.Code == CodeValidation
}

// Kind is a domain error that carries its classification.
type Kind struct {
	sentinel error
	msg      string
}

// NotFound declares a domain "not found" error.
func NotFound(msg string) *Kind { return &Kind{sentinel: ErrNotFound, msg: msg} }

// Invalid declares a domain validation error.
func Invalid(msg string) *Kind { return &Kind{sentinel: ErrValidation, msg: msg} }

// FileIO declares a document storage error.
func FileIO(msg string) *Kind { return &Kind{sentinel: ErrFileIO, msg: msg} }

func (k *Kind) Error() string { return k.msg }

func (k *Kind) Unwrap() error { return k.sentinel }

// Violations maps a field name to the rule it broke.
type Violations map[string]string

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// ValidationError wraps field violations so they surface as details.
type ValidationError struct {
	Fields Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Check returns a *ValidationError when v is not empty.
func (v Violations) Check() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

// From classifies err. It returns nil for a nil error and passes an existing
// *Error through untouched.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &Error{Code: CodeValidation, Message: "invalid input", Details: vErr.Fields, cause: err}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return &Error{Code: CodeNotFound, Message: message(err), cause: err}
	case errors.Is(err, ErrValidation):
		return &Error{Code: CodeValidation, Message: message(err), cause: err}
	case errors.Is(err, ErrFileIO):
		return &Error{Code: CodeFileIO, Message: message(err), cause: err}
	default:
		return &Error{Code: CodeDatabase, Message: "unexpected persistence failure", Details: err.Error(), cause: err}
	}
}

// message prefers the innermost domain Kind message over wrapping context.
func message(err error) string {
	var k *Kind
	if errors.As(err, &k) {
		return k.msg
	}
	return err.Error()
}
