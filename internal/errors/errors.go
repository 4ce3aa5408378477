// Package errors provides coded domain errors for reelpulse.
//
// Usage:
//
//	if token == "" {
//	    return errors.MissingCredential("TMDB_V4_TOKEN is not set")
//	}
//
//	if errors.Is(err, errors.ErrMissingCredential) {
//	    // print the setup hint and exit
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeMissingCredential Code = "MISSING_CREDENTIAL"
	CodeValidation        Code = "VALIDATION"
	CodeUpstream          Code = "UPSTREAM"
	CodeInternal          Code = "INTERNAL"
)

// ExitStatus returns the process exit status for an error code.
func (c Code) ExitStatus() int {
	switch c {
	case CodeMissingCredential, CodeValidation:
		return 2
	default:
		return 1
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrMissingCredential = &Error{Code: CodeMissingCredential, Message: "missing credential"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUpstream          = &Error{Code: CodeUpstream, Message: "upstream error"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// MissingCredential creates a missing credential error.
func MissingCredential(msg string) *Error {
	return &Error{Code: CodeMissingCredential, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// ExitStatus returns the exit status for err. Uncoded errors map to 1.
func ExitStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.ExitStatus()
	}
	return 1
}
