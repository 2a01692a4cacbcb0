// Package errtax implements the error taxonomy of spec.md §7: a small set of
// typed errors (Error, discriminated by Code) for local, boundary-level
// failures, plus a Format helper modelled on the teacher's internal/errors
// package. The advisory vocabulary attached to otherwise-successful results
// lives in internal/models (Advisory, AdvisoryKind), not here.
package errtax

import (
	"errors"
	"fmt"
)

// Code discriminates a BadInput-class error's specific cause.
type Code string

const (
	CodeBadTime         Code = "BadTime"
	CodeBadDate         Code = "BadDate"
	CodeBadInput        Code = "BadInput"
	CodePersistFailed   Code = "PersistFailed"
)

// Error is a structured local failure with a field path, matching spec.md
// §7's "BadInput" taxonomy entry.
type Error struct {
	Code      Code
	Field     string
	Message   string
	Wrapped   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is supports errors.Is(err, errtax.New(errtax.CodeBadTime, ""))-style checks
// by comparing codes when the target is also an *Error.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New builds a field-less Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a field-less Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithField attaches a field path, matching §7's "structured error with a
// field path" requirement for BadInput.
func (e *Error) WithField(field string) *Error {
	clone := *e
	clone.Field = field
	return &clone
}

// Wrap wraps an underlying error as a BadInput-class Error.
func Wrap(code Code, field string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Field: field, Message: err.Error(), Wrapped: err}
}

// Format renders an error with a consistent "Error: " prefix, matching the
// teacher's internal/errors.Format.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}
