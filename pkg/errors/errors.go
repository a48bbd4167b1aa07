// Package errors provides structured error types for clothsim.
//
// The physics core never returns errors for numeric edge cases (zero-length
// constraints are skipped, out-of-bounds particles are clamped, repeated
// removals are no-ops). Errors exist only at the edges: configuration,
// input scripts, output formats and file handling. This package gives those
// edges one vocabulary:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages for the CLI
//   - Error wrapping with context preservation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "spacing must be positive, got %g", s)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read config %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a code, a message and, for validation failures, the name of
// the offending setting or script field.
type Error struct {
	Code    Code
	Message string
	Field   string // settings key or script field; empty when not applicable
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Invalid returns an Error naming the field that failed validation. The
// message is prefixed with the field name.
func Invalid(code Code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: field + " " + fmt.Sprintf(format, args...),
	}
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// FieldOf returns the first field name recorded anywhere in err's chain.
func FieldOf(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Field != "" {
			return e.Field
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// Exit codes returned by ExitCode.
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitUnsupported = 3
)

// ExitCode maps err to a process exit status: bad settings, scripts, formats
// and missing files are usage errors; a missing external tool is
// ExitUnsupported; everything else is a plain failure.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidScript, ErrCodeFileNotFound:
		return ExitUsage
	case ErrCodeUnsupported:
		return ExitUnsupported
	}
	return ExitFailure
}

// UserMessage returns err for display: without the code prefix, followed by
// the cause if there is one. Errors without an *Error in their chain are
// returned as-is.
func UserMessage(err error) string {
	e, ok := as(err)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
