// Package errors provides structured error types for forgeboard.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the editor and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into four groups that mirror how the dashboard reacts to them:
//   - Model invariants (DUPLICATE_KEY, UNKNOWN_WIDGET, INVALID_TIER): recovered
//     locally, the layout keeps rendering
//   - Decode failures (INVALID_SHARE_TOKEN): the import is refused
//   - Persistence failures (STORAGE_ERROR): reported, in-memory state is kept
//   - Name collisions (DUPLICATE_NAME): block until the caller confirms
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateKey, "widget %q already placed", key)
//	if errors.Is(err, errors.ErrCodeDuplicateKey) {
//	    // ignore, the widget is already on the dashboard
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save settings for %s", user)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout model errors
	ErrCodeDuplicateKey  Code = "DUPLICATE_KEY"
	ErrCodeUnknownWidget Code = "UNKNOWN_WIDGET"
	ErrCodeInvalidTier   Code = "INVALID_TIER"

	// Share token errors
	ErrCodeInvalidShareToken Code = "INVALID_SHARE_TOKEN"

	// Snapshot errors
	ErrCodeDuplicateName Code = "DUPLICATE_NAME"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeReadOnly      Code = "READ_ONLY"
	ErrCodeNotFound      Code = "NOT_FOUND"

	// Input and configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Persistence errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err is a model invariant violation that callers
// are expected to absorb as a no-op rather than surface to the user.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateKey, ErrCodeUnknownWidget, ErrCodeInvalidTier:
		return true
	}
	return false
}
