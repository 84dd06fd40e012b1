// Package errors provides structured error types for devbuilds.
//
// Every fatal condition of a catalog or tag run carries a machine-readable
// [Code] so that callers (and tests) can tell a malformed release tag from a
// failed subprocess without matching on message text.
//
// # Error Codes
//
//   - MALFORMED_*: published data that does not follow the tag conventions
//   - INVALID_*: bad input from configuration, the environment or a file
//   - COMMAND_FAILED, NETWORK_ERROR, REPOSITORY_ERROR: external
//     collaborators (subprocesses, the hosting API, a git repository) failed
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedTag, "failed to parse %q", tag)
//	if errors.Is(err, errors.ErrCodeMalformedTag) {
//	    // publishing bug upstream
//	}
//
//	err := errors.Wrap(errors.ErrCodeCommand, origErr, "list releases")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Release data errors
	ErrCodeMalformedTag     Code = "MALFORMED_TAG"
	ErrCodeUnknownArtifact  Code = "UNKNOWN_ARTIFACT"
	ErrCodeMalformedVersion Code = "MALFORMED_VERSION"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidEvent   Code = "INVALID_EVENT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// External collaborator errors
	ErrCodeCommand    Code = "COMMAND_FAILED"
	ErrCodeNetwork    Code = "NETWORK_ERROR"
	ErrCodeRepository Code = "REPOSITORY_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
