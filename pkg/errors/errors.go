// Package errors provides structured error types for repo-activity.
//
// Every failure of a commit lookup is reported as an [*Error] carrying one of
// four codes, so callers on every surface (CLI, HTTP, MCP) can classify a
// failure without parsing its message:
//
//   - INVALID_ARGUMENT: the repository identifier failed validation; no
//     request was sent
//   - TRANSPORT_ERROR: the request could not be built or no response arrived
//   - HTTP_ERROR: the API answered with a non-2xx status
//   - UNEXPECTED_FORMAT: the response body did not have the expected shape
//
// The message of an [*Error] is meant to be shown to users as-is.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "Invalid Argument: %s", reason)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "request to %s failed", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the lookup failure taxonomy.
const (
	// ErrCodeInvalidArgument is a local precondition failure, caught before any network call.
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"

	// ErrCodeTransport covers requests that could not be sent or got no response.
	ErrCodeTransport Code = "TRANSPORT_ERROR"

	// ErrCodeHTTP is a response with a status outside the 2xx range.
	ErrCodeHTTP Code = "HTTP_ERROR"

	// ErrCodeUnexpectedFormat is a response whose body violates the expected contract.
	ErrCodeUnexpectedFormat Code = "UNEXPECTED_FORMAT"

	// ErrCodeInvalidConfig is a configuration value that cannot be used.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Status  int    // Upstream HTTP status, set for ErrCodeHTTP
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface. The code is not part of the text.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
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

// HTTPStatus returns the upstream status code carried by an ErrCodeHTTP error,
// or 0 when err carries none.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types this is the full message including any transport cause.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
