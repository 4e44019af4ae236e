// Package errors provides structured error types for eml.
//
// Every failure the diagram engine can produce carries a machine-readable
// [Code], so the CLI and the HTTP server can report the same failure the
// same way:
//   - INVALID_*: the document or a request option is malformed
//   - UNSUPPORTED_*: the document asks for something the grammar forbids
//   - UNKNOWN_* / DUPLICATE_*: identifier resolution failures
//   - DEGENERATE_GEOMETRY: a curve control point could not be computed
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNodeID, "no node with id %q", id)
//	if errors.Is(err, errors.ErrCodeUnknownNodeID) {
//	    // report to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, yamlErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document errors
	ErrCodeInvalidDocument  Code = "INVALID_DOCUMENT"
	ErrCodeInvalidNodeType  Code = "INVALID_NODE_TYPE"
	ErrCodeUnsupportedArrow Code = "UNSUPPORTED_ARROW"
	ErrCodeUnknownNodeID    Code = "UNKNOWN_NODE_ID"
	ErrCodeDuplicateNodeID  Code = "DUPLICATE_NODE_ID"

	// Geometry errors
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	// Request option errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// inputCodes are the codes caused by what the caller sent rather than by
// the environment.
var inputCodes = map[Code]bool{
	ErrCodeInvalidDocument:    true,
	ErrCodeInvalidNodeType:    true,
	ErrCodeUnsupportedArrow:   true,
	ErrCodeUnknownNodeID:      true,
	ErrCodeDuplicateNodeID:    true,
	ErrCodeDegenerateGeometry: true,
	ErrCodeInvalidInput:       true,
	ErrCodeInvalidFormat:      true,
	ErrCodeInvalidVizType:     true,
}

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
// Only the outermost *Error in the chain is considered.
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

// IsInput reports whether err was caused by the submitted document or
// request options.
func IsInput(err error) bool {
	return inputCodes[GetCode(err)]
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
