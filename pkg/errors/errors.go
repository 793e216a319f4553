// Package errors provides the structured error type shared by circlet's
// packages and CLI.
//
// An [Error] carries a machine-readable [Code] next to its message, so the
// CLI can tell a malformed token (INVALID_TOKEN) from an unusable output
// path (INVALID_PATH) without matching strings. Codes survive wrapping with
// fmt.Errorf("...: %w", err).
//
//	err := errors.New(errors.ErrCodeInvalidPattern, "diameter %d out of range", d)
//	if errors.Is(err, errors.ErrCodeInvalidPattern) {
//	    // reject the descriptor
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"
	ErrCodeInvalidToken   Code = "INVALID_TOKEN"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var codes = []Code{
	ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPattern,
	ErrCodeInvalidToken, ErrCodeInvalidPath, ErrCodeFileNotFound,
	ErrCodeInternal, ErrCodeUnsupported,
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

// Is reports whether any *Error in err's chain has the given code, so a
// decode failure wrapped as INTERNAL_ERROR still matches INVALID_TOKEN.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the outermost code in err's chain, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for people: the same text as Error() with every
// code prefix removed, including those of wrapped causes.
func UserMessage(err error) string {
	msg := err.Error()
	for _, code := range codes {
		msg = strings.ReplaceAll(msg, string(code)+": ", "")
	}
	return msg
}
