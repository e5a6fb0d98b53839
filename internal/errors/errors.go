package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing failures.
const (
	ErrConfig     = "CONFIG"
	ErrValidation = "VALIDATION"
	ErrBounds     = "BOUNDS"
	ErrCorrupt    = "CORRUPT"
	ErrPersist    = "PERSIST"
	ErrExport     = "EXPORT"
	ErrStorage    = "STORAGE"
)

// Error is a structured error with a code, a message, an optional
// suggestion and an optional cause. It renders as:
//
//	✗ <what failed>
//
//	  <cause>
//
//	  <suggestion>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps err with a code, message and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}
	return b.String()
}

// Unwrap returns the cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if err is (or wraps) an *Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Code == code
	}
	return false
}

// Short returns the one-line message of a structured error, or err.Error()
// for anything else. Used where the multi-line rendering does not fit,
// such as the TUI status line.
func Short(err error) string {
	if err == nil {
		return ""
	}
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Message
	}
	return err.Error()
}
