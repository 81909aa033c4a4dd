package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class independent of its message.
type ErrorCode string

const (
	// Resource identification
	ErrInvalidCategory     ErrorCode = "INVALID_CATEGORY"
	ErrMissingResourceName ErrorCode = "MISSING_RESOURCE_NAME"
	ErrInvalidResourceName ErrorCode = "INVALID_RESOURCE_NAME"
	ErrUnsupportedLocale   ErrorCode = "UNSUPPORTED_LOCALE"

	// Project state
	ErrCorruptManifest ErrorCode = "CORRUPT_MANIFEST"
	ErrMissingManifest ErrorCode = "MISSING_MANIFEST"
	ErrProjectLocked   ErrorCode = "PROJECT_LOCKED"
	ErrTemplateInvalid ErrorCode = "TEMPLATE_INVALID"

	// Storage
	ErrIOFailure ErrorCode = "IO_FAILURE"

	// Configuration
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// Error is a structured error carrying a stable code and an optional hint
// telling the user how to correct the input.
type Error struct {
	Code    ErrorCode
	Message string
	Hint    string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithHint attaches a corrective hint shown under the error message
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether any error in err's chain carries code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Wrapped
			continue
		}
		return false
	}
	return false
}

// GetErrorCode returns the code of the outermost *Error in err's chain
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetHint returns the first non-empty hint in err's chain
func GetHint(err error) string {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return ""
		}
		if e.Hint != "" {
			return e.Hint
		}
		err = e.Wrapped
	}
	return ""
}
