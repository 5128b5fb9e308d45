// Package errors provides coded errors for shine.
//
// Every failure the rendering layer can recover from carries a stable code so
// callers and tests can match on it without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Rendering errors. These are recovered inside the renderer and shown
	// as styled notices; they only surface through Result.Notice.
	ErrMalformedInput  ErrorCode = "MALFORMED_INPUT"
	ErrEmptyTable      ErrorCode = "EMPTY_TABLE"
	ErrUnknownCategory ErrorCode = "UNKNOWN_CATEGORY"
	ErrRender          ErrorCode = "RENDER"
	ErrWrite           ErrorCode = "WRITE"

	// Prompt errors
	ErrPromptRead ErrorCode = "PROMPT_READ"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrStyleLoad   ErrorCode = "STYLE_LOAD"

	// FileSystem errors
	ErrFileRead ErrorCode = "FILE_READ"
)

// ShineError represents a structured error with code and details
type ShineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ShineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ShineError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ShineError carrying the same code.
func (e *ShineError) Is(target error) bool {
	var targetErr *ShineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ShineError with the given code and message
func New(code ErrorCode, message string) *ShineError {
	return &ShineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ShineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ShineError {
	return &ShineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ShineError
func Wrap(err error, code ErrorCode, message string) *ShineError {
	if err == nil {
		return nil
	}
	return &ShineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ShineError {
	if err == nil {
		return nil
	}
	return &ShineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ShineError) WithDetail(key string, value interface{}) *ShineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var shineErr *ShineError
	if errors.As(err, &shineErr) {
		return shineErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ShineError
func GetErrorCode(err error) ErrorCode {
	var shineErr *ShineError
	if errors.As(err, &shineErr) {
		return shineErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ShineError
func GetErrorDetails(err error) map[string]interface{} {
	var shineErr *ShineError
	if errors.As(err, &shineErr) {
		return shineErr.Details
	}
	return nil
}
