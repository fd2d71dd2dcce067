package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Format selection errors
	ErrEmptyFormatSelection ErrorCode = "EMPTY_FORMAT_SELECTION"
	ErrUnknownFormat        ErrorCode = "UNKNOWN_FORMAT"

	// Output scope errors
	ErrOutputDirUnavailable ErrorCode = "OUTPUT_DIR_UNAVAILABLE"
	ErrOutsideScope         ErrorCode = "OUTSIDE_SCOPE"
	ErrFileWrite            ErrorCode = "FILE_WRITE"

	// Structure store errors
	ErrStoreOpen        ErrorCode = "STORE_OPEN"
	ErrStoreNotFound    ErrorCode = "STORE_NOT_FOUND"
	ErrStoreUnsupported ErrorCode = "STORE_UNSUPPORTED"
	ErrStoreInvalid     ErrorCode = "STORE_INVALID"

	// Rendering errors
	ErrRender      ErrorCode = "RENDER"
	ErrBatchFailed ErrorCode = "BATCH_FAILED"
)

// ExtractError represents a structured error with code and details
type ExtractError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ExtractError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ExtractError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ExtractError) Is(target error) bool {
	var targetErr *ExtractError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ExtractError with the given code and message
func New(code ErrorCode, message string) *ExtractError {
	return &ExtractError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ExtractError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ExtractError {
	return &ExtractError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ExtractError.
// It returns nil when err is nil; callers returning the result as an
// error must check err first to avoid a typed nil.
func Wrap(err error, code ErrorCode, message string) *ExtractError {
	if err == nil {
		return nil
	}
	return &ExtractError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ExtractError {
	if err == nil {
		return nil
	}
	return &ExtractError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ExtractError) WithDetail(key string, value interface{}) *ExtractError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ExtractError) WithDetails(details map[string]interface{}) *ExtractError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error, or any error it wraps, has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var extractErr *ExtractError
		if !errors.As(err, &extractErr) {
			return false
		}
		if extractErr.Code == code {
			return true
		}
		err = extractErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ExtractError
func GetErrorCode(err error) ErrorCode {
	var extractErr *ExtractError
	if errors.As(err, &extractErr) {
		return extractErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ExtractError
func GetErrorDetails(err error) map[string]interface{} {
	var extractErr *ExtractError
	if errors.As(err, &extractErr) {
		return extractErr.Details
	}
	return nil
}
