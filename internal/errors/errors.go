// Package errors provides error types and handling for callscope.
// It includes custom error types with error codes for programmatic handling.
package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application error with an associated error code.
type AppError struct {
	// Code is an error code string for programmatic handling
	Code string
	// Message is a human-friendly error message
	Message string
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	ErrCodeInvalidEvent  = "INVALID_EVENT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeTaskUnmapped  = "TASK_UNMAPPED"
	ErrCodeBadTimestamp  = "BAD_TIMESTAMP"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeUpstreamError = "UPSTREAM_ERROR"
)

// New creates a new AppError with the given code, message, and cause.
func New(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Convenience constructors for common errors

// ErrInvalidEvent creates an error for malformed or unexpected event payloads.
func ErrInvalidEvent(message string, cause error) *AppError {
	return New(ErrCodeInvalidEvent, message, cause)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string, cause error) *AppError {
	return New(ErrCodeNotFound, message, cause)
}

// ErrTaskUnmapped creates an error for voice tone task ids with no recorded call mapping.
func ErrTaskUnmapped(taskID string, cause error) *AppError {
	return New(ErrCodeTaskUnmapped, fmt.Sprintf("no call mapping for voice tone task %s", taskID), cause)
}

// ErrBadTimestamp creates an error for unparseable timestamps in events or call records.
func ErrBadTimestamp(message string, cause error) *AppError {
	return New(ErrCodeBadTimestamp, message, cause)
}

// ErrInternalError creates an internal error.
func ErrInternalError(message string, cause error) *AppError {
	return New(ErrCodeInternalError, message, cause)
}

// ErrDatabaseError creates a database error. Database failures are typically
// transient; the platform's invocation retry is the recovery path.
func ErrDatabaseError(message string, cause error) *AppError {
	return New(ErrCodeDatabaseError, message, cause)
}

// ErrUpstreamError creates an error for failed managed-service calls
// (Chime, Kinesis, Comprehend, AppSync, SNS).
func ErrUpstreamError(message string, cause error) *AppError {
	return New(ErrCodeUpstreamError, message, cause)
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a human-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
