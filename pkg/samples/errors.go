package samples

import (
	"errors"
	"fmt"
)

// ErrorCategory categorizes errors raised by the samples themselves,
// before any SDK error type is consulted.
type ErrorCategory string

const (
	// CategoryAuth indicates credential acquisition or validation failed.
	CategoryAuth ErrorCategory = "auth"
	// CategoryConfig indicates invalid or missing configuration.
	CategoryConfig ErrorCategory = "config"
	// CategoryService indicates a remote service rejected a request.
	CategoryService ErrorCategory = "service"
	// CategoryInternal indicates an internal error.
	CategoryInternal ErrorCategory = "internal"
)

// SampleError is a structured error with category and context.
type SampleError struct {
	// Category classifies the error type.
	Category ErrorCategory

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error.
	Cause error

	// Details contains additional error context.
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *SampleError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Category, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SampleError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error's category.
func (e *SampleError) Is(target error) bool {
	var sErr *SampleError
	if errors.As(target, &sErr) {
		return e.Category == sErr.Category
	}
	return false
}

// NewError creates a new SampleError.
func NewError(category ErrorCategory, message string) *SampleError {
	return &SampleError{
		Category: category,
		Message:  message,
		Details:  make(map[string]interface{}),
	}
}

// WithCause sets the underlying error.
func (e *SampleError) WithCause(err error) *SampleError {
	e.Cause = err
	return e
}

// WithDetail adds a detail to the error.
func (e *SampleError) WithDetail(key string, value interface{}) *SampleError {
	e.Details[key] = value
	return e
}

// Convenience constructors for common error types

// ErrAuth creates an authentication error.
func ErrAuth(message string) *SampleError {
	return NewError(CategoryAuth, message)
}

// ErrInvalidConfig creates a configuration error.
func ErrInvalidConfig(message string) *SampleError {
	return NewError(CategoryConfig, message)
}

// ErrService creates a service error.
func ErrService(message string) *SampleError {
	return NewError(CategoryService, message)
}

// ErrInternal creates an internal error.
func ErrInternal(message string) *SampleError {
	return NewError(CategoryInternal, message)
}

// IsCategory checks if an error is of a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	var sErr *SampleError
	if errors.As(err, &sErr) {
		return sErr.Category == category
	}
	return false
}
