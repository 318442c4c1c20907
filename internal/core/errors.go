package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation  ErrorCategory = "validation"  // Invalid input, detected before fan-out
	ErrCatModel       ErrorCategory = "model"       // Text-generation service failure
	ErrCatParse       ErrorCategory = "parse"       // Model output not decodable
	ErrCatPersistence ErrorCategory = "persistence" // Store failure
	ErrCatNotFound    ErrorCategory = "not_found"   // Resource not found
	ErrCatInternal    ErrorCategory = "internal"    // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// ErrValidation creates a validation error. Validation is the one failure
// mode allowed to prevent model calls entirely.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrModel creates a text-generation service error.
func ErrModel(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatModel,
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// ErrPersistence creates a store error. Surfaced distinctly from analysis
// failure so callers can tell "analyzed but not saved" from "analysis failed".
func ErrPersistence(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatPersistence,
		Code:     code,
		Message:  message,
	}
}

// ErrNotFound creates a not-found error.
func ErrNotFound(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     code,
		Message:  message,
	}
}

// IsRetryable reports whether an error is worth retrying.
func IsRetryable(err error) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Retryable
	}
	// Unknown errors from the network layer default to retryable.
	return true
}

// IsCategory reports whether err is a DomainError of the given category.
func IsCategory(err error, cat ErrorCategory) bool {
	var domErr *DomainError
	return errors.As(err, &domErr) && domErr.Category == cat
}
