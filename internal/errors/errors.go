// Package errors provides error handling utilities.
package errors

import (
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeState indicates a structural/configuration error (unknown industry,
	// missing template, missing calculator). Fatal to the current run.
	TypeState Type = "STATE"

	// TypeValidation indicates a template/calculator mismatch. Fatal to the
	// run; an authoring defect, not transient.
	TypeValidation Type = "VALIDATION"

	// TypeTimeout indicates an async operation exceeded its deadline
	TypeTimeout Type = "TIMEOUT"

	// TypeNetwork indicates a network error
	TypeNetwork Type = "NETWORK"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// State creates a structural/configuration error
func State(message string) *Error {
	return New(TypeState, message)
}

// Statef creates a formatted structural/configuration error
func Statef(format string, args ...interface{}) *Error {
	return Newf(TypeState, format, args...)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(TypeValidation, message)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// ClassifyPricing converts an arbitrary error from the async pricing path
// into a typed Error. Typed errors pass through unchanged; untyped errors
// whose message looks like a deadline expiry become TIMEOUT, everything
// else becomes NETWORK. Callers building pricing-error intents use this so
// the reducer never inspects message text.
func ClassifyPricing(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"timeout", "timed out", "exceeded"} {
		if strings.Contains(msg, marker) {
			return Wrap(TypeTimeout, "pricing request timed out", err)
		}
	}
	return Wrap(TypeNetwork, "pricing request failed", err)
}
