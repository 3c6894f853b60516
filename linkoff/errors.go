// ABOUTME: Error types and handling for the LinkOff library
// ABOUTME: Provides structured errors that keep the engine error as their cause

package linkoff

import (
	"errors"
	"fmt"

	coreerrors "linkoff-engine/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates an item was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeWrongPage indicates a command ran on the wrong page
	ErrorTypeWrongPage ErrorType = "wrong_page"

	// ErrorTypeStore indicates the settings store failed
	ErrorTypeStore ErrorType = "store"

	// ErrorTypeNetwork indicates a page or feed download failed
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates a page or feed could not be parsed
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsWrongPageError checks if an error is a wrong page error
func IsWrongPageError(err error) bool {
	return hasType(err, ErrorTypeWrongPage)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return hasType(err, ErrorTypeParsing)
}

// IsStoreError checks if an error is a settings store error
func IsStoreError(err error) bool {
	return hasType(err, ErrorTypeStore)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// fromCore classifies an engine error.
func fromCore(err error, message string) error {
	if err == nil {
		return nil
	}
	t := ErrorTypeInternal
	switch {
	case coreerrors.IsValidation(err):
		t = ErrorTypeValidation
	case coreerrors.IsNotFound(err):
		t = ErrorTypeNotFound
	case coreerrors.IsWrongPage(err):
		t = ErrorTypeWrongPage
	case coreerrors.IsStore(err):
		t = ErrorTypeStore
	}
	return NewError(t, message).WithCause(err)
}
