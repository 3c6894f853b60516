// ABOUTME: Custom error types for the filtering engine
// ABOUTME: Provides structured errors for page commands, stores and rule patterns

package errors

import (
	"errors"
	"fmt"
)

// ErrNoRules is returned when a scan is started without any rules.
var ErrNoRules = errors.New("no rules to apply")

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// WrongPageError is returned when a command runs on a page that cannot serve it
type WrongPageError struct {
	Command  string
	Expected string
	Actual   string
}

// Error implements the error interface
func (e *WrongPageError) Error() string {
	return fmt.Sprintf("%s requires page %s, current page is %s", e.Command, e.Expected, e.Actual)
}

// ElementNotFoundError is returned when a page element never appeared
type ElementNotFoundError struct {
	Selector string
	Attempts int
}

// Error implements the error interface
func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found after %d attempts", e.Selector, e.Attempts)
}

// PatternError reports a pattern rule that could not be compiled or evaluated
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *PatternError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure of the settings store backend
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("settings store %s %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsWrongPage checks if an error is a WrongPageError
func IsWrongPage(err error) bool {
	var wrongPage *WrongPageError
	return errors.As(err, &wrongPage)
}

// IsElementNotFound checks if an error is an ElementNotFoundError
func IsElementNotFound(err error) bool {
	var notFound *ElementNotFoundError
	return errors.As(err, &notFound)
}

// IsPattern checks if an error is a PatternError
func IsPattern(err error) bool {
	var patternErr *PatternError
	return errors.As(err, &patternErr)
}

// IsStore checks if an error is a StoreError
func IsStore(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
