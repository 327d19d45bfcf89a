package entity

import (
	"errors"
	"fmt"
)

// ValidationError reports a submitted field value that violates a constraint.
// Message is user-facing and already names the field.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the user-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError creates a ValidationError for field with the given message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError reports that a submission collides with an existing record
// of the same collection by normalised URL or title.
type DuplicateError struct {
	Collection Collection
}

func (e *DuplicateError) Error() string {
	return "The given resource has already been submitted or the title or URL is very similar to another one."
}

// SlugCollisionError reports that a catalog slug is already taken.
type SlugCollisionError struct {
	Slug string
}

func (e *SlugCollisionError) Error() string {
	return "Another catalog with the given slug exists. Please choose a different slug."
}

// InvalidURLError reports an unparsable URL or a failed live STAC check.
type InvalidURLError struct {
	Message string
	Err     error
}

func (e *InvalidURLError) Error() string {
	return e.Message
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

// ProxyError reports a proxy request that could not be served: a bad request,
// an upstream failure (timeout, oversize, non-2xx) or a non-STAC document.
type ProxyError struct {
	Message string
	Err     error
}

func (e *ProxyError) Error() string {
	return e.Message
}

func (e *ProxyError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a storage failure while handling a submission.
// Message is safe to show; Err holds the storage error for logging.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the user-facing message of err when err is one of the
// domain error types, and false for anything else.
func UserMessage(err error) (string, bool) {
	var (
		validationErr  *ValidationError
		duplicateErr   *DuplicateError
		slugErr        *SlugCollisionError
		invalidURLErr  *InvalidURLError
		proxyErr       *ProxyError
		persistenceErr *PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error(), true
	case errors.As(err, &duplicateErr):
		return duplicateErr.Error(), true
	case errors.As(err, &slugErr):
		return slugErr.Error(), true
	case errors.As(err, &invalidURLErr):
		return invalidURLErr.Error(), true
	case errors.As(err, &proxyErr):
		return proxyErr.Error(), true
	case errors.As(err, &persistenceErr):
		return persistenceErr.Error(), true
	}
	return "", false
}
