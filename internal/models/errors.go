package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition indicates an order lifecycle step that is not allowed from its current state.
	ErrInvalidTransition = errors.New("invalid order transition")
	// ErrSubscriptionRequired indicates the caller lacks the capability for the action.
	ErrSubscriptionRequired = errors.New("subscription required")
)

// ValidationError reports a missing or malformed field at a call boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
