// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrMalformedStore = errors.New("malformed store")

	// Directory errors.
	ErrCollision  = errors.New("contact collision")
	ErrValidation = errors.New("validation failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CollisionError reports that a contact was rejected by the duplicate check.
// The whole contact is rejected; nothing is merged or written.
type CollisionError struct {
	Reason string
}

func (e *CollisionError) Error() string {
	return "contact rejected: " + e.Reason
}

// Unwrap allows errors.Is(err, ErrCollision).
func (e *CollisionError) Unwrap() error {
	return ErrCollision
}

// NewCollisionError creates a collision error with the given reason.
func NewCollisionError(reason string) error {
	return &CollisionError{Reason: reason}
}

// ValidationError reports bad user input such as an invalid row selection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRecoverable reports whether a command failure leaves state untouched and
// should be reported as a message rather than treated as fatal.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCollision) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound)
}
