package domain

import (
	"fmt"
)

// ValidationError represents an error that occurs due to invalid input or
// parameters. Field is optional.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// NewFieldValidationError creates a validation error tied to one input field
func NewFieldValidationError(field, message string) error {
	return ValidationError{
		Field:   field,
		Message: message,
	}
}

// PermissionError represents insufficient access for an operation. Required
// holds the capability that was missing.
type PermissionError struct {
	Required TicketAccess `json:"required"`
	Message  string       `json:"message"`
}

// Error implements the error interface
func (e *PermissionError) Error() string {
	return e.Message
}

// NewPermissionError creates a new permission error
func NewPermissionError(required TicketAccess, message string) *PermissionError {
	return &PermissionError{
		Required: required,
		Message:  message,
	}
}

// ErrAccessDenied is the default insufficient access error
var ErrAccessDenied = NewPermissionError(AccessNone, "Access denied")

// ConflictError represents a uniqueness violation surfaced to the caller,
// e.g. a duplicate tracker name.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ImportError marks a dump record that could not be imported. Imports log
// these and continue with the remaining records.
type ImportError struct {
	Tracker string
	Ticket  int
	Reason  string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed [%s#%d]: %s - %v", e.Tracker, e.Ticket, e.Reason, e.Err)
	}
	return fmt.Sprintf("import failed [%s#%d]: %s", e.Tracker, e.Ticket, e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
