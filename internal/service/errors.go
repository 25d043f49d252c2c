package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource does not exist or
	// does not belong to the requesting user. The two cases are deliberately
	// indistinguishable so existence can't be probed across users.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a user re-uploads content they already own.
	ErrConflict = errors.New("conflict")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrQuotaExceeded is returned when the weekly upload limit is reached.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ConflictError reports a duplicate upload, referencing the stored
// document the new bytes collided with.
type ConflictError struct {
	ExistingID       string
	ExistingFileName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document already exists as %q (id %s)", e.ExistingFileName, e.ExistingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// QuotaError reports an exhausted upload window. ResetDate is always set
// so callers can render when the window rolls over.
type QuotaError struct {
	Count     int
	Limit     int
	ResetDate time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("weekly upload limit reached (%d/%d), resets %s", e.Count, e.Limit, e.ResetDate.UTC().Format(time.RFC3339))
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
