// Package apperrors defines the error taxonomy shared by services and handlers.
// Handlers map these onto HTTP status codes; everything else surfaces as a
// generic internal error with the cause logged.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup for an entity that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a field that failed range or format validation.
// These are raised before any guard check or count query runs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// PolicyDeniedError is returned when a guard vetoes a mutation. The reason is
// safe to show to the caller verbatim.
type PolicyDeniedError struct {
	Reason string
}

func (e *PolicyDeniedError) Error() string {
	return e.Reason
}

// ConflictError reports a uniqueness violation (email or username taken).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StoreError wraps a persistence failure. The cause is logged server-side and
// never shown to the caller.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NotFound builds an entity-specific not-found error that matches ErrNotFound
// under errors.Is.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s with ID %s: %w", entity, id, ErrNotFound)
}
