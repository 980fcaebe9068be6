package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the catalog wraps exactly one of
// these so transports can map it with errors.Is.
var (
	// ErrValidation marks malformed client input (filters, sort, product data).
	// Raised before any query executes; never retried.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an identifier with no matching row.
	ErrNotFound = errors.New("not found")

	// ErrConstraint marks a write rejected by a still-enforced foreign key.
	ErrConstraint = errors.New("constraint violation")

	// ErrTransaction marks a transaction that could not commit
	// (lock conflict, serialization failure, lost connection mid-commit).
	ErrTransaction = errors.New("transaction failed")

	// ErrTransientStorage marks a retryable infrastructure fault.
	ErrTransientStorage = errors.New("transient storage error")
)

// Product errors
var (
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrInvalidSortColumn = fmt.Errorf("%w: column is not sortable", ErrValidation)
)

// ValidationError describes one rejected input field. Err optionally names
// a more specific sentinel that itself wraps ErrValidation.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}
