package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInconsistentState = errors.New("inconsistent state")
	ErrVersionConflict   = errors.New("version conflict")

	ErrMenuItemNotFound  = &NotFoundError{Entity: "menu item"}
	ErrDiscountNotFound  = &NotFoundError{Entity: "discount"}
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError names the field that violated a constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation against a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is matches ErrNotFound and any NotFoundError for the same entity,
// so errors.Is(err, ErrMenuItemNotFound) works regardless of ID.
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	var nf *NotFoundError
	if errors.As(target, &nf) {
		return nf.Entity == e.Entity && (nf.ID == "" || nf.ID == e.ID)
	}
	return false
}

// StoreUnavailableError means the backing store could not be reached.
// Callers may retry with backoff; the catalog never retries on its own.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// NewStoreUnavailableError wraps err as a StoreUnavailableError for op.
func NewStoreUnavailableError(op string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Op: op, Err: err}
}

func (e *StoreUnavailableError) Error() string {
	if e.Err == nil {
		return e.Op + ": store unavailable"
	}
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// InconsistentStateError aborts a derived-value write whose inputs were malformed.
type InconsistentStateError struct {
	MenuItemID string
	Reason     string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent state for menu item %s: %s", e.MenuItemID, e.Reason)
}

func (e *InconsistentStateError) Is(target error) bool {
	return target == ErrInconsistentState
}

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
