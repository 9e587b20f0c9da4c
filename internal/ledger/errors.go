package ledger

import (
	"errors"
	"fmt"
)

// Failure categories. Every operation error wraps exactly one of these so
// callers can classify with errors.Is.
var (
	// ErrValidation marks a rejected input: a missing required field, a value
	// outside a closed kind set, a malformed date.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation blocked by the current state, such as
	// deleting an account that still has movements. An alternate operation
	// usually resolves it.
	ErrConflict = errors.New("conflict")
	// ErrCorrupted marks a broken invariant in the stored data itself, such
	// as a transfer pair that is not a transfer. The file needs repair, not a
	// different input.
	ErrCorrupted = errors.New("ledger corrupted")
)

// DiscrepancyError reports a reconcile attempt where the reported balance
// does not match the working balance. It unwraps to ErrConflict.
type DiscrepancyError struct {
	AccountID   string
	Discrepancy int64 // reported minus working balance, minor units
}

func (e *DiscrepancyError) Error() string {
	return fmt.Sprintf("account %s is off by %d minor units", e.AccountID, e.Discrepancy)
}

func (e *DiscrepancyError) Unwrap() error {
	return ErrConflict
}
