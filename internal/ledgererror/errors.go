// Package ledgererror defines the typed errors surfaced by the ledger
// engine. Commands either complete as one atomic batch or fail with one of
// these before any write is visible.
package ledgererror

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a pre-read expected to find a record found
// none. The command aborts before any batch is assembled.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Collection, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports invalid input that the caller must reject rather
// than silently normalize, e.g. apportionment percentages not summing to 100.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// StoreCommitError reports that the atomic batch failed to commit. No
// partial writes are visible; the caller may retry by re-issuing the whole
// command.
type StoreCommitError struct {
	Err error
}

func (e *StoreCommitError) Error() string {
	return fmt.Sprintf("batch commit failed: %v", e.Err)
}

func (e *StoreCommitError) Unwrap() error {
	return e.Err
}
