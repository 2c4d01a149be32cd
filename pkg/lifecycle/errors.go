package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports a missing claim, verification, or document. No side
// effects have been performed when it is returned.
var ErrNotFound = errors.New("record not found")

// ValidationError reports missing or malformed input. It is always raised
// before any write, so the caller can map it to a 400 with nothing persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// StorageError wraps a persistence failure on a primary write. Anything
// downstream of the primary write (timeline, notification) never produces
// one; those failures are logged and swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error { return &StorageError{Op: op, Err: err} }

// isUniqueViolation detects a duplicate-key insert failure across drivers
// by message, the same way registration handles username races.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") ||
		strings.Contains(s, "already exists")
}
