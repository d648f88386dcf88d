package orchestrators

import (
	"errors"
	"fmt"
)

// The engine distinguishes four failure classes. Validation failures are
// raised before any store call so no optimistic state needs rolling back.
// Partial saves can only happen between the roster step and the week step;
// both steps are full-replace upserts, so retrying the same save converges.

// ValidationError reports input that must be corrected by the caller.
// It always blocks persistence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PersistenceError reports a save or create rejected by the store, carrying
// the store-provided detail for the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialSaveError reports a two-step save that failed after its first step
// succeeded, leaving the roster and the week history inconsistent until the
// caller retries.
type PartialSaveError struct {
	Completed string // the step that succeeded
	Failed    string // the step that failed
	Err       error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("%s succeeded but %s failed (retry is safe): %v", e.Completed, e.Failed, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
