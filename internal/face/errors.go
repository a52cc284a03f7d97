package face

import (
	"errors"
	"fmt"
)

// Common face processing errors
var (
	// ErrDetectorUnavailable is returned when no face detector is configured
	// for a call path that needs one.
	ErrDetectorUnavailable = errors.New("face detector not configured")

	// ErrComparisonUnavailable is returned when either side of a comparison
	// yields no face descriptor. Surfaced as a notice, not a failure.
	ErrComparisonUnavailable = errors.New("face comparison unavailable: no face descriptor on one or both sides")

	// ErrEmbeddingFailed is returned when the embedding backend fails.
	ErrEmbeddingFailed = errors.New("face embedding failed")
)

// Error wraps face processing failures with the operation that raised them.
type Error struct {
	// Op is the operation that failed (e.g., "Compare").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("face: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("face: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError wraps err as an Error unless it already is one.
func WrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var faceErr *Error
	if errors.As(err, &faceErr) {
		return err
	}

	return &Error{Op: op, Err: err, Details: details}
}
