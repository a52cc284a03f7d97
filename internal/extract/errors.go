package extract

import (
	"errors"
	"fmt"
)

// Common extraction errors. Field heuristics never raise; only the
// orchestration around the OCR call can fail.
var (
	// ErrUnsupportedDocumentType is returned when a run is requested for a
	// document type outside Aadhaar, PAN and Other. This is a programming or
	// configuration error, not a state reachable by normal input.
	ErrUnsupportedDocumentType = errors.New("unsupported document type")

	// ErrOCRFailed is returned when the OCR engine could not read the image.
	// The run aborts and no partial result is produced.
	ErrOCRFailed = errors.New("OCR recognition failed")
)

// Error wraps extraction failures with the operation that raised them.
type Error struct {
	// Op is the operation that failed (e.g., "Extract").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("extract: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("extract: %s failed: %v", e.Op, e.Err)
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

	var extractErr *Error
	if errors.As(err, &extractErr) {
		return err
	}

	return &Error{Op: op, Err: err, Details: details}
}
