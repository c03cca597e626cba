package apperrors

import (
	"errors"
	"fmt"
)

// Error classes. Every failure an import run can surface wraps exactly one of
// these, so callers can report the failure class without inspecting causes.
var (
	// ErrConfiguration covers invalid run setup, detected before any row
	// is processed.
	ErrConfiguration = errors.New("configuration error")

	// ErrSourceIO covers unreadable or missing input sources.
	ErrSourceIO = errors.New("source I/O error")

	// ErrData covers rows that fail parsing or violate an expected
	// invariant.
	ErrData = errors.New("data error")

	// ErrStore covers failures flushing to the entity store.
	ErrStore = errors.New("store error")
)

// Configuration errors
var (
	ErrUnknownSource = fmt.Errorf("%w: source must be either 'book' or 'ods'", ErrConfiguration)
	ErrImportLocked  = fmt.Errorf("%w: another import run holds the lock", ErrConfiguration)
)

// RowError is a data error carrying the offending row's raw content. The
// reconciler never partially applies a bad row.
type RowError struct {
	Raw string
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v: bad row %q", e.Err, e.Raw)
}

// Unwrap exposes both the data class and the underlying cause, so callers
// can match either through errors.Is and errors.As.
func (e *RowError) Unwrap() []error {
	return []error{ErrData, e.Err}
}

// NewRowError wraps a row-level failure with the raw source record.
func NewRowError(raw string, err error) error {
	return &RowError{Raw: raw, Err: err}
}

// Classify names the error class of err for user-facing messages.
func Classify(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrSourceIO):
		return "io"
	case errors.Is(err, ErrData):
		return "data"
	case errors.Is(err, ErrStore):
		return "store"
	default:
		return "internal"
	}
}
