// Package common defines shared constants and sentinel errors used across
// the filedepot layers. Callers should use errors.Is to match the sentinel
// values and errors.As for *ValidationError.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("Not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("Unauthorized")

	// Registration errors.
	ErrorAlreadyExists = errors.New("Already exist")

	// Content retrieval errors. Folders carry no payload, so asking for
	// their content is a client error, not a missing record.
	ErrorFolderHasNoContent = errors.New("A folder doesn't have content")
)

// ValidationError reports a missing or malformed request field. Reason is
// the client-facing message and is returned verbatim by the HTTP layer.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
