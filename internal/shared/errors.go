package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Conversion errors
	ErrUnrecognizedLink = fmt.Errorf("unrecognized link")
	ErrFetch            = fmt.Errorf("fetch failed")
	ErrMetadataNotFound = fmt.Errorf("metadata not found")
	ErrCancelled        = fmt.Errorf("operation cancelled")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ErrorKind returns a stable, machine-readable name for the conversion failure wrapped by err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnrecognizedLink):
		return "unrecognized_link"
	case errors.Is(err, ErrMetadataNotFound):
		return "metadata_not_found"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.Is(err, ErrFetch):
		return "fetch_error"
	default:
		return "unknown"
	}
}
