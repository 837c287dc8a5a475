// Package apperrors holds the error taxonomy shared by every stage of an
// invoice run. Stages wrap these sentinels with fmt.Errorf("...: %w") so the
// CLI can tell a usage mistake from a broken configuration or a failed call.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned for a malformed hours argument or a
	// payment lead time shorter than the allowed minimum.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingConfiguration is returned when a required configuration key
	// is absent or empty.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrTransport is returned when the invoice submission fails or the API
	// answers with a non-success status.
	ErrTransport = errors.New("transport error")
)

// MissingConfigError lists every required key that was not provided
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingConfiguration, strings.Join(e.Keys, ", "))
}

func (e *MissingConfigError) Unwrap() error {
	return ErrMissingConfiguration
}

// TransportError carries the HTTP status and raw body of a failed submission.
// StatusCode is zero when the request never got a response.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", ErrTransport, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: API request failed with status %d: %s", ErrTransport, e.StatusCode, e.Body)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// InvalidArgument wraps ErrInvalidArgument with a formatted message
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
