package ioconnect

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrBackendHostRequired  = errors.New("backend host is required")
	ErrAccessTokenRequired  = errors.New("access token is required")
	ErrMissingSubstitution  = errors.New("missing substitution for URL template placeholder")
	ErrCredentialsRequired  = errors.New("username and password are required")
	ErrInvalidRetryConfig   = errors.New("retry attempts must be at least 1")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
	ErrNoDevicesFound       = errors.New("no devices found")
	ErrDeviceIDRequired     = errors.New("device ID is required")
	ErrInsightIDRequired    = errors.New("insight ID is required")
	ErrSensorNameRequired   = errors.New("sensor name is required")
	ErrNoTokenConfigured    = errors.New("no access token configured, run login first")
	ErrInvalidJSONBody      = errors.New("response body is not valid JSON")
)

// StatusError represents a non-2xx response from the backend. All statuses,
// client and server errors alike, are treated as retryable by the HTTP core.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Server     string
	Body       string
}

// Error implements the error interface. The message carries everything a
// human needs to diagnose a terminal failure without verbose logging.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	if e.Server != "" {
		msg += fmt.Sprintf(" (server: %s)", e.Server)
	}

	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}

// DecodeError represents a 2xx response whose body was not valid JSON.
// The HTTP core treats it as a transient failure and retries.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError is the terminal failure of a logical call: every
// attempt failed and the retry budget is spent. It wraps the last-seen error.
type RetriesExhaustedError struct {
	Method     string
	URL        string
	Attempts   int
	LastStatus int
	Err        error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("%s %s failed after %d attempts: %v", e.Method, e.URL, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetriesExhausted reports whether err is a terminal retry failure.
func IsRetriesExhausted(err error) bool {
	exhausted := &RetriesExhaustedError{}

	return errors.As(err, &exhausted)
}

// IsStatus reports whether err carries the given upstream HTTP status,
// directly or wrapped in a RetriesExhaustedError.
func IsStatus(err error, code int) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}

// StatusCode extracts the upstream HTTP status from err, or 0 when no
// response was ever received (network failures).
func StatusCode(err error) int {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	exhausted := &RetriesExhaustedError{}
	if errors.As(err, &exhausted) {
		return exhausted.LastStatus
	}

	return 0
}
