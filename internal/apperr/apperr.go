package apperr

import (
	"errors"
	"fmt"
)

// ExternalAPIError is returned when an upstream service (YouTube Data API,
// Gemini) rejects a request or is unreachable.
type ExternalAPIError struct {
	Service string
	Reason  string
	Err     error
}

func (e *ExternalAPIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

// External wraps err as an ExternalAPIError for the named service.
func External(service, reason string, err error) *ExternalAPIError {
	return &ExternalAPIError{Service: service, Reason: reason, Err: err}
}

// ValidationError is returned for malformed client input (bad video URL,
// empty credentials, missing fields).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation creates a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsExternal reports whether err is (or wraps) an ExternalAPIError.
func IsExternal(err error) bool {
	var e *ExternalAPIError
	return errors.As(err, &e)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
