package eventually

import (
	"fmt"
	"time"
)

// UpstreamError is returned when the Eventually API answers with a
// non-success status code.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("eventually returned status %d: %s", e.StatusCode, e.Message)
}

// TimeoutError is returned when a request exceeds the configured timeout or
// the caller's context expires.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("eventually request timed out after %s", e.Timeout)
}

// DecodeError is returned when a response body cannot be decoded as the
// expected schema.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode eventually response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
