package transcribe

import (
	"errors"
	"fmt"
)

// Hosted-provider capacity/credential failures. These are the only error
// classes that trigger fallback to the local provider.

type AuthError struct{ Err error }

func (e *AuthError) Error() string { return fmt.Sprintf("hosted credential rejected: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type QuotaError struct{ Err error }

func (e *QuotaError) Error() string { return fmt.Sprintf("hosted quota exhausted: %v", e.Err) }
func (e *QuotaError) Unwrap() error { return e.Err }

type RateLimitedError struct{ Err error }

func (e *RateLimitedError) Error() string { return fmt.Sprintf("hosted rate limited: %v", e.Err) }
func (e *RateLimitedError) Unwrap() error { return e.Err }

// RemoteError is any other hosted-provider failure (transport error, 5xx,
// malformed response). It indicates a request-shape problem rather than
// capacity, so it propagates without fallback.
type RemoteError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("hosted provider http %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hosted provider request failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) HTTPStatusCode() int { return e.StatusCode }

// Local-provider failures. Both surface to the caller; there is nothing left
// to fall back to.

type ModelLoadError struct{ Err error }

func (e *ModelLoadError) Error() string { return fmt.Sprintf("speech model unusable: %v", e.Err) }
func (e *ModelLoadError) Unwrap() error { return e.Err }

type DecodeError struct{ Err error }

func (e *DecodeError) Error() string { return fmt.Sprintf("local decode failed: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// FallbackEligible reports whether a hosted failure should be retried via the
// local provider. Only the orchestrator consults this; providers never catch
// each other's errors.
func FallbackEligible(err error) bool {
	var authErr *AuthError
	var quotaErr *QuotaError
	var rateErr *RateLimitedError
	return errors.As(err, &authErr) || errors.As(err, &quotaErr) || errors.As(err, &rateErr)
}
