package azerr

import (
	"errors"
	"fmt"
	"time"
)

// Kind partitions failures by how the caller should react to them.
type Kind string

const (
	KindAuthenticationExpired Kind = "authentication_expired"
	KindRateLimitExceeded     Kind = "rate_limit_exceeded"
	KindTransient             Kind = "transient_service_error"
	KindClient                Kind = "client_error"
	KindNotFound              Kind = "resource_not_found"
	KindUnknown               Kind = "unknown_error"
)

// AuthenticationExpiredError means the credential is no longer valid.
// Never retried.
type AuthenticationExpiredError struct {
	Cause error
}

func (e *AuthenticationExpiredError) Error() string {
	return fmt.Sprintf("authentication token expired, refresh credentials: %v", e.Cause)
}

func (e *AuthenticationExpiredError) Unwrap() error { return e.Cause }

// RateLimitError is a throttling response. RetryAfter is the server-provided
// wait hint, zero when the response carried none.
type RateLimitError struct {
	RetryAfter time.Duration
	Cause      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %v", e.Cause)
}

func (e *RateLimitError) Unwrap() error { return e.Cause }

// RateLimitExceededError is raised once the retry budget for throttled
// calls has been exhausted.
type RateLimitExceededError struct {
	Retries int
	Cause   error
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit still exceeded after %d retries, reduce request frequency: %v",
		e.Retries, e.Cause)
}

func (e *RateLimitExceededError) Unwrap() error { return e.Cause }

// TransientError covers 5xx responses and network failures that are worth
// retrying.
type TransientError struct {
	StatusCode int
	Cause      error
}

func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transient service error (status %d): %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("transient network error: %v", e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// ClientError is a non-throttling 4xx response. Retrying cannot help, the
// request or its permissions are wrong.
type ClientError struct {
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error (status %d): %v", e.StatusCode, e.Cause)
}

func (e *ClientError) Unwrap() error { return e.Cause }

// ValidationError rejects malformed input at the core boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// KindOf maps an error to its taxonomy kind, classifying raw SDK errors
// on the way.
func KindOf(err error) Kind {
	err = Classify(err)

	var (
		auth       *AuthenticationExpiredError
		rate       *RateLimitError
		exhausted  *RateLimitExceededError
		transient  *TransientError
		client     *ClientError
		validation *ValidationError
	)
	switch {
	case errors.As(err, &validation):
		return KindClient
	case errors.As(err, &auth):
		return KindAuthenticationExpired
	case errors.As(err, &rate), errors.As(err, &exhausted):
		return KindRateLimitExceeded
	case errors.As(err, &transient):
		return KindTransient
	case errors.As(err, &client):
		if client.StatusCode == 404 {
			return KindNotFound
		}
		return KindClient
	default:
		return KindUnknown
	}
}
