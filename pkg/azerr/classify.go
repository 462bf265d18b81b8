package azerr

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Classify converts a raw SDK or transport error into the taxonomy.
// Already-classified errors pass through untouched; anything unrecognized
// is returned as-is and treated as unknown (unknown is never assumed
// transient).
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		auth       *AuthenticationExpiredError
		rate       *RateLimitError
		exhausted  *RateLimitExceededError
		transient  *TransientError
		client     *ClientError
		validation *ValidationError
	)
	if errors.As(err, &auth) || errors.As(err, &rate) || errors.As(err, &exhausted) ||
		errors.As(err, &transient) || errors.As(err, &client) || errors.As(err, &validation) {
		return err
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusUnauthorized:
			return &AuthenticationExpiredError{Cause: err}
		case respErr.StatusCode == http.StatusTooManyRequests:
			return &RateLimitError{RetryAfter: retryAfter(respErr), Cause: err}
		case respErr.StatusCode >= 500 && respErr.StatusCode < 600:
			return &TransientError{StatusCode: respErr.StatusCode, Cause: err}
		case respErr.StatusCode >= 400 && respErr.StatusCode < 500:
			return &ClientError{StatusCode: respErr.StatusCode, Cause: err}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransientError{Cause: err}
	}

	return err
}

// retryAfter reads the throttling wait hint from the error response.
// The header may carry seconds or an HTTP date; dates fall back to 60s.
func retryAfter(respErr *azcore.ResponseError) time.Duration {
	if respErr.RawResponse == nil {
		return 0
	}
	header := respErr.RawResponse.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(header, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return 60 * time.Second
}
