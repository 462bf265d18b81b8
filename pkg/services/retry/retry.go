package retry

import (
	"context"
	"errors"
	"time"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/rs/zerolog"
)

// Policy controls the backoff behaviour of Do. Each invocation of Do starts
// from a fresh delay counter, nothing is shared between calls.
type Policy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	BackoffFactor float64
	MaxDelay      time.Duration

	// Sleep is swapped out in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// Default mirrors the backoff settings used for all Azure API calls:
// 3 retries, 1s initial delay, doubling, capped at 60s.
func Default() Policy {
	return Policy{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		BackoffFactor: 2.0,
		MaxDelay:      60 * time.Second,
	}
}

// Operation is a protected call that may fail.
type Operation[T any] func() (T, error)

// Do executes op under the policy, classifying each failure:
//
//   - authentication failures surface immediately, never retried
//   - throttling waits min(server hint, max delay) and retries; exhaustion
//     yields a RateLimitExceededError
//   - transient 5xx/network errors back off and retry; exhaustion re-raises
//     the last error
//   - other client errors and unknown errors surface immediately
//
// The backoff sleep blocks only the calling goroutine.
func Do[T any](ctx context.Context, policy Policy, op Operation[T]) (T, error) {
	var zero T

	sleep := policy.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	logger := zerolog.Ctx(ctx)
	delay := policy.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}

		err = azerr.Classify(err)
		lastErr = err

		var authErr *azerr.AuthenticationExpiredError
		if errors.As(err, &authErr) {
			logger.Error().Err(err).Msg("authentication failed")
			return zero, err
		}

		var rateErr *azerr.RateLimitError
		if errors.As(err, &rateErr) {
			if attempt >= policy.MaxRetries {
				return zero, &azerr.RateLimitExceededError{Retries: policy.MaxRetries, Cause: err}
			}
			wait := delay
			if rateErr.RetryAfter > 0 {
				wait = rateErr.RetryAfter
			}
			wait = capDelay(wait, policy.MaxDelay)
			logger.Warn().
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Int("max_retries", policy.MaxRetries).
				Msg("rate limit exceeded, backing off")
			sleep(wait)
			delay = scaleDelay(delay, policy.BackoffFactor)
			continue
		}

		var transientErr *azerr.TransientError
		if errors.As(err, &transientErr) {
			if attempt >= policy.MaxRetries {
				return zero, err
			}
			wait := capDelay(delay, policy.MaxDelay)
			logger.Warn().
				Err(err).
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Int("max_retries", policy.MaxRetries).
				Msg("transient error, backing off")
			sleep(wait)
			delay = scaleDelay(delay, policy.BackoffFactor)
			continue
		}

		// Client errors, validation errors and anything unrecognized are not
		// assumed transient.
		logger.Error().Err(err).Msg("non-retryable error")
		return zero, err
	}

	return zero, lastErr
}

func capDelay(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

func scaleDelay(d time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return d
	}
	return time.Duration(float64(d) * factor)
}
