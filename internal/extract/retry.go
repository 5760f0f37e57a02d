package extract

import (
	"context"
	"time"
)

// RetryPolicy bounds how the Adapter retries failed extraction attempts.
// Timeouts retry with doubling backoff, a malformed response retries with a
// stricter prompt, quota errors never retry.
type RetryPolicy struct {
	// TimeoutRetries is the number of retries after a timeout.
	TimeoutRetries int
	// MalformedRetries is the number of retries after a malformed response.
	MalformedRetries int
	// Backoff is the wait before the first timeout retry; it doubles on
	// each subsequent retry.
	Backoff time.Duration
}

// DefaultRetryPolicy returns the standard policy: two timeout retries
// starting at one second, one stricter-prompt retry for malformed output.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		TimeoutRetries:   2,
		MalformedRetries: 1,
		Backoff:          time.Second,
	}
}

// backoffFor returns the wait before the given retry (1-based).
func (p RetryPolicy) backoffFor(retry int) time.Duration {
	backoff := p.Backoff
	for i := 1; i < retry; i++ {
		backoff *= 2
	}
	return backoff
}

// sleepContext waits for the duration or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
