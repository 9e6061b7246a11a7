package nse

import (
	"context"
	"time"
)

// RetryPolicy bounds retries at the collaborator boundary. The decision core
// never retries or sleeps; everything transport-shaped lives behind this
// policy and surfaces as a plain error when exhausted.
type RetryPolicy struct {
	Attempts int           // total attempts, including the first
	Backoff  time.Duration // backoff grows linearly: Backoff, 2*Backoff, ...
}

// DefaultRetry mirrors the hardening the exchange endpoints need in
// practice: five attempts with a slow linear ramp.
func DefaultRetry() RetryPolicy {
	return RetryPolicy{Attempts: 5, Backoff: 1500 * time.Millisecond}
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// The last error is returned; ctx cancellation wins over retrying.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := p.Backoff * time.Duration(i)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
