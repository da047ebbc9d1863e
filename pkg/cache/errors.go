package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a failure to reach a remote backend.
var ErrNetwork = errors.New("network error")

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is an exponential retry schedule.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// connectBackoff is the schedule for reaching Redis and MongoDB on open.
var connectBackoff = Backoff{Attempts: 3, Initial: time.Second}

// Retry calls fn until it succeeds, fails with an error not marked
// retryable, or the attempts are used up. The delay doubles after each
// retryable failure.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff retries fn on the schedule used for backend connections.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return connectBackoff.Retry(ctx, fn)
}
