package store

import (
	"context"
	"errors"
	"time"
)

// Backend persists one settings document per user as opaque JSON bytes.
//
// Implementations must be safe for concurrent use. Load returns ok == false
// when the user has no document yet. Transient failures (network, timeouts,
// busy databases) should be wrapped with [Retryable] so the store retries
// them.
type Backend interface {
	Load(ctx context.Context, user string) (data []byte, ok bool, err error)
	Save(ctx context.Context, user string, data []byte) error
	Close() error
}

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("backend closed")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// DefaultRetryDelay is the first backoff delay between attempts.
const DefaultRetryDelay = time.Second

const retryAttempts = 3

// RetryWithBackoff retries fn up to 3 times with exponential backoff starting
// at [DefaultRetryDelay]. Only errors wrapped with Retryable trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retryWithBackoff(ctx, DefaultRetryDelay, fn)
}

func retryWithBackoff(ctx context.Context, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
