// Package retry provides exponential backoff with jitter for transport
// operations such as dialing the host's attach socket.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// PermanentError wraps an error that must not be retried, such as an
// authentication rejection.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

// Config bounds the retry loop.
type Config struct {
	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
	// MaxAttempts limits total attempts; zero means DefaultConfig's limit.
	MaxAttempts int
}

// DefaultConfig suits reconnecting to a local socket.
func DefaultConfig() Config {
	return Config{
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		MaxAttempts:  8,
	}
}

// Do runs fn until it succeeds, returns a PermanentError, exhausts
// MaxAttempts, or ctx is done. The delay doubles per attempt up to
// MaxDelay, with up to 25% jitter.
func Do(ctx context.Context, cfg Config, operation string, fn func(ctx context.Context) error) error {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultConfig().InitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultConfig().MaxDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}

	delay := cfg.InitialDelay
	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry", "operation", operation, "attempt", attempt)
			}
			return nil
		}

		var permErr *PermanentError
		if errors.As(err, &permErr) {
			slog.Warn("operation failed permanently", "operation", operation, "attempt", attempt, "error", permErr.Err)
			return permErr.Err
		}
		lastErr = err

		if attempt >= cfg.MaxAttempts {
			slog.Warn("operation retries exhausted", "operation", operation, "attempts", attempt, "lastError", err)
			return fmt.Errorf("%s: retries exhausted after %d attempts: %w", operation, attempt, lastErr)
		}

		slog.Debug("operation failed, retrying", "operation", operation, "attempt", attempt, "delay", delay, "error", err)
		select {
		case <-time.After(jitter(delay)):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w (last error: %v)", operation, ctx.Err(), lastErr)
		}
		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

// jitter spreads delays by up to 25% to avoid thundering reconnects.
func jitter(d time.Duration) time.Duration {
	return d + time.Duration(rand.Int63n(int64(d)/4+1))
}
