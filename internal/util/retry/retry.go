package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// Config holds retry configuration.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// RetryIf decides whether a non-fatal error is retried. Nil retries all.
	RetryIf func(error) bool
	// Operation names the call in log lines.
	Operation string
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// DefaultConfig returns the defaults applied before options.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// WithExponentialBackoff runs operation until it succeeds, retrying up to
// MaxRetries times with exponentially increasing delays. Errors wrapped
// with Fatal, or rejected by RetryIf, are returned without retrying.
// Retries are logged at V(1) through the logger in ctx.
func WithExponentialBackoff(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := logr.FromContextOrDiscard(ctx)

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		log.V(1).Info("retrying", "operation", cfg.Operation, "attempt", attempt+1, "delay", delay.String(), "error", err.Error())
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt+1, ctx.Err())
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * cfg.Multiplier)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

// WithMaxRetries sets the maximum number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxRetries = n
		}
	}
}

// WithInitialDelay sets the initial delay between retries.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay sets the maximum delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// WithRetryIf limits retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *Config) {
		c.RetryIf = fn
	}
}

// WithOperation names the operation in retry log lines.
func WithOperation(name string) Option {
	return func(c *Config) {
		c.Operation = name
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
