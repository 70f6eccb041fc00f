package retry

import (
	"errors"
	"time"
)

// DefaultMaxAttempts is the default number of attempts per execution.
const DefaultMaxAttempts = 3

// ShouldRetryFunc decides whether an error is worth retrying. The engine
// treats the error value as opaque; classification is entirely the caller's.
type ShouldRetryFunc func(error) bool

// Config holds the retry policy for an execution. Construct it once and
// treat it as read-only afterwards; a Config may then be shared safely
// across concurrent executions.
type Config struct {
	// MaxAttempts is the maximum number of attempts per execution.
	// Must be >= 1. Default is 3.
	MaxAttempts int

	// MaxDelay caps the inter-attempt wait, applied after jitter.
	// Zero means uncapped.
	MaxDelay time.Duration

	// Timeout is the wall-clock budget for the whole execution. Once
	// exceeded, no further attempt starts. Zero means no budget.
	Timeout time.Duration

	// ShouldRetry decides whether a failed attempt may be retried.
	// If nil, every error is retried.
	ShouldRetry ShouldRetryFunc
}

// DefaultConfig returns the default configuration: 3 attempts, no delay cap,
// no overall timeout.
func DefaultConfig() *Config {
	return &Config{MaxAttempts: DefaultMaxAttempts}
}

// ConservativeConfig returns a configuration suited to interactive paths:
// 5 attempts, delays capped at 30s, a 2 minute budget.
func ConservativeConfig() *Config {
	return &Config{
		MaxAttempts: 5,
		MaxDelay:    30 * time.Second,
		Timeout:     120 * time.Second,
	}
}

// AggressiveConfig returns a configuration suited to background work that
// must eventually succeed: 10 attempts, delays capped at 60s, a 5 minute
// budget.
func AggressiveConfig() *Config {
	return &Config{
		MaxAttempts: 10,
		MaxDelay:    60 * time.Second,
		Timeout:     300 * time.Second,
	}
}

// ForErrors returns a configuration that retries only when the operation's
// error matches one of the given targets via errors.Is. Any other error is
// propagated unchanged after the first attempt.
func ForErrors(maxAttempts int, maxDelay, timeout time.Duration, retryable ...error) *Config {
	targets := make([]error, len(retryable))
	copy(targets, retryable)

	return &Config{
		MaxAttempts: maxAttempts,
		MaxDelay:    maxDelay,
		Timeout:     timeout,
		ShouldRetry: func(err error) bool {
			for _, target := range targets {
				if errors.Is(err, target) {
					return true
				}
			}
			return false
		},
	}
}

// GetMaxAttempts returns the effective attempt limit.
func (c *Config) GetMaxAttempts() int {
	if c == nil || c.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return c.MaxAttempts
}

// WithMaxAttempts sets the attempt limit.
func (c *Config) WithMaxAttempts(n int) *Config {
	c.MaxAttempts = n
	return c
}

// WithMaxDelay sets the inter-attempt delay cap.
func (c *Config) WithMaxDelay(d time.Duration) *Config {
	c.MaxDelay = d
	return c
}

// WithTimeout sets the wall-clock budget for the execution.
func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

// WithShouldRetry sets the retry predicate.
func (c *Config) WithShouldRetry(fn ShouldRetryFunc) *Config {
	c.ShouldRetry = fn
	return c
}
