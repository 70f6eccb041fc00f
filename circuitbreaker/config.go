// Package circuitbreaker implements the circuit breaker pattern: an
// admission-control state machine that stops attempts after sustained
// failure and probes recovery after a cooldown.
package circuitbreaker

import (
	"time"
)

// Default configuration constants.
const (
	// DefaultFailureThreshold is the default number of failures before the
	// circuit opens.
	DefaultFailureThreshold = 5

	// DefaultResetTimeout is the default duration the circuit stays open
	// before a probe is admitted.
	DefaultResetTimeout = 60 * time.Second
)

// Config holds configuration for a circuit breaker.
type Config struct {
	// FailureThreshold is the number of failures before the circuit opens.
	// Must be >= 1. Default is 5.
	FailureThreshold int

	// ResetTimeout is the duration the circuit stays open before Allow
	// admits a probe and the circuit transitions to half-open.
	// Must be >= 0. Default is 60s.
	ResetTimeout time.Duration

	// OnStateChange is called when the circuit breaker state changes.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		FailureThreshold: DefaultFailureThreshold,
		ResetTimeout:     DefaultResetTimeout,
	}
}

// Validate normalizes out-of-range values to their defaults.
func (c *Config) Validate() {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.ResetTimeout < 0 {
		c.ResetTimeout = DefaultResetTimeout
	}
}

// WithFailureThreshold sets the failure threshold.
func (c *Config) WithFailureThreshold(n int) *Config {
	c.FailureThreshold = n
	return c
}

// WithResetTimeout sets the reset timeout.
func (c *Config) WithResetTimeout(d time.Duration) *Config {
	c.ResetTimeout = d
	return c
}

// WithOnStateChange sets the state change callback.
func (c *Config) WithOnStateChange(fn func(name string, from, to State)) *Config {
	c.OnStateChange = fn
	return c
}
