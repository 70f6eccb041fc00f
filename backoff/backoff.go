// Package backoff provides delay strategies for computing the wait between
// retry attempts. Strategies are pure: they hold no mutable state and may be
// shared freely across concurrent executions.
package backoff

import (
	"math"
	"time"
)

// Strategy computes the base delay before the next retry attempt.
// Attempt numbers are 1-based; implementations must treat attempt < 1 as 1.
// Strategies never enforce a maximum delay. Capping is applied by the retry
// engine, uniformly after jitter.
type Strategy interface {
	// Delay returns the base delay for the given attempt.
	Delay(attempt int) time.Duration
}

// Constant returns the same delay for every attempt.
type Constant struct {
	interval time.Duration
}

// NewConstant creates a constant delay strategy.
func NewConstant(interval time.Duration) *Constant {
	if interval < 0 {
		interval = 0
	}
	return &Constant{interval: interval}
}

// Delay implements Strategy.
func (s *Constant) Delay(attempt int) time.Duration {
	return s.interval
}

// Linear grows the delay by a fixed increment per attempt.
type Linear struct {
	base      time.Duration
	increment time.Duration
}

// NewLinear creates a linear delay strategy: base + increment*(attempt-1).
func NewLinear(base, increment time.Duration) *Linear {
	if base < 0 {
		base = 0
	}
	return &Linear{base: base, increment: increment}
}

// Delay implements Strategy.
func (s *Linear) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := s.base + time.Duration(attempt-1)*s.increment
	if delay < 0 {
		delay = 0
	}
	return delay
}

// DefaultMultiplier is the exponential growth factor used when none is given.
const DefaultMultiplier = 2.0

// Exponential multiplies the delay by a constant factor per attempt.
type Exponential struct {
	base       time.Duration
	multiplier float64
}

// NewExponential creates an exponential delay strategy: base * multiplier^(attempt-1).
// A multiplier <= 0 falls back to DefaultMultiplier.
func NewExponential(base time.Duration, multiplier float64) *Exponential {
	if base < 0 {
		base = 0
	}
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	return &Exponential{base: base, multiplier: multiplier}
}

// Delay implements Strategy.
func (s *Exponential) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(s.base) * math.Pow(s.multiplier, float64(attempt-1))
	return clampDuration(delay)
}

// Fibonacci scales the base delay by the Fibonacci number of the attempt.
type Fibonacci struct {
	base time.Duration
}

// NewFibonacci creates a Fibonacci delay strategy: base * fib(attempt),
// where fib(1) = fib(2) = 1.
func NewFibonacci(base time.Duration) *Fibonacci {
	if base < 0 {
		base = 0
	}
	return &Fibonacci{base: base}
}

// Delay implements Strategy.
func (s *Fibonacci) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	return clampDuration(float64(s.base) * fibonacci(attempt))
}

// fibonacci returns the nth Fibonacci number (fib(1) = fib(2) = 1) computed
// iteratively. Float arithmetic keeps large attempt counts from overflowing.
func fibonacci(n int) float64 {
	if n <= 0 {
		return 0
	}

	a, b := 0.0, 1.0
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

// clampDuration converts a float delay to time.Duration, saturating instead
// of overflowing.
func clampDuration(d float64) time.Duration {
	if d <= 0 {
		return 0
	}
	if d >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}
