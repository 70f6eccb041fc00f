// Package jitter provides randomized perturbation of computed backoff delays
// to desynchronize concurrent retriers.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// Jitter randomizes a base delay. Implementations must be safe for concurrent
// use and must never return a negative duration, even for a zero delay.
type Jitter interface {
	// Apply returns the randomized delay for the given base delay and attempt.
	Apply(delay time.Duration, attempt int) time.Duration
}

// None passes the delay through unchanged.
type None struct{}

// NewNone creates a jitter that applies no randomization.
func NewNone() *None {
	return &None{}
}

// Apply implements Jitter.
func (j *None) Apply(delay time.Duration, attempt int) time.Duration {
	if delay < 0 {
		return 0
	}
	return delay
}

// Full samples uniformly in [0, delay].
// This provides the widest spread for preventing thundering herd.
type Full struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewFull creates a full jitter.
func NewFull() *Full {
	return &Full{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // retry timing is not security-sensitive
	}
}

// Apply implements Jitter.
func (j *Full) Apply(delay time.Duration, attempt int) time.Duration {
	if delay <= 0 {
		return 0
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	return time.Duration(j.rand.Float64() * float64(delay))
}

// Equal samples uniformly in [delay/2, delay]: half fixed plus half random.
// This balances spread against keeping delays close to the computed curve.
type Equal struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewEqual creates an equal jitter.
func NewEqual() *Equal {
	return &Equal{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // retry timing is not security-sensitive
	}
}

// Apply implements Jitter.
func (j *Equal) Apply(delay time.Duration, attempt int) time.Duration {
	if delay <= 0 {
		return 0
	}

	half := float64(delay) / 2

	j.mu.Lock()
	defer j.mu.Unlock()
	return time.Duration(half + j.rand.Float64()*half)
}

// DefaultDecorrelatedBase is the lower bound used when none is given.
const DefaultDecorrelatedBase = time.Second

// Decorrelated samples uniformly in [base, 3*delay].
//
// Unlike the AWS decorrelated jitter scheme, this variant is memoryless: it
// does not track the previously returned delay across attempts. Each call
// samples against the incoming delay only. When base exceeds 3*delay the
// sampling range is inverted and the lower bound wins: base is returned.
type Decorrelated struct {
	base time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewDecorrelated creates a decorrelated jitter with the given lower bound.
// A base <= 0 falls back to DefaultDecorrelatedBase.
func NewDecorrelated(base time.Duration) *Decorrelated {
	if base <= 0 {
		base = DefaultDecorrelatedBase
	}
	return &Decorrelated{
		base: base,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // retry timing is not security-sensitive
	}
}

// Apply implements Jitter.
func (j *Decorrelated) Apply(delay time.Duration, attempt int) time.Duration {
	if delay < 0 {
		delay = 0
	}

	upper := 3 * float64(delay)
	lower := float64(j.base)
	if upper <= lower {
		return j.base
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	return time.Duration(lower + j.rand.Float64()*(upper-lower))
}
