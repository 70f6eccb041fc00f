package circuitbreaker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// State represents the state of a circuit breaker.
type State int

const (
	// StateClosed indicates the circuit is closed and requests are allowed.
	StateClosed State = iota

	// StateOpen indicates the circuit is open and requests are rejected.
	StateOpen

	// StateHalfOpen indicates the circuit is probing whether the backend
	// has recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards call admission with a small state machine:
// Closed -> Open once FailureThreshold consecutive failures accumulate,
// Open -> HalfOpen once ResetTimeout has elapsed (evaluated on Allow, not by
// a background timer), HalfOpen -> Closed on success or back to Open on any
// failure.
//
// All operations are serialized under a single mutex so concurrent
// executions sharing one breaker observe a linearized state. A breaker may
// be shared by reference across any number of retry executions.
type CircuitBreaker struct {
	name   string
	config *Config
	logger *zap.Logger

	mu           sync.RWMutex
	state        State
	failureCount int
	openedAt     time.Time
}

// New creates a circuit breaker. A nil config uses DefaultConfig, a nil
// logger discards state-change logs.
func New(name string, config *Config, logger *zap.Logger) *CircuitBreaker {
	if config == nil {
		config = DefaultConfig()
	}
	config.Validate()

	if logger == nil {
		logger = zap.NewNop()
	}

	return &CircuitBreaker{
		name:   name,
		config: config,
		logger: logger,
		state:  StateClosed,
	}
}

// Allow reports whether a request may proceed.
//
// Closed always admits. Open admits only once ResetTimeout has elapsed since
// the circuit opened, in which case the breaker moves to HalfOpen and the
// failure count is reset. HalfOpen always admits; the breaker does not limit
// concurrent probes.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	var allowed bool
	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if time.Since(cb.openedAt) >= cb.config.ResetTimeout {
			cb.transitionTo(StateHalfOpen)
			cb.failureCount = 0
			allowed = true
		} else {
			allowed = false
		}

	case StateHalfOpen:
		allowed = true

	default:
		allowed = false
	}

	recordRequest(cb.name, allowed)

	return allowed
}

// RecordSuccess records a successful request. The failure count is zeroed,
// and a HalfOpen circuit closes.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	recordSuccess(cb.name)

	if cb.state == StateHalfOpen {
		cb.transitionTo(StateClosed)
	}
}

// RecordFailure records a failed request. Once the failure count reaches
// FailureThreshold the circuit opens with a fresh timestamp, regardless of
// the prior state. Any failure while HalfOpen immediately re-opens.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	recordFailure(cb.name)

	// A failed probe re-opens immediately; the threshold only governs
	// opening from Closed.
	if cb.state == StateHalfOpen || cb.failureCount >= cb.config.FailureThreshold {
		cb.transitionTo(StateOpen)
	}
}

// Reset unconditionally returns the breaker to Closed with a zero failure
// count, discarding any open timer.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	if cb.state != StateClosed {
		cb.transitionTo(StateClosed)
	}

	cb.logger.Info("circuit breaker reset",
		zap.String("name", cb.name),
	)
}

// State returns the current state. Safe to call concurrently with mutating
// operations.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Stats returns a consistent snapshot of the breaker.
func (cb *CircuitBreaker) Stats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		State:        cb.state,
		FailureCount: cb.failureCount,
		OpenedAt:     cb.openedAt,
	}
}

// transitionTo moves the breaker to a new state. Opening always stamps
// openedAt, even when the circuit was already open, so repeated failures
// extend the cooldown. Callers must hold cb.mu.
func (cb *CircuitBreaker) transitionTo(newState State) {
	oldState := cb.state
	cb.state = newState

	if newState == StateOpen {
		cb.openedAt = time.Now()
	}

	if oldState == newState {
		return
	}

	recordStateChange(cb.name, oldState, newState)

	cb.logger.Info("circuit breaker state changed",
		zap.String("name", cb.name),
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
	)

	if cb.config.OnStateChange != nil {
		go cb.config.OnStateChange(cb.name, oldState, newState)
	}
}

// Stats holds a circuit breaker snapshot.
type Stats struct {
	State        State
	FailureCount int
	OpenedAt     time.Time
}
