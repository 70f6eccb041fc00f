package circuitbreaker

import (
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TwoStep adapts a sony/gobreaker two-step breaker to the Allow /
// RecordSuccess / RecordFailure shape used by the retry engine, for callers
// that prefer gobreaker's counting semantics over the built-in breaker.
//
// gobreaker hands out one completion callback per admitted request; the
// adapter queues them and settles the oldest on each recorded outcome, so
// outcomes pair with admissions in FIFO order.
type TwoStep struct {
	cb     *gobreaker.TwoStepCircuitBreaker
	logger *zap.Logger

	mu      sync.Mutex
	pending []func(bool)
}

// NewTwoStep creates a gobreaker-backed breaker that opens after
// failureThreshold consecutive failures and admits a probe after
// resetTimeout.
func NewTwoStep(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger) *TwoStep {
	if failureThreshold < 1 {
		failureThreshold = DefaultFailureThreshold
	}
	if resetTimeout < 0 {
		resetTimeout = DefaultResetTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &TwoStep{logger: logger}

	threshold := uint32(failureThreshold) //nolint:gosec // bounds checked above

	settings := gobreaker.Settings{
		Name:    name,
		Timeout: resetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			t.logger.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	t.cb = gobreaker.NewTwoStepCircuitBreaker(settings)
	return t
}

// Allow reports whether a request may proceed.
func (t *TwoStep) Allow() bool {
	done, err := t.cb.Allow()
	if err != nil {
		return false
	}

	t.mu.Lock()
	t.pending = append(t.pending, done)
	t.mu.Unlock()

	return true
}

// RecordSuccess settles the oldest admitted request as successful.
func (t *TwoStep) RecordSuccess() {
	t.settle(true)
}

// RecordFailure settles the oldest admitted request as failed.
func (t *TwoStep) RecordFailure() {
	t.settle(false)
}

// State returns the underlying gobreaker state.
func (t *TwoStep) State() gobreaker.State {
	return t.cb.State()
}

func (t *TwoStep) settle(success bool) {
	t.mu.Lock()
	var done func(bool)
	if len(t.pending) > 0 {
		done = t.pending[0]
		t.pending = t.pending[1:]
	}
	t.mu.Unlock()

	if done != nil {
		done(success)
	}
}
