package retry

import (
	"time"

	"go.uber.org/zap"
)

// Breaker is the admission interface consulted by the engine. It is
// satisfied by *circuitbreaker.CircuitBreaker and by the gobreaker-backed
// *circuitbreaker.TwoStep adapter.
//
// The engine calls Allow before each attempt and reports the outcome of
// every genuine attempt; admission denials and cancellations are never
// reported, so the breaker's view of health reflects real attempts only.
type Breaker interface {
	Allow() bool
	RecordSuccess()
	RecordFailure()
}

// OnRetryFunc is called before each inter-attempt wait with the 1-based
// attempt that just failed, its error, and the wait about to be taken
// (after jitter and capping).
type OnRetryFunc func(attempt int, err error, wait time.Duration)

// Option configures an execution.
type Option func(*options)

type options struct {
	breaker Breaker
	logger  *zap.Logger
	onRetry OnRetryFunc
	name    string
}

const defaultOperationName = "operation"

func newOptions(opts []Option) *options {
	o := &options{
		logger: zap.NewNop(),
		name:   defaultOperationName,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCircuitBreaker attaches a circuit breaker to the execution. The same
// breaker may be attached to any number of concurrent executions.
func WithCircuitBreaker(b Breaker) Option {
	return func(o *options) {
		o.breaker = b
	}
}

// WithLogger sets the logger used for per-retry debug logs.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnRetry sets a callback invoked before each inter-attempt wait.
func WithOnRetry(fn OnRetryFunc) Option {
	return func(o *options) {
		o.onRetry = fn
	}
}

// WithName labels the execution in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
