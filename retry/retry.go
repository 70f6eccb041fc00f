package retry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/resilience/backoff"
	"github.com/vyrodovalexey/resilience/jitter"
)

// Operation is the unit of work wrapped by the engine. It receives the
// execution's context and must honor its cancellation.
type Operation[T any] func(ctx context.Context) (T, error)

// Execute runs op until it succeeds or a terminal condition is reached,
// waiting between attempts according to strategy and jit.
//
// Per attempt, in order: the overall timeout is checked, the attached
// circuit breaker (if any) is consulted, and only then is op invoked, so an
// expired or blocked execution never incurs the cost of the operation.
// The breaker is informed of every genuine attempt's outcome before the
// retry decision is made.
//
// Terminal outcomes are the operation's own error (when cfg.ShouldRetry
// rejects it), *MaxAttemptsError, *TimeoutError, ErrCircuitOpen, or
// *CancelledError; every terminal path returns exactly one of these.
//
// A nil cfg uses DefaultConfig, a nil strategy uses the default exponential
// backoff, and a nil jit applies no jitter.
func Execute[T any](
	ctx context.Context,
	cfg *Config,
	strategy backoff.Strategy,
	jit jitter.Jitter,
	op Operation[T],
	opts ...Option,
) (T, error) {
	var zero T

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if strategy == nil {
		strategy = backoff.NewFromConfig(nil)
	}
	if jit == nil {
		jit = jitter.NewNone()
	}

	o := newOptions(opts)
	maxAttempts := cfg.GetMaxAttempts()
	start := time.Now()
	executionID := uuid.NewString()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Cancellation while suspended never reaches the operation and
		// never touches the breaker.
		if err := ctx.Err(); err != nil {
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, &CancelledError{Err: err}
		}

		if cfg.Timeout > 0 {
			if elapsed := time.Since(start); elapsed >= cfg.Timeout {
				recordFailure(o.name)
				recordDuration(o.name, false, elapsed)
				return zero, &TimeoutError{Elapsed: elapsed}
			}
		}

		if o.breaker != nil && !o.breaker.Allow() {
			o.logger.Debug("circuit breaker denied request",
				zap.String("operation", o.name),
				zap.String("execution_id", executionID),
				zap.Int("attempt", attempt),
			)
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, ErrCircuitOpen
		}

		recordAttempt(o.name, attempt)

		value, err := op(ctx)
		if err == nil {
			if o.breaker != nil {
				o.breaker.RecordSuccess()
			}
			recordSuccess(o.name)
			recordDuration(o.name, true, time.Since(start))
			return value, nil
		}

		if o.breaker != nil {
			o.breaker.RecordFailure()
		}

		// Non-retryable errors propagate unchanged so callers can still
		// pattern-match their own error type.
		if cfg.ShouldRetry != nil && !cfg.ShouldRetry(err) {
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, err
		}

		// A failure caused by the context being cancelled while the
		// operation was running is a cancellation, not an exhausted budget.
		if ctxErr := ctx.Err(); ctxErr != nil {
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, &CancelledError{Err: ctxErr}
		}

		if attempt == maxAttempts {
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, &MaxAttemptsError{Attempts: maxAttempts, LastErr: err}
		}

		wait := jit.Apply(strategy.Delay(attempt), attempt)
		if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
			wait = cfg.MaxDelay
		}
		if wait < 0 {
			wait = 0
		}

		o.logger.Debug("retrying operation",
			zap.String("operation", o.name),
			zap.String("execution_id", executionID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		recordBackoff(o.name, attempt, wait)

		if o.onRetry != nil {
			o.onRetry(attempt, err, wait)
		}

		select {
		case <-ctx.Done():
			recordFailure(o.name)
			recordDuration(o.name, false, time.Since(start))
			return zero, &CancelledError{Err: ctx.Err()}
		case <-time.After(wait):
		}
	}

	// Unreachable: maxAttempts >= 1, so the loop always returns.
	return zero, &MaxAttemptsError{Attempts: maxAttempts}
}

// ExecuteAttempts is a convenience wrapper around Execute for callers that
// only need an attempt limit: no delay cap, no overall timeout, every error
// retried.
func ExecuteAttempts[T any](
	ctx context.Context,
	maxAttempts int,
	strategy backoff.Strategy,
	jit jitter.Jitter,
	op Operation[T],
	opts ...Option,
) (T, error) {
	return Execute(ctx, &Config{MaxAttempts: maxAttempts}, strategy, jit, op, opts...)
}

// Result is the tagged outcome of a non-failing execution variant.
type Result[T any] struct {
	// Value is the operation's result. Meaningful only when Err is nil.
	Value T

	// Err is the terminal error, if any.
	Err error
}

// Succeeded reports whether the execution produced a value.
func (r Result[T]) Succeeded() bool {
	return r.Err == nil
}

// Unwrap returns the value and error as an ordinary Go pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// ExecuteResult runs the same engine as Execute but always returns a tagged
// Result instead of a (value, error) pair.
func ExecuteResult[T any](
	ctx context.Context,
	cfg *Config,
	strategy backoff.Strategy,
	jit jitter.Jitter,
	op Operation[T],
	opts ...Option,
) Result[T] {
	value, err := Execute(ctx, cfg, strategy, jit, op, opts...)
	return Result[T]{Value: value, Err: err}
}

// ExecuteAttemptsResult is the Result-returning variant of ExecuteAttempts.
func ExecuteAttemptsResult[T any](
	ctx context.Context,
	maxAttempts int,
	strategy backoff.Strategy,
	jit jitter.Jitter,
	op Operation[T],
	opts ...Option,
) Result[T] {
	value, err := ExecuteAttempts(ctx, maxAttempts, strategy, jit, op, opts...)
	return Result[T]{Value: value, Err: err}
}
