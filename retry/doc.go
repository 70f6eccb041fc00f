// Package retry executes fallible operations with configurable attempt
// limits, backoff, jitter, and optional circuit breaking.
//
// # Features
//
//   - Configurable maximum attempts, delay cap, and wall-clock budget
//   - Pluggable delay strategies (constant, linear, exponential, Fibonacci)
//   - Pluggable jitter (none, full, equal, decorrelated)
//   - Optional circuit breaker shared across executions
//   - Caller-supplied error classification
//   - Context-aware cancellation at every suspension point
//
// # Usage
//
// Execute an operation with the default policy:
//
//	value, err := retry.Execute(ctx, retry.DefaultConfig(),
//	    backoff.NewExponential(100*time.Millisecond, 2.0),
//	    jitter.NewFull(),
//	    func(ctx context.Context) (string, error) {
//	        return callExternalService(ctx)
//	    })
//
// Attach a circuit breaker shared with other call sites:
//
//	cb := circuitbreaker.New("payments", nil, logger)
//	value, err := retry.Execute(ctx, cfg, strategy, jit, op,
//	    retry.WithCircuitBreaker(cb),
//	    retry.WithName("payments"),
//	)
//
// # Error taxonomy
//
// Every terminal path yields exactly one of: the operation's own error
// (when the retry predicate rejects it), *MaxAttemptsError, *TimeoutError,
// ErrCircuitOpen, or *CancelledError.
package retry
