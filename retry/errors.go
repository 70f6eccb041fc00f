package retry

import (
	"errors"
	"fmt"
	"time"
)

// ErrCircuitOpen is returned when the attached circuit breaker denies
// admission. No attempt is made and no attempt slot is consumed.
var ErrCircuitOpen = errors.New("retry: circuit breaker is open")

// MaxAttemptsError is returned when every permitted attempt failed with a
// retryable error. It unwraps to the error from the final attempt.
type MaxAttemptsError struct {
	// Attempts is the number of attempts made.
	Attempts int

	// LastErr is the error returned by the final attempt.
	LastErr error
}

// Error implements the error interface.
func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("retry: all %d attempts failed, last error: %v", e.Attempts, e.LastErr)
}

// Unwrap allows errors.Is and errors.As to reach the last attempt's error.
func (e *MaxAttemptsError) Unwrap() error {
	return e.LastErr
}

// TimeoutError is returned when the execution's wall-clock budget was
// exhausted before a further attempt could start. The timeout gates starting
// attempts; it never interrupts a running operation.
type TimeoutError struct {
	// Elapsed is the wall-clock time since the execution started.
	Elapsed time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("retry: timeout after %s", e.Elapsed)
}

// CancelledError is returned when the surrounding context is cancelled while
// the execution is suspended, either before an attempt or during the
// inter-attempt wait. It unwraps to the context's error, so
// errors.Is(err, context.Canceled) still holds.
type CancelledError struct {
	// Err is the underlying context error.
	Err error
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	return fmt.Sprintf("retry: cancelled: %v", e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the context error.
func (e *CancelledError) Unwrap() error {
	return e.Err
}
