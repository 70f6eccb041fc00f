package retry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// retryAttemptsTotal counts attempts made by the engine.
	retryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of attempts made by the retry engine",
		},
		[]string{"operation", "attempt"},
	)

	// retrySuccessTotal counts executions that ended in success.
	retrySuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_success_total",
			Help: "Total number of executions that ended in success",
		},
		[]string{"operation"},
	)

	// retryFailureTotal counts executions that ended in a terminal failure.
	retryFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_failure_total",
			Help: "Total number of executions that ended in a terminal failure",
		},
		[]string{"operation"},
	)

	// retryDuration measures the total duration of executions.
	retryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_duration_seconds",
			Help:    "Total duration of retry executions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "result"},
	)

	// retryBackoffDuration measures inter-attempt waits.
	retryBackoffDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_backoff_duration_seconds",
			Help:    "Duration of inter-attempt waits in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "attempt"},
	)
)

func recordAttempt(operation string, attempt int) {
	retryAttemptsTotal.WithLabelValues(operation, strconv.Itoa(attempt)).Inc()
}

func recordSuccess(operation string) {
	retrySuccessTotal.WithLabelValues(operation).Inc()
}

func recordFailure(operation string) {
	retryFailureTotal.WithLabelValues(operation).Inc()
}

func recordDuration(operation string, success bool, elapsed time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	retryDuration.WithLabelValues(operation, result).Observe(elapsed.Seconds())
}

func recordBackoff(operation string, attempt int, wait time.Duration) {
	retryBackoffDuration.WithLabelValues(operation, strconv.Itoa(attempt)).Observe(wait.Seconds())
}
