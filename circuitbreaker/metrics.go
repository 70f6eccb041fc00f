package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// breakerState shows the current state of circuit breakers.
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// breakerRequestsTotal counts admission decisions made by circuit breakers.
	breakerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of admission decisions made by circuit breakers",
		},
		[]string{"name", "result"},
	)

	// breakerRejectedTotal counts requests rejected due to an open circuit.
	breakerRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejected_total",
			Help: "Total number of requests rejected due to an open circuit",
		},
		[]string{"name"},
	)

	// breakerFailuresTotal counts failures recorded by circuit breakers.
	breakerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures recorded by circuit breakers",
		},
		[]string{"name"},
	)

	// breakerSuccessesTotal counts successes recorded by circuit breakers.
	breakerSuccessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_successes_total",
			Help: "Total number of successes recorded by circuit breakers",
		},
		[]string{"name"},
	)

	// breakerStateChangesTotal counts state transitions.
	breakerStateChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// recordRequest records an admission decision.
func recordRequest(name string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "rejected"
		breakerRejectedTotal.WithLabelValues(name).Inc()
	}
	breakerRequestsTotal.WithLabelValues(name, result).Inc()
}

// recordFailure records a failure.
func recordFailure(name string) {
	breakerFailuresTotal.WithLabelValues(name).Inc()
}

// recordSuccess records a success.
func recordSuccess(name string) {
	breakerSuccessesTotal.WithLabelValues(name).Inc()
}

// recordStateChange records a state transition and updates the state gauge.
func recordStateChange(name string, from, to State) {
	breakerStateChangesTotal.WithLabelValues(name, from.String(), to.String()).Inc()
	breakerState.WithLabelValues(name).Set(float64(to))
}
