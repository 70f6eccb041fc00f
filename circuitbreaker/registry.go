package circuitbreaker

import (
	"sync"

	"go.uber.org/zap"
)

// Registry manages named circuit breakers so that independent call sites
// targeting the same backend can share one breaker instance and agree on
// its health. Sharing remains the caller's choice: executions may equally
// construct and hold their own breakers.
type Registry struct {
	breakers sync.Map
	config   *Config
	logger   *zap.Logger
}

// NewRegistry creates a registry. New breakers inherit the given config.
func NewRegistry(config *Config, logger *zap.Logger) *Registry {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		config: config,
		logger: logger,
	}
}

// Get returns the circuit breaker with the given name, or nil if absent.
func (r *Registry) Get(name string) *CircuitBreaker {
	value, ok := r.breakers.Load(name)
	if !ok {
		return nil
	}
	return value.(*CircuitBreaker)
}

// GetOrCreate returns the existing breaker for name, creating one with the
// registry's default config if absent.
func (r *Registry) GetOrCreate(name string) *CircuitBreaker {
	return r.GetOrCreateWithConfig(name, r.config)
}

// GetOrCreateWithConfig returns the existing breaker for name, creating one
// with the given config if absent. Concurrent creators race safely; the
// first stored instance wins.
func (r *Registry) GetOrCreateWithConfig(name string, config *Config) *CircuitBreaker {
	if value, ok := r.breakers.Load(name); ok {
		return value.(*CircuitBreaker)
	}

	cb := New(name, config, r.logger)

	actual, loaded := r.breakers.LoadOrStore(name, cb)
	if loaded {
		return actual.(*CircuitBreaker)
	}

	r.logger.Debug("created circuit breaker",
		zap.String("name", name),
	)

	return cb
}

// Remove removes a circuit breaker from the registry.
func (r *Registry) Remove(name string) {
	r.breakers.Delete(name)
}

// Names returns the names of all registered circuit breakers.
func (r *Registry) Names() []string {
	var names []string
	r.breakers.Range(func(key, value any) bool {
		names = append(names, key.(string))
		return true
	})
	return names
}

// ResetAll resets every registered breaker to the closed state.
func (r *Registry) ResetAll() {
	r.breakers.Range(func(key, value any) bool {
		value.(*CircuitBreaker).Reset()
		return true
	})
	r.logger.Info("reset all circuit breakers")
}

// Stats returns snapshots for all registered breakers, keyed by name.
func (r *Registry) Stats() map[string]Stats {
	stats := make(map[string]Stats)
	r.breakers.Range(func(key, value any) bool {
		stats[key.(string)] = value.(*CircuitBreaker).Stats()
		return true
	})
	return stats
}

// Count returns the number of registered circuit breakers.
func (r *Registry) Count() int {
	count := 0
	r.breakers.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}
