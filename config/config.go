// Package config loads named resilience profiles from YAML, so retry,
// backoff, jitter, and circuit breaker settings can live in configuration
// files instead of code.
//
// Example profile file:
//
//	profiles:
//	  payments:
//	    retry:
//	      maxAttempts: 5
//	      maxDelay: "30s"
//	      timeout: "2m"
//	    backoff:
//	      type: exponential
//	      base: "100ms"
//	      multiplier: 2.0
//	    jitter:
//	      type: full
//	    circuitBreaker:
//	      enabled: true
//	      failureThreshold: 5
//	      resetTimeout: "60s"
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/resilience/backoff"
	"github.com/vyrodovalexey/resilience/circuitbreaker"
	"github.com/vyrodovalexey/resilience/jitter"
	"github.com/vyrodovalexey/resilience/retry"
)

// RetrySettings configures the retry engine for a profile.
type RetrySettings struct {
	MaxAttempts int      `json:"maxAttempts" yaml:"maxAttempts"`
	MaxDelay    Duration `json:"maxDelay" yaml:"maxDelay"`
	Timeout     Duration `json:"timeout" yaml:"timeout"`
}

// BackoffSettings configures the delay strategy for a profile.
type BackoffSettings struct {
	Type       string   `json:"type" yaml:"type"`
	Base       Duration `json:"base" yaml:"base"`
	Increment  Duration `json:"increment" yaml:"increment"`
	Multiplier float64  `json:"multiplier" yaml:"multiplier"`
}

// JitterSettings configures the jitter for a profile.
type JitterSettings struct {
	Type string   `json:"type" yaml:"type"`
	Base Duration `json:"base" yaml:"base"`
}

// BreakerSettings configures the optional circuit breaker for a profile.
type BreakerSettings struct {
	Enabled          bool     `json:"enabled" yaml:"enabled"`
	FailureThreshold int      `json:"failureThreshold" yaml:"failureThreshold"`
	ResetTimeout     Duration `json:"resetTimeout" yaml:"resetTimeout"`
}

// Profile is one named resilience policy.
type Profile struct {
	Retry          RetrySettings   `json:"retry" yaml:"retry"`
	Backoff        BackoffSettings `json:"backoff" yaml:"backoff"`
	Jitter         JitterSettings  `json:"jitter" yaml:"jitter"`
	CircuitBreaker BreakerSettings `json:"circuitBreaker" yaml:"circuitBreaker"`
}

// File is the root of a profile configuration file.
type File struct {
	Profiles map[string]Profile `json:"profiles" yaml:"profiles"`
}

// Load reads and parses a profile file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied configuration
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return Parse(data)
}

// Parse parses profile YAML and validates every profile.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	for name, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return &f, nil
}

// Profile returns the named profile.
func (f *File) Profile(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// Validate checks the profile for values that cannot be normalized away.
func (p Profile) Validate() error {
	switch backoff.Type(p.Backoff.Type) {
	case "", backoff.TypeConstant, backoff.TypeLinear, backoff.TypeExponential, backoff.TypeFibonacci:
	default:
		return fmt.Errorf("unknown backoff type %q", p.Backoff.Type)
	}

	switch jitter.Type(p.Jitter.Type) {
	case "", jitter.TypeNone, jitter.TypeFull, jitter.TypeEqual, jitter.TypeDecorrelated:
	default:
		return fmt.Errorf("unknown jitter type %q", p.Jitter.Type)
	}

	if p.Retry.MaxAttempts < 0 {
		return fmt.Errorf("maxAttempts must not be negative, got %d", p.Retry.MaxAttempts)
	}

	return nil
}

// Plan is a ready-to-use assembly of one profile.
type Plan struct {
	Retry    *retry.Config
	Strategy backoff.Strategy
	Jitter   jitter.Jitter
	Breaker  *circuitbreaker.CircuitBreaker
}

// Options returns the retry options implied by the plan, for passing
// straight to retry.Execute.
func (p *Plan) Options(name string) []retry.Option {
	opts := []retry.Option{retry.WithName(name)}
	if p.Breaker != nil {
		opts = append(opts, retry.WithCircuitBreaker(p.Breaker))
	}
	return opts
}

// Build assembles the profile into engine-ready policy objects. The breaker
// is nil unless enabled. Zero-valued settings fall back to package defaults.
func (p Profile) Build(name string, logger *zap.Logger) *Plan {
	retryCfg := &retry.Config{
		MaxAttempts: p.Retry.MaxAttempts,
		MaxDelay:    p.Retry.MaxDelay.Duration(),
		Timeout:     p.Retry.Timeout.Duration(),
	}
	if retryCfg.MaxAttempts < 1 {
		retryCfg.MaxAttempts = retry.DefaultMaxAttempts
	}

	backoffCfg := backoff.DefaultConfig()
	if p.Backoff.Type != "" {
		backoffCfg = &backoff.Config{
			Type:       backoff.Type(p.Backoff.Type),
			Base:       p.Backoff.Base.Duration(),
			Increment:  p.Backoff.Increment.Duration(),
			Multiplier: p.Backoff.Multiplier,
		}
	}

	jitterCfg := &jitter.Config{Type: jitter.TypeNone}
	if p.Jitter.Type != "" {
		jitterCfg = &jitter.Config{
			Type: jitter.Type(p.Jitter.Type),
			Base: p.Jitter.Base.Duration(),
		}
	}

	plan := &Plan{
		Retry:    retryCfg,
		Strategy: backoff.NewFromConfig(backoffCfg),
		Jitter:   jitter.NewFromConfig(jitterCfg),
	}

	if p.CircuitBreaker.Enabled {
		breakerCfg := &circuitbreaker.Config{
			FailureThreshold: p.CircuitBreaker.FailureThreshold,
			ResetTimeout:     p.CircuitBreaker.ResetTimeout.Duration(),
		}
		// An omitted resetTimeout means the default, not an instant probe.
		if breakerCfg.ResetTimeout == 0 {
			breakerCfg.ResetTimeout = circuitbreaker.DefaultResetTimeout
		}
		plan.Breaker = circuitbreaker.New(name, breakerCfg, logger)
	}

	return plan
}
