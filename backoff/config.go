package backoff

import "time"

// Type identifies a delay strategy kind.
type Type string

const (
	// TypeConstant uses the same delay for every attempt.
	TypeConstant Type = "constant"

	// TypeLinear grows the delay by a fixed increment per attempt.
	TypeLinear Type = "linear"

	// TypeExponential multiplies the delay by a factor per attempt.
	TypeExponential Type = "exponential"

	// TypeFibonacci scales the delay by the Fibonacci sequence.
	TypeFibonacci Type = "fibonacci"
)

// Config holds parameters for constructing a delay strategy.
type Config struct {
	// Type is the strategy kind.
	Type Type

	// Base is the initial delay.
	Base time.Duration

	// Increment is the per-attempt increment (linear only).
	Increment time.Duration

	// Multiplier is the growth factor (exponential only).
	Multiplier float64
}

// DefaultConfig returns a Config with default values: exponential backoff
// starting at 100ms and doubling per attempt.
func DefaultConfig() *Config {
	return &Config{
		Type:       TypeExponential,
		Base:       100 * time.Millisecond,
		Multiplier: DefaultMultiplier,
	}
}

// NewFromConfig creates a Strategy from the given configuration.
// A nil config or an unknown type falls back to the default exponential
// strategy.
func NewFromConfig(config *Config) Strategy {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Type {
	case TypeConstant:
		return NewConstant(config.Base)
	case TypeLinear:
		return NewLinear(config.Base, config.Increment)
	case TypeExponential:
		return NewExponential(config.Base, config.Multiplier)
	case TypeFibonacci:
		return NewFibonacci(config.Base)
	default:
		return NewExponential(config.Base, config.Multiplier)
	}
}
