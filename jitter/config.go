package jitter

import "time"

// Type identifies a jitter kind.
type Type string

const (
	// TypeNone applies no randomization.
	TypeNone Type = "none"

	// TypeFull samples uniformly in [0, delay].
	TypeFull Type = "full"

	// TypeEqual samples uniformly in [delay/2, delay].
	TypeEqual Type = "equal"

	// TypeDecorrelated samples uniformly in [base, 3*delay].
	TypeDecorrelated Type = "decorrelated"
)

// Config holds parameters for constructing a jitter.
type Config struct {
	// Type is the jitter kind.
	Type Type

	// Base is the lower bound (decorrelated only).
	Base time.Duration
}

// DefaultConfig returns a Config with default values: full jitter, which is
// the recommended choice for desynchronizing independent retriers.
func DefaultConfig() *Config {
	return &Config{Type: TypeFull}
}

// NewFromConfig creates a Jitter from the given configuration.
// A nil config or an unknown type falls back to full jitter.
func NewFromConfig(config *Config) Jitter {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Type {
	case TypeNone:
		return NewNone()
	case TypeFull:
		return NewFull()
	case TypeEqual:
		return NewEqual()
	case TypeDecorrelated:
		return NewDecorrelated(config.Base)
	default:
		return NewFull()
	}
}
