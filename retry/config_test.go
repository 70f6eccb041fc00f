package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.MaxDelay)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Nil(t, cfg.ShouldRetry)
}

func TestConservativeConfig(t *testing.T) {
	t.Parallel()

	cfg := ConservativeConfig()

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}

func TestAggressiveConfig(t *testing.T) {
	t.Parallel()

	cfg := AggressiveConfig()

	assert.Equal(t, 10, cfg.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.MaxDelay)
	assert.Equal(t, 300*time.Second, cfg.Timeout)
}

func TestConfig_GetMaxAttempts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *Config
		expected int
	}{
		{"nil config", nil, 3},
		{"zero value", &Config{MaxAttempts: 0}, 3},
		{"negative value", &Config{MaxAttempts: -1}, 3},
		{"custom value", &Config{MaxAttempts: 7}, 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.cfg.GetMaxAttempts())
		})
	}
}

func TestConfig_Builders(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig().
		WithMaxAttempts(8).
		WithMaxDelay(time.Second).
		WithTimeout(time.Minute).
		WithShouldRetry(func(err error) bool { return false })

	assert.Equal(t, 8, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.MaxDelay)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.False(t, cfg.ShouldRetry(errBoom))
}

func TestForErrors_PredicateMatchesSet(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")

	cfg := ForErrors(4, time.Second, time.Minute, errA, errB)

	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.MaxDelay)
	assert.Equal(t, time.Minute, cfg.Timeout)

	require.NotNil(t, cfg.ShouldRetry)
	assert.True(t, cfg.ShouldRetry(errA))
	assert.True(t, cfg.ShouldRetry(errB))
	assert.False(t, cfg.ShouldRetry(errBoom))
}

func TestForErrors_MatchesWrappedErrors(t *testing.T) {
	t.Parallel()

	target := errors.New("target")
	cfg := ForErrors(3, 0, 0, target)

	wrapped := fmt.Errorf("outer: %w", target)
	assert.True(t, cfg.ShouldRetry(wrapped))
}

func TestForErrors_EmptySetRetriesNothing(t *testing.T) {
	t.Parallel()

	cfg := ForErrors(3, 0, 0)
	assert.False(t, cfg.ShouldRetry(errBoom))
}
