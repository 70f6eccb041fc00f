package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/resilience/backoff"
	"github.com/vyrodovalexey/resilience/jitter"
)

const profilesYAML = `
profiles:
  payments:
    retry:
      maxAttempts: 5
      maxDelay: "30s"
      timeout: "2m"
    backoff:
      type: exponential
      base: "100ms"
      multiplier: 2.0
    jitter:
      type: full
    circuitBreaker:
      enabled: true
      failureThreshold: 5
      resetTimeout: "60s"
  search:
    retry:
      maxAttempts: 2
    backoff:
      type: constant
      base: "50ms"
`

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(profilesYAML))
	require.NoError(t, err)
	require.Len(t, f.Profiles, 2)

	p, err := f.Profile("payments")
	require.NoError(t, err)

	assert.Equal(t, 5, p.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, p.Retry.MaxDelay.Duration())
	assert.Equal(t, 2*time.Minute, p.Retry.Timeout.Duration())
	assert.Equal(t, "exponential", p.Backoff.Type)
	assert.Equal(t, 100*time.Millisecond, p.Backoff.Base.Duration())
	assert.Equal(t, 2.0, p.Backoff.Multiplier)
	assert.Equal(t, "full", p.Jitter.Type)
	assert.True(t, p.CircuitBreaker.Enabled)
	assert.Equal(t, 5, p.CircuitBreaker.FailureThreshold)
	assert.Equal(t, time.Minute, p.CircuitBreaker.ResetTimeout.Duration())
}

func TestParse_UnknownBackoffType(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
profiles:
  bad:
    backoff:
      type: quadratic
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backoff type")
}

func TestParse_UnknownJitterType(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
profiles:
  bad:
    jitter:
      type: sparkly
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown jitter type")
}

func TestParse_NegativeMaxAttempts(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
profiles:
  bad:
    retry:
      maxAttempts: -1
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxAttempts")
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("profiles: ["))
	assert.Error(t, err)
}

func TestFile_ProfileMissing(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(profilesYAML))
	require.NoError(t, err)

	_, err = f.Profile("absent")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Profiles, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProfile_Build(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(profilesYAML))
	require.NoError(t, err)

	p, err := f.Profile("payments")
	require.NoError(t, err)

	plan := p.Build("payments", zap.NewNop())

	assert.Equal(t, 5, plan.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, plan.Retry.MaxDelay)
	assert.Equal(t, 2*time.Minute, plan.Retry.Timeout)
	assert.IsType(t, &backoff.Exponential{}, plan.Strategy)
	assert.IsType(t, &jitter.Full{}, plan.Jitter)
	require.NotNil(t, plan.Breaker)
	assert.Equal(t, "payments", plan.Breaker.Name())

	opts := plan.Options("payments")
	assert.Len(t, opts, 2)
}

func TestProfile_BuildDefaults(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(profilesYAML))
	require.NoError(t, err)

	p, err := f.Profile("search")
	require.NoError(t, err)

	plan := p.Build("search", zap.NewNop())

	assert.Equal(t, 2, plan.Retry.MaxAttempts)
	assert.IsType(t, &backoff.Constant{}, plan.Strategy)
	// No jitter section means no randomization.
	assert.IsType(t, &jitter.None{}, plan.Jitter)
	assert.Nil(t, plan.Breaker)

	opts := plan.Options("search")
	assert.Len(t, opts, 1)
}

func TestProfile_BuildZeroAttemptsFallsBack(t *testing.T) {
	t.Parallel()

	plan := Profile{}.Build("empty", zap.NewNop())

	assert.Equal(t, 3, plan.Retry.MaxAttempts)
	assert.IsType(t, &backoff.Exponential{}, plan.Strategy)
}
