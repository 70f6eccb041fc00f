package circuitbreaker

import (
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTwoStep_AllowsWhileClosed(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-closed", 3, time.Hour, zap.NewNop())

	assert.Equal(t, gobreaker.StateClosed, ts.State())
	assert.True(t, ts.Allow())
	ts.RecordSuccess()
	assert.Equal(t, gobreaker.StateClosed, ts.State())
}

func TestTwoStep_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-open", 2, time.Hour, zap.NewNop())

	assert.True(t, ts.Allow())
	ts.RecordFailure()
	assert.True(t, ts.Allow())
	ts.RecordFailure()

	assert.Equal(t, gobreaker.StateOpen, ts.State())
	assert.False(t, ts.Allow())
}

func TestTwoStep_SuccessResetsStreak(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-streak", 2, time.Hour, zap.NewNop())

	assert.True(t, ts.Allow())
	ts.RecordFailure()
	assert.True(t, ts.Allow())
	ts.RecordSuccess()
	assert.True(t, ts.Allow())
	ts.RecordFailure()

	// The streak was broken, so the circuit stays closed.
	assert.Equal(t, gobreaker.StateClosed, ts.State())
}

func TestTwoStep_RecoversAfterResetTimeout(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-recover", 1, 20*time.Millisecond, zap.NewNop())

	assert.True(t, ts.Allow())
	ts.RecordFailure()
	assert.False(t, ts.Allow())

	time.Sleep(30 * time.Millisecond)

	assert.True(t, ts.Allow())
	ts.RecordSuccess()
}

func TestTwoStep_SettleWithoutAdmissionIsNoop(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-noop", 2, time.Hour, zap.NewNop())

	// Outcomes without a matching admission must not panic or count.
	ts.RecordFailure()
	ts.RecordSuccess()

	assert.Equal(t, gobreaker.StateClosed, ts.State())
}

func TestTwoStep_NormalizesArguments(t *testing.T) {
	t.Parallel()

	ts := NewTwoStep("two-step-norm", 0, -time.Second, nil)

	assert.True(t, ts.Allow())
	ts.RecordSuccess()
	assert.Equal(t, gobreaker.StateClosed, ts.State())
}
