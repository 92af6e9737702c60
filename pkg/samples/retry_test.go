package samples

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedSleep captures requested delays instead of blocking.
func recordedSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestRunnerSucceedsAfterRetries(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    12,
		BaseDelay:      10 * time.Second,
		DelayIncrement: 5 * time.Second,
		MaxDelay:       30 * time.Second,
	}

	var delays []time.Duration
	attempts := 0
	r := NewRunner(cfg, WithSleep(recordedSleep(&delays)))

	err := r.Run(context.Background(), "write secret", func(context.Context) error {
		attempts++
		if attempts <= 3 {
			return errors.New("forbidden")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, []time.Duration{10 * time.Second, 15 * time.Second, 20 * time.Second}, delays)
}

func TestRunnerImmediateSuccess(t *testing.T) {
	var delays []time.Duration
	r := NewRunner(DefaultRetryConfig(), WithSleep(recordedSleep(&delays)))

	err := r.Run(context.Background(), "noop", func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Empty(t, delays, "success must not be followed by a delay")
}

func TestRunnerExhaustsBudget(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    5,
		BaseDelay:      time.Second,
		DelayIncrement: time.Second,
		MaxDelay:       3 * time.Second,
	}

	var delays []time.Duration
	attempts := 0
	r := NewRunner(cfg, WithSleep(recordedSleep(&delays)))

	err := r.Run(context.Background(), "always fails", func(context.Context) error {
		attempts++
		return errors.New("still propagating")
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, attempts)
	assert.Equal(t, 5, exhausted.Attempts)
	assert.EqualError(t, exhausted.LastErr, "still propagating")
	// No delay after the final attempt.
	assert.Len(t, delays, 4)
}

func TestRunnerDelaySaturatesAtCap(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    12,
		BaseDelay:      10 * time.Second,
		DelayIncrement: 5 * time.Second,
		MaxDelay:       30 * time.Second,
	}

	var delays []time.Duration
	r := NewRunner(cfg, WithSleep(recordedSleep(&delays)))

	err := r.Run(context.Background(), "always fails", func(context.Context) error {
		return errors.New("nope")
	})
	require.Error(t, err)

	require.Len(t, delays, 11)
	assert.Equal(t, []time.Duration{
		10 * time.Second, 15 * time.Second, 20 * time.Second, 25 * time.Second,
	}, delays[:4])
	for i, d := range delays {
		assert.LessOrEqual(t, d, cfg.MaxDelay)
		if i > 0 {
			assert.GreaterOrEqual(t, d, delays[i-1], "delay must be non-decreasing")
		}
	}
	assert.Equal(t, cfg.MaxDelay, delays[len(delays)-1])
}

func TestRunnerContextCancellationAbortsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(RetryConfig{
		MaxAttempts:    3,
		BaseDelay:      time.Hour, // would hang without cancellation
		DelayIncrement: time.Hour,
		MaxDelay:       time.Hour,
	})

	attempts := 0
	err := r.Run(ctx, "canceled", func(context.Context) error {
		attempts++
		return errors.New("fail")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 12, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.BaseDelay)
	assert.Equal(t, 5*time.Second, cfg.DelayIncrement)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
}
