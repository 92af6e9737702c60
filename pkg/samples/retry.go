package samples

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig governs the bounded backoff loop. The delay grows by
// DelayIncrement after every failed attempt and saturates at MaxDelay.
type RetryConfig struct {
	// MaxAttempts is the total attempt budget, including the first.
	MaxAttempts int `yaml:"max_attempts"`

	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration `yaml:"base_delay"`

	// DelayIncrement is added to the delay after each failed attempt.
	DelayIncrement time.Duration `yaml:"delay_increment"`

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration `yaml:"max_delay"`
}

// DefaultRetryConfig returns the budget used when waiting out RBAC
// propagation after a role assignment: 12 attempts, 10s base delay
// growing by 5s to a 30s cap.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    12,
		BaseDelay:      10 * time.Second,
		DelayIncrement: 5 * time.Second,
		MaxDelay:       30 * time.Second,
	}
}

// ExhaustedError reports that the retry budget ran out. Callers decide
// whether exhaustion is fatal; the setup sample treats it as a warning.
type ExhaustedError struct {
	// Attempts is the number of attempts made.
	Attempts int

	// LastErr is the failure from the final attempt.
	LastErr error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.LastErr)
}

// Unwrap returns the final attempt's error.
func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Runner retries an idempotent operation until it succeeds or the
// attempt budget is exhausted. Idempotency is the caller's contract;
// the runner does not verify it. Every failure is treated as
// potentially transient.
type Runner struct {
	cfg    RetryConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSleep replaces the delay implementation. Mainly useful for testing.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) RunnerOption {
	return func(r *Runner) {
		r.sleep = sleep
	}
}

// NewRunner creates a retry runner with the given budget.
func NewRunner(cfg RetryConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: slog.Default(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run attempts op until it succeeds or the budget is exhausted. Success
// returns immediately with no trailing delay. Exhaustion returns an
// *ExhaustedError wrapping the last failure. Context cancellation
// aborts mid-backoff and returns the context's error.
func (r *Runner) Run(ctx context.Context, name string, op func(ctx context.Context) error) error {
	delay := r.cfg.BaseDelay
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry", "op", name, "attempts", attempt)
			}
			return nil
		}
		if attempt >= r.cfg.MaxAttempts {
			return &ExhaustedError{Attempts: attempt, LastErr: err}
		}

		r.logger.Debug("attempt failed, backing off",
			"op", name, "attempt", attempt, "delay", delay, "error", err)
		if err := r.sleep(ctx, delay); err != nil {
			return err
		}
		delay += r.cfg.DelayIncrement
		if delay > r.cfg.MaxDelay {
			delay = r.cfg.MaxDelay
		}
	}
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
