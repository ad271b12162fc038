package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig controls the retry decorator.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; each further
	// attempt doubles it.
	BaseDelay time.Duration

	// MaxDelay caps the computed delay.
	MaxDelay time.Duration
}

// DefaultRetryConfig returns the standard policy: three attempts with delays
// of 1s and 2s between them (the doubling sequence capped at 8s).
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    8 * time.Second,
	}
}

// delayFor returns the backoff delay after the given 1-based attempt:
// BaseDelay * 2^(attempt-1), capped at MaxDelay.
func (c RetryConfig) delayFor(attempt int) time.Duration {
	delay := c.BaseDelay << (attempt - 1)
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// retryProvider wraps a Provider with exponential-backoff retries for
// transient errors. Permanent errors pass through on the first occurrence.
type retryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger

	// sleep waits for the backoff delay or context cancellation.
	// Replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Verify interface compliance at compile time
var _ Provider = (*retryProvider)(nil)

// NewRetryProvider decorates a provider with the retry policy. A zero-valued
// config falls back to the default policy.
func NewRetryProvider(inner Provider, config RetryConfig, logger *slog.Logger) Provider {
	if inner == nil {
		panic("inner provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxAttempts <= 0 {
		config = DefaultRetryConfig()
	}

	return &retryProvider{
		inner:  inner,
		config: config,
		logger: logger.With(slog.String("component", "llm_retry")),
		sleep:  sleepContext,
	}
}

// ModelName implements Provider.
func (p *retryProvider) ModelName() string {
	return p.inner.ModelName()
}

// Generate implements Provider. It attempts the inner call up to
// MaxAttempts times, backing off between attempts for transient errors.
func (p *retryProvider) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		p.logger.DebugContext(ctx, "LLM request attempt",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.config.MaxAttempts))

		reply, err := p.inner.Generate(ctx, req)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !IsTransient(err) {
			p.logger.WarnContext(ctx, "permanent error, not retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return "", err
		}

		if attempt == p.config.MaxAttempts {
			break
		}

		delay := p.config.delayFor(attempt)
		p.logger.WarnContext(ctx, "LLM request failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.config.MaxAttempts),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		if err := p.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("%w: %v", ErrConnection, err)
		}
	}

	return "", fmt.Errorf("exceeded maximum retry attempts (%d): %w", p.config.MaxAttempts, lastErr)
}

// sleepContext waits for the delay or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
