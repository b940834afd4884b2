package genai

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// RetryPolicy retries rate-limited and overloaded calls with growing delays.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *slog.Logger

	// sleep waits for d or until ctx ends; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries once after a base delay of two seconds.
func DefaultRetryPolicy(logger *slog.Logger) RetryPolicy {
	return RetryPolicy{
		MaxRetries: 1,
		BaseDelay:  2 * time.Second,
		Logger:     logger,
	}
}

// Retryable reports whether a status is worth retrying.
func Retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// Delay is base*3 for 429 or base*2 otherwise, grown by 1.5x per attempt.
func (p RetryPolicy) Delay(code, attempt int) time.Duration {
	mult := 2.0
	if code == http.StatusTooManyRequests {
		mult = 3.0
	}

	return time.Duration(float64(p.BaseDelay) * mult * math.Pow(1.5, float64(attempt)))
}

// Retry calls fn until it succeeds, fails with a non-retryable error, or the
// attempts run out. The last error is returned unchanged.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}

		code := StatusCode(err)
		if !Retryable(code) || attempt >= p.MaxRetries {
			return v, err
		}

		delay := p.Delay(code, attempt)
		if p.Logger != nil {
			p.Logger.Warn("Upstream call failed, retrying",
				"status", code, "attempt", attempt+1, "delay", delay.String())
		}
		if serr := sleep(ctx, delay); serr != nil {
			return v, serr
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
