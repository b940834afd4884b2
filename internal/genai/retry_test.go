package genai //nolint:testpackage // Needs access to the sleep hook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingPolicy(maxRetries int, slept *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  time.Second,
		sleep: func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries 429 with tripled delay", func(t *testing.T) {
		var slept []time.Duration
		calls := 0
		v, err := Retry(ctx, recordingPolicy(2, &slept), func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", &StatusError{Code: 429}
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{3 * time.Second, 4500 * time.Millisecond}, slept)
	})

	t.Run("retries 503 with doubled delay then gives up", func(t *testing.T) {
		var slept []time.Duration
		calls := 0
		_, err := Retry(ctx, recordingPolicy(1, &slept), func(context.Context) (int, error) {
			calls++
			return 0, &StatusError{Code: 503, Message: "overloaded"}
		})

		assert.Equal(t, 503, StatusCode(err))
		assert.Equal(t, 2, calls)
		assert.Equal(t, []time.Duration{2 * time.Second}, slept)
	})

	t.Run("does not retry other statuses", func(t *testing.T) {
		var slept []time.Duration
		calls := 0
		_, err := Retry(ctx, recordingPolicy(3, &slept), func(context.Context) (int, error) {
			calls++
			return 0, &StatusError{Code: 401}
		})

		assert.Equal(t, 401, StatusCode(err))
		assert.Equal(t, 1, calls)
		assert.Empty(t, slept)
	})

	t.Run("does not retry plain errors", func(t *testing.T) {
		calls := 0
		_, err := Retry(ctx, DefaultRetryPolicy(nil), func(context.Context) (int, error) {
			calls++
			return 0, errors.New("boom")
		})

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		p := RetryPolicy{MaxRetries: 1, BaseDelay: time.Hour}

		_, err := Retry(cctx, p, func(context.Context) (int, error) {
			return 0, &StatusError{Code: 429}
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDelay(t *testing.T) {
	p := RetryPolicy{BaseDelay: 2 * time.Second}
	assert.Equal(t, 6*time.Second, p.Delay(429, 0))
	assert.Equal(t, 9*time.Second, p.Delay(429, 1))
	assert.Equal(t, 4*time.Second, p.Delay(503, 0))
	assert.Equal(t, 6*time.Second, p.Delay(503, 1))
}
