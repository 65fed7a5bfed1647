package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		BackoffFactor: 2.0,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	}, DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_RetryAndSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("temporary error")
		}
		return nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDo_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")

	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return expectedErr
	}, fastConfig(3))

	assert.Same(t, expectedErr, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_NotRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastConfig(5)
	cfg.Retryable = func(err error) bool { return !errors.Is(err, permanent) }

	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return permanent
	}, cfg)

	assert.Same(t, permanent, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	attempts := 0
	_ = Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("x")
	}, Config{})
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		return nil
	}, DefaultConfig())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 10, InitialDelay: time.Second, BackoffFactor: 1}

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return errors.New("error")
	}, cfg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDoWithInfo_AttemptNumbers(t *testing.T) {
	var seen []int
	err := DoWithInfo(context.Background(), func(ctx context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("again")
		}
		return nil
	}, fastConfig(4))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestConfig_Delay(t *testing.T) {
	cfg := Config{InitialDelay: 10 * time.Millisecond, BackoffFactor: 2, MaxDelay: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 20*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, 40*time.Millisecond, cfg.Delay(3))
	assert.Equal(t, 50*time.Millisecond, cfg.Delay(4), "受 MaxDelay 限制")

	flat := Config{InitialDelay: 3 * time.Millisecond}
	assert.Equal(t, 3*time.Millisecond, flat.Delay(5), "未设置倍数时不增长")
}
