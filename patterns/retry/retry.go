// Package retry 提供带指数退避的重试
package retry

import (
	"context"
	"math"
	"time"
)

// Operation 可重试的操作函数类型
type Operation func(ctx context.Context) error

// OperationWithInfo 可重试的操作，会接收当前尝试次数（从 1 开始）
type OperationWithInfo func(ctx context.Context, attempt int) error

// Config 重试配置
type Config struct {
	MaxAttempts   int           // 最大尝试次数（包括首次），小于 1 按 1 处理
	InitialDelay  time.Duration // 初始退避延迟
	BackoffFactor float64       // 退避倍数（指数退避）
	MaxDelay      time.Duration // 最大延迟，0 表示不限制

	// Retryable 判断错误是否值得重试，nil 表示所有错误都重试
	Retryable func(err error) bool
}

// DefaultConfig 返回默认配置
//
// 默认值：
//   - MaxAttempts: 3
//   - InitialDelay: 2ms
//   - BackoffFactor: 2.0
//   - MaxDelay: 1s
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		InitialDelay:  2 * time.Millisecond,
		BackoffFactor: 2.0,
		MaxDelay:      1 * time.Second,
	}
}

// Do 执行带重试的操作
//
// 返回：
//   - nil（任意一次尝试成功）
//   - ctx.Err()（等待或开始尝试前上下文已取消）
//   - 最后一次执行的错误（所有尝试都失败，或错误不可重试）
func Do(ctx context.Context, op Operation, cfg Config) error {
	return DoWithInfo(ctx, func(ctx context.Context, _ int) error {
		return op(ctx)
	}, cfg)
}

// DoWithInfo 执行带重试的操作，每次尝试都会传入当前尝试次数
func DoWithInfo(ctx context.Context, op OperationWithInfo, cfg Config) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return err
		}

		// 最后一次尝试不需要等待
		if attempt < attempts {
			select {
			case <-time.After(cfg.Delay(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// Delay 第 attempt 次失败后的退避延迟
func (c Config) Delay(attempt int) time.Duration {
	factor := c.BackoffFactor
	if factor <= 0 {
		factor = 1
	}
	delay := time.Duration(float64(c.InitialDelay) * math.Pow(factor, float64(attempt-1)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}
