package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// MaxAttempts ограничивает общее число вызовов fn (первый + повторы).
	// 0 - без ограничения, работает только MaxElapsedTime.
	MaxAttempts uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc
}

// Fixed конфиг с постоянной паузой delay и не более maxAttempts вызовов.
func Fixed(delay time.Duration, maxAttempts uint64, shouldRetry ShouldRetryFunc) Config {
	return Config{
		InitialInterval: delay,
		MaxInterval:     delay,
		Randomization:   0,
		Multiplier:      1,
		MaxAttempts:     maxAttempts,
		ShouldRetry:     shouldRetry,
	}
}
