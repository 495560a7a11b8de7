package limits

import (
	"context"
	"time"

	"partner-onboarding.backend/pkg/redis"
)

const keyPrefix = "onboarding:attempts:"

var incrWindow = redis.IncrWindow

// AttemptLimiter is a fixed-window counter per key stored in redis
type AttemptLimiter struct {
	limit  int64
	window time.Duration
}

// NewAttemptLimiter allows limit attempts per key in each window
func NewAttemptLimiter(limit int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{limit: int64(limit), window: window}
}

// Allow counts an attempt under key. On a redis error it allows the attempt and
// returns the error so the caller can log it.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	n, err := incrWindow(ctx, keyPrefix+key, l.window)
	if err != nil {
		return true, err
	}
	return n <= l.limit, nil
}
