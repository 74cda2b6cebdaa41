package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxSends   = 3
	defaultSendWindow = 10 * time.Minute
)

// OTPSendLimiter throttles OTP delivery per phone number using a counter
// with a rolling window. Key format: otp:sent:<phone>
type OTPSendLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewOTPSendLimiter creates a limiter allowing max sends per window.
// Non-positive arguments fall back to 3 sends per 10 minutes.
func NewOTPSendLimiter(client *redis.Client, max int, window time.Duration) *OTPSendLimiter {
	if max <= 0 {
		max = defaultMaxSends
	}
	if window <= 0 {
		window = defaultSendWindow
	}
	return &OTPSendLimiter{client: client, max: int64(max), window: window}
}

// Allow reports whether another code may be sent to phone. The first send in
// a window starts the expiry clock.
func (l *OTPSendLimiter) Allow(ctx context.Context, phone string) (bool, error) {
	key := l.key(phone)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("otp limiter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("otp limiter: %w", err)
		}
	}
	return n <= l.max, nil
}

func (l *OTPSendLimiter) key(phone string) string {
	return "otp:sent:" + phone
}
