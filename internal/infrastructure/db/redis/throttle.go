package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultLockWindow  = 15 * 60 // seconds
)

// LoginThrottle counts failed login attempts per email in Redis and blocks
// further attempts once the limit is reached within the lock window.
// Key format: login_fail:<email>
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int
	windowSec   int
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Zero values fall back to 5 failures per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxFailures, windowSec int) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if windowSec <= 0 {
		windowSec = defaultLockWindow
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures, windowSec: windowSec}
}

// Blocked reports whether the email has exhausted its attempt budget.
func (t *LoginThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the counter and refreshes the lock window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(email))
	pipe.Expire(ctx, t.key(email), time.Duration(t.windowSec)*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login_fail:" + email
}
