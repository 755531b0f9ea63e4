package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultResetWindow = 15 * time.Minute

// ResetThrottle rate-limits password-reset requests per email address using
// a TTL'd Redis key. One request is allowed per window; the rest are dropped
// silently by the caller, which keeps the public response indistinguishable
// from the normal path.
type ResetThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewResetThrottle creates a ResetThrottle. A default window is applied when
// none is provided.
func NewResetThrottle(client *redis.Client, window time.Duration) *ResetThrottle {
	if window <= 0 {
		window = defaultResetWindow
	}
	return &ResetThrottle{client: client, window: window}
}

// Allow reports whether a reset request for this email may proceed, and marks
// the window as used when it may. SetNX makes the check-and-mark atomic.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.window).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle: %w", err)
	}
	return ok, nil
}

func (t *ResetThrottle) key(email string) string {
	return fmt.Sprintf("reset_throttle:%s", email)
}
