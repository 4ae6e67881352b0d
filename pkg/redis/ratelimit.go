package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// vendorWindow admits a call when fewer than ARGV[2] calls are logged in
// the last ARGV[3] ms. Replies {admitted, remaining, retry_after_ms}.
var vendorWindow = redis.NewScript(`
local now, limit, window = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local used = redis.call('ZCARD', KEYS[1])
if used < limit then
	redis.call('ZADD', KEYS[1], now, ARGV[4])
	redis.call('PEXPIRE', KEYS[1], window)
	return {1, limit - used - 1, 0}
end
local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
return {0, 0, tonumber(oldest[2]) + window - now}
`)

// minRetry keeps Wait from spinning when the window is about to free up
const minRetry = 10 * time.Millisecond

// RateLimiter is a sliding-window limiter shared by every replica, so a
// vendor sees one budget no matter how many instances run
// ⭐ SSOT: shared rate limits live only here
type RateLimiter struct {
	client *Client
	prefix string
}

// RateLimitConfig is a per-vendor budget
type RateLimitConfig struct {
	Key    string // vendor name, e.g. "vci", "tcbs"
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one admission check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, prefix string) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix}
}

// Enabled reports whether the limiter consults Redis
func (r *RateLimiter) Enabled() bool {
	return r.client.Enabled()
}

// Allow records the call if the vendor budget has room. Without Redis every
// call is allowed.
func (r *RateLimiter) Allow(ctx context.Context, cfg RateLimitConfig) (Decision, error) {
	if !r.client.Enabled() {
		return Decision{Allowed: true, Remaining: cfg.Limit}, nil
	}

	key := r.prefix + ":ratelimit:" + cfg.Key
	reply, err := vendorWindow.Run(ctx, r.client.Redis(), []string{key},
		time.Now().UnixMilli(), cfg.Limit, cfg.Window.Milliseconds(), uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", cfg.Key, err)
	}
	if len(reply) != 3 {
		return Decision{}, fmt.Errorf("rate limit %s: unexpected reply %v", cfg.Key, reply)
	}

	return Decision{
		Allowed:    reply[0] == 1,
		Remaining:  int(reply[1]),
		RetryAfter: time.Duration(reply[2]) * time.Millisecond,
	}, nil
}

// Wait blocks until the vendor budget admits a call or ctx ends
func (r *RateLimiter) Wait(ctx context.Context, cfg RateLimitConfig) error {
	for {
		d, err := r.Allow(ctx, cfg)
		if err != nil || d.Allowed {
			return err
		}

		pause := d.RetryAfter
		if pause < minRetry {
			pause = minRetry
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// VendorRateLimit builds a per-second budget for a vendor
func VendorRateLimit(vendor string, perSecond int) RateLimitConfig {
	if perSecond < 1 {
		perSecond = 1
	}
	return RateLimitConfig{
		Key:    strings.ToLower(vendor),
		Limit:  perSecond,
		Window: time.Second,
	}
}
