package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// UploadLimiter bounds profile submissions and resume replacements per IP
// per minute and per user per day. It uses a Redis sliding window when a
// client is available and per-process token buckets otherwise.
type UploadLimiter struct {
	redis        goredis.Scripter
	maxPerMinute int
	maxPerDay    int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// Sliding window on a sorted set.
// KEYS[1] = key, ARGV[1] = limit, ARGV[2] = window seconds, ARGV[3] = now
// Returns 1 if allowed, 0 if limited.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter defaults to 10 uploads per minute per IP and 20 per day
// per user. client may be nil.
func NewUploadLimiter(client goredis.Scripter, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 20
	}
	return &UploadLimiter{
		redis:        client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
		buckets:      make(map[string]*rate.Limiter),
	}
}

// AllowUpload reports whether the upload may proceed and, if not, how long
// to wait. Redis errors fail closed.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, userEmail string) (bool, time.Duration, error) {
	checks := []struct {
		key    string
		limit  int
		window time.Duration
	}{
		{"ratelimit:upload:ip:" + ip, ul.maxPerMinute, time.Minute},
	}
	if userEmail != "" {
		checks = append(checks, struct {
			key    string
			limit  int
			window time.Duration
		}{"ratelimit:upload:user:" + HashValue(userEmail), ul.maxPerDay, 24 * time.Hour})
	}

	for _, c := range checks {
		allowed, err := ul.check(ctx, c.key, c.limit, c.window)
		if err != nil {
			return false, c.window, fmt.Errorf("rate limit check failed: %w", err)
		}
		if !allowed {
			return false, c.window, nil
		}
	}
	return true, 0, nil
}

func (ul *UploadLimiter) check(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if ul.redis == nil {
		return ul.local(key, limit, window).Allow(), nil
	}
	now := time.Now().Unix()
	result, err := ul.redis.Eval(ctx, uploadRateLimitScript, []string{key}, limit, int(window/time.Second), now).Result()
	if err != nil {
		return false, err
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}
	return allowed == 1, nil
}

func (ul *UploadLimiter) local(key string, limit int, window time.Duration) *rate.Limiter {
	ul.mu.Lock()
	defer ul.mu.Unlock()
	l, ok := ul.buckets[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
		ul.buckets[key] = l
	}
	return l
}
