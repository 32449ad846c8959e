package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/internal/domain"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"
	"hireable-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject with 503 instead of falling back when Redis errors
	FailClosed bool
}

// DefaultRateLimitConfig returns defaults for general API traffic.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// bucket is the in-process fallback for one key.
type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter counts requests in Redis when a client is configured and in
// per-key token buckets otherwise.
type RateLimiter struct {
	cfg   RateLimitConfig
	redis goredis.Scripter
	audit *security.AuditLogger

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewRateLimiter(cfg RateLimitConfig, client goredis.Scripter, audit *security.AuditLogger) *RateLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &RateLimiter{cfg: cfg, redis: client, audit: audit, buckets: make(map[string]*bucket)}
}

// take records one request and returns the remaining allowance (negative
// when over the limit) and when the window resets.
func (rl *RateLimiter) take(ctx context.Context, key string) (int, time.Time, error) {
	if rl.redis == nil {
		return rl.takeLocal(key, time.Now())
	}
	result, err := rl.redis.Eval(ctx, rateLimitLuaScript, []string{rl.cfg.KeyPrefix + key}, int(rl.cfg.Window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return rl.cfg.Limit - int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) takeLocal(key string, now time.Time) (int, time.Time, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > 5*time.Minute {
		for k, b := range rl.buckets {
			if now.Sub(b.seen) > 2*rl.cfg.Window {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Every(rl.cfg.Window/time.Duration(rl.cfg.Limit)), rl.cfg.Limit)}
		rl.buckets[key] = b
	}
	b.seen = now
	if !b.lim.AllowN(now, 1) {
		deficit := 1 - b.lim.TokensAt(now)
		wait := time.Duration(deficit / float64(b.lim.Limit()) * float64(time.Second))
		return -1, now.Add(wait), nil
	}
	return int(math.Floor(b.lim.TokensAt(now))), now.Add(rl.cfg.Window), nil
}

// Middleware answers 429 with Retry-After once the limit is exceeded.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		remaining, resetAt, err := rl.take(c.Request.Context(), rl.cfg.KeyFunc(c))
		if err != nil {
			if rl.cfg.FailClosed {
				logger.Log.Error("rate limit unavailable", "error", err)
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			logger.Log.Warn("rate limit falling back to memory", "error", err)
			remaining, resetAt, _ = rl.takeLocal(rl.cfg.KeyFunc(c), time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if remaining < 0 {
			c.Header("Retry-After", strconv.Itoa(max(int(time.Until(resetAt).Seconds()), 1)))
			rl.audit.RateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UploadLimit applies the per-IP and per-user upload caps. It must run
// after Auth so the user's email is known.
func UploadLimit(ul *security.UploadLimiter, dict *content.Dictionary, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(string(domain.KeyUserEmail))
		ok, wait, err := ul.AllowUpload(c.Request.Context(), c.ClientIP(), email)
		if err != nil {
			logger.Log.Error("upload limit check failed", "error", err)
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())))
			audit.RateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), c.FullPath())
			msg := "Too many uploads. Please try again later."
			if dict != nil {
				msg = dict.Get(content.LocaleFrom(c.Request.Context()), content.KeyErrTooManyUploads, nil)
			}
			response.Error(c, http.StatusTooManyRequests, msg, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
