package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const localLimiterIdle = 10 * time.Minute

type localEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LocalRateLimiter is an in-process token bucket per client IP. It is used
// when Redis cannot be reached at startup, so limits are per instance.
type LocalRateLimiter struct {
	config    RateLimitConfig
	idle      time.Duration
	mu        sync.Mutex
	limiters  map[string]*localEntry
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalRateLimiter refills Limit tokens evenly over Window
func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	// a bucket unused for a whole window has refilled completely
	idle := localLimiterIdle
	if config.Window > idle {
		idle = config.Window
	}
	return &LocalRateLimiter{
		config:   config,
		idle:     idle,
		limiters: make(map[string]*localEntry),
		now:      time.Now,
	}
}

// Allow reports whether key may make another request and how many remain
func (rl *LocalRateLimiter) Allow(key string) (bool, int) {
	now := rl.now()

	rl.mu.Lock()
	entry, ok := rl.limiters[key]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		entry = &localEntry{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.limiters[key] = entry
	}
	entry.lastAccess = now
	rl.evictIdle(now)
	rl.mu.Unlock()

	allowed := entry.limiter.AllowN(now, 1)
	remaining := int(math.Max(0, math.Floor(entry.limiter.TokensAt(now))))
	return allowed, remaining
}

// evictIdle drops limiters unused for the idle period. The map is swept at
// most once per idle period. Callers hold mu.
func (rl *LocalRateLimiter) evictIdle(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idle {
		return
	}
	rl.lastSweep = now
	for key, e := range rl.limiters {
		if now.Sub(e.lastAccess) > rl.idle {
			delete(rl.limiters, key)
		}
	}
}

// RateLimitMiddleware answers 429 once a client IP exhausts its bucket
func (rl *LocalRateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retry := rl.config.Window / time.Duration(rl.config.Limit)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Message: fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
			})
			return
		}

		c.Next()
	}
}
