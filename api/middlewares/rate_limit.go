package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	every time.Duration
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastPrune time.Time
}

// idleVisitor is how long an IP may stay quiet before its bucket is dropped.
const idleVisitor = 10 * time.Minute

func NewRateLimiter(every time.Duration, burst int) *RateLimiter {
	return &RateLimiter{every: every, burst: burst, visitors: make(map[string]*visitor), lastPrune: time.Now()}
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.every), rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Prune forgets visitors idle for longer than maxIdle.
func (rl *RateLimiter) Prune(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) maybePrune() {
	rl.mu.Lock()
	due := time.Since(rl.lastPrune) > idleVisitor
	if due {
		rl.lastPrune = time.Now()
	}
	rl.mu.Unlock()
	if due {
		rl.Prune(idleVisitor)
	}
}

func (rl *RateLimiter) Middleware(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.maybePrune()
		if !rl.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware applies the general per-IP limit.
func RateLimitMiddleware() gin.HandlerFunc {
	return NewRateLimiter(time.Second, 100).Middleware("Too many requests. Please slow down.")
}

// LoginRateLimitMiddleware applies a stricter per-IP limit for auth routes.
func LoginRateLimitMiddleware() gin.HandlerFunc {
	return NewRateLimiter(10*time.Second, 10).Middleware("Too many authentication attempts. Please wait and try again.")
}
