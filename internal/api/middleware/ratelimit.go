package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the per-IP rate limits, expressed as requests per
// minute.
type RateLimiterConfig struct {
	GeneralPerMinute int
	AuthPerMinute    int
	CleanupInterval  time.Duration
}

// DefaultRateLimiterConfig returns the default limits: 120 req/min for the
// API overall, 10 req/min for login, registration and application submits.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralPerMinute: 120,
		AuthPerMinute:    10,
		CleanupInterval:  5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies per-client-IP rate limits with two tiers: general API
// traffic and the abuse-prone auth/apply endpoints.
type RateLimiter struct {
	config RateLimiterConfig

	mu      sync.Mutex
	general map[string]*clientLimiter
	auth    map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts the background cleanup of
// idle entries.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		general: make(map[string]*clientLimiter),
		auth:    make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// General returns the middleware for general API traffic.
func (rl *RateLimiter) General() func(http.Handler) http.Handler {
	return rl.middleware(rl.general, rl.config.GeneralPerMinute)
}

// Auth returns the stricter middleware for login, registration, and
// application submission.
func (rl *RateLimiter) Auth() func(http.Handler) http.Handler {
	return rl.middleware(rl.auth, rl.config.AuthPerMinute)
}

func (rl *RateLimiter) middleware(limiters map[string]*clientLimiter, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(limiters, clientIP(r), perMinute) {
				respondError(w, "too many requests, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(limiters map[string]*clientLimiter, ip string, perMinute int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := limiters[ip]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		}
		limiters[ip] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupInterval)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.general {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.general, ip)
		}
	}
	for ip, cl := range rl.auth {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.auth, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
