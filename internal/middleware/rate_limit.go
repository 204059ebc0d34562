// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cevta/vat-license-backend/internal/utils"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	r        rate.Limit
	burst    int
}

func newRateLimiterStore(r rate.Limit, burst int) *rateLimiterStore {
	store := &rateLimiterStore{
		limiters: make(map[string]*ipLimiter),
		r:        r,
		burst:    burst,
	}
	go store.cleanup()
	return store
}

func (s *rateLimiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(s.r, s.burst)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// cleanup evicts limiters idle for more than ten minutes.
func (s *rateLimiterStore) cleanup() {
	for {
		time.Sleep(time.Minute)
		s.mu.Lock()
		for ip, entry := range s.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(s.limiters, ip)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimit throttles requests per client IP.
func RateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	store := newRateLimiterStore(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		limiter := store.get(c.ClientIP())
		if !limiter.Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRateLimit is a tighter limit for credential endpoints.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimit(1, 5)
}

// UploadRateLimit keeps document uploads from saturating storage.
func UploadRateLimit() gin.HandlerFunc {
	return RateLimit(2, 10)
}
