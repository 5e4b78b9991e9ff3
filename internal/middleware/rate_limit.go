package middleware

import (
	"net/http"
	"sync"
	"time"

	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	loginRatePerSecond = 1
	loginBurst         = 5
	limiterIdleEvict   = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiterPool struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

func newIPLimiterPool() *ipLimiterPool {
	p := &ipLimiterPool{limiters: make(map[string]*ipLimiter)}
	go p.evictLoop()
	return p
}

func (p *ipLimiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(loginRatePerSecond, loginBurst)}
		p.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// evictLoop membersihkan IP yang sudah lama tidak akses supaya map tidak bengkak
func (p *ipLimiterPool) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		p.mu.Lock()
		for ip, entry := range p.limiters {
			if time.Since(entry.lastSeen) > limiterIdleEvict {
				delete(p.limiters, ip)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimitByIP throttles a route per client IP. Used on login, where a
// 4-digit PIN space makes brute force trivially cheap otherwise.
func RateLimitByIP() gin.HandlerFunc {
	pool := newIPLimiterPool()

	return func(c *gin.Context) {
		if !pool.get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeForbidden, "Too many attempts, slow down", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
