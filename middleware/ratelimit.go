package middleware

import (
	"net/http"
	"sync"

	"hotelease/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

// RateLimit throttles requests per client IP. Used on the auth endpoints
// to slow down credential stuffing.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if burst <= 0 {
		burst = 5
	}
	l := &ipLimiter{rps: rate.Limit(rps), burst: burst}

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			utils.JSONError(c, http.StatusTooManyRequests, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
