package middleware

import (
	"sync"
	"time"

	"Community_Portal/internal/pkg"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var errTooManyRequests = pkg.TooManyRequests("Too many requests, please try again later")

// RateLimit 按客户端 IP 的令牌桶限流，rps <= 0 时不限流
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	var mu sync.Mutex
	limiters := gocache.New(10*time.Minute, 20*time.Minute)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
		limiters.SetDefault(ip, limiter)
		mu.Unlock()

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			abortWithError(c, errTooManyRequests)
			return
		}
		c.Next()
	}
}
