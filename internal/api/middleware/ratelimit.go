package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit is a per-client token bucket, keyed by client IP. Used on the
// auth endpoints to slow down credential stuffing.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter *rate.Limiter
		seen    time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	// drop idle clients so the map does not grow unbounded
	go func() {
		for range time.Tick(10 * time.Minute) {
			mu.Lock()
			for ip, e := range clients {
				if time.Since(e.seen) > 10*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(r, burst)}
			clients[ip] = e
		}
		e.seen = time.Now()
		mu.Unlock()

		if !e.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			return
		}
		c.Next()
	}
}
