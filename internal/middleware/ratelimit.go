package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/internal/domain/dto"
	"github.com/guttosm/stockseries/internal/logger"
	"golang.org/x/time/rate"
)

// clientTTL is how long an idle client's bucket is kept.
const clientTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
// It limits inbound HTTP traffic only; provider calls are never throttled.
//
// NOTE: state is in-process; multi-instance deployments get one budget per instance.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

// NewRateLimiter allows rps requests per second per client with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*client),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// Handler returns the Gin middleware.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 1
//	{"detail": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.allow(ip, time.Now()) {
			c.Next()
			return
		}

		logger.L().Warn().
			Str("client_ip", ip).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("rate limit exceeded")

		retry := int(math.Ceil(1 / float64(rl.limit)))
		if retry < 1 {
			retry = 1
		}
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > clientTTL {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > clientTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}
