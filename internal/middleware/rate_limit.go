package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
)

type RateRule struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

var (
	RegisterRule = RateRule{Name: "auth_register", MaxRequests: 5, Window: time.Hour}
	LoginRule    = RateRule{Name: "auth_login", MaxRequests: 10, Window: 15 * time.Minute}
	RefreshRule  = RateRule{Name: "auth_refresh", MaxRequests: 30, Window: time.Minute}
)

// fixedWindowScript increments the counter for the current window and
// returns the new count.
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter counts requests per client IP in Redis. A nil client or any
// Redis failure lets the request through.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

func (l *RateLimiter) Limit(rule RateRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate:fw:%s:%s", rule.Name, c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		count, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, int(rule.Window.Seconds())).Int64()
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("rule", rule.Name).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		remaining := int64(rule.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rule.MaxRequests) {
			log.Info().Str("rule", rule.Name).Str("ip", c.ClientIP()).Msg("rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(int(rule.Window.Seconds())))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limit_exceeded",
				fmt.Sprintf("Too many requests, please try again in %v", rule.Window))
			return
		}

		c.Next()
	}
}
