package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hoteldesk/front-gateway/internal/config"
)

// RateLimit returns a fixed-window per-IP request limiter backed by Redis,
// so multiple gateway replicas share one budget.  A nil Redis client or a
// Redis failure disables limiting rather than blocking traffic.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	// INCR + first-hit EXPIRE keeps the window atomic across replicas.
	windowScript := redis.NewScript(`
		local hits = redis.call('INCR', KEYS[1])
		if hits == 1 then
			redis.call('PEXPIRE', KEYS[1], ARGV[1])
		end
		local ttl = redis.call('PTTL', KEYS[1])
		return { hits, ttl }
	`)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":ip:" + ip

			ctx := c.Request().Context()
			vals, err := windowScript.Run(ctx, rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
			if err != nil || len(vals) != 2 {
				if err != nil {
					c.Logger().Warnf("ratelimit: redis error for %s: %v", key, err)
				}
				return next(c)
			}
			hits, ttlMs := vals[0], vals[1]

			remaining := int64(cfg.Limit) - hits
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if hits > int64(cfg.Limit) {
				secs := (ttlMs + 999) / 1000
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.FormatInt(secs, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}
