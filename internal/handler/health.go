package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Health is the liveness probe for load balancers and monitoring.  It
// answers as long as the process serves requests; upstream services are
// deliberately not checked here, the gateway stays up when they are down.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Readiness reports the state of the session backend.  Redis being down is
// degraded rather than dead: sessions fall back to the in-memory store, so
// the probe stays 200 and only the payload flags it.
func Readiness(rdb *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessions := "memory"
		if rdb != nil {
			if err := rdb.Ping(c.Request().Context()).Err(); err == nil {
				sessions = "redis"
			} else {
				sessions = "memory (redis unreachable)"
			}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":   "ok",
			"sessions": sessions,
		})
	}
}
