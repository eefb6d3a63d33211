package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports liveness plus the state of optional backends.
type HealthHandler struct {
	Redis     *redis.Client
	SlotsLive bool
}

// Health answers GET /healthz.  It is 200 whenever the process serves
// requests; a down Redis only degrades caching and rate limiting.
func (h *HealthHandler) Health(c echo.Context) error {
	redisState := "disabled"
	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		redisState = "up"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			redisState = "down"
		}
	}
	slots := "fallback"
	if h.SlotsLive {
		slots = "live"
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "redis": redisState, "slots": slots})
}
