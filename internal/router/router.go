// Package router registers the HTTP surface on an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/handler"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterPublic registers routes that need no session: opening one and
// browsing the menu.  cache wraps the catalog reads.
func RegisterPublic(e *echo.Echo, s *handler.SessionHandler, cat *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	e.POST("/v1/sessions", s.Create)

	g := e.Group("/v1/catalog", cache)
	g.GET("", cat.List)
	g.GET("/popular", cat.Popular)
}
