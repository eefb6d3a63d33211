package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/handler"
)

// RegisterSession registers the session-scoped chrome and cart endpoints.
// auth guards every route; see middleware.SessionAuth.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler, c *handler.CartHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/v1", auth)
	g.GET("/session/summary", s.Summary)
	g.PUT("/session/route", s.SetRoute)

	g.GET("/cart", c.Get)
	g.DELETE("/cart", c.Clear)
	g.POST("/cart/items/:name", c.Add)
	g.DELETE("/cart/items/:name", c.Remove)
	g.POST("/cart/add-filtered", c.AddFiltered)
}
