package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/handler"
	"github.com/iliyamo/blackmouth-booking/internal/middleware"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// RegisterBooking registers both checkout flows on the same handler behind
// auth.  limit guards the calls that cost real work: suggestion refreshes and
// submissions.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, auth, limit echo.MiddlewareFunc) {
	r := e.Group("/v1/reservation", auth, middleware.ForWorkflow(model.KindReservation))
	r.GET("", h.Get)
	r.PATCH("", h.Patch)
	r.GET("/slots", h.Slots)
	r.POST("/slots", h.RefreshSlots, limit)
	r.POST("/submit", h.Submit, limit)
	r.POST("/reset", h.Reset)

	d := e.Group("/v1/delivery", auth, middleware.ForWorkflow(model.KindDelivery))
	d.GET("", h.Get)
	d.PATCH("", h.Patch)
	d.POST("/submit", h.Submit, limit)
	d.POST("/reset", h.Reset)
}
