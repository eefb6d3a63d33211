package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/booking"
	"github.com/iliyamo/blackmouth-booking/internal/cart"
	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/middleware"
	"github.com/iliyamo/blackmouth-booking/internal/session"
)

// Sessions resolves the session named by a request's token.
type Sessions interface {
	Get(id string) (*session.Session, error)
}

// currentSession loads the session stored by SessionAuth.  On failure it
// has already written the response; callers return the error it gives.
func currentSession(c echo.Context, sessions Sessions) (*session.Session, error) {
	s, err := sessions.Get(middleware.SessionID(c))
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	return s, nil
}

// writeError maps domain errors onto statuses.  Unknown errors become a
// 500 carrying err for the request logger.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, session.ErrUnknownWorkflow):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown workflow"})
	case errors.Is(err, cart.ErrUnknownItem):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown item"})
	case errors.Is(err, catalog.ErrUnknownFilter):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown size or ingredient"})
	case errors.Is(err, booking.ErrFieldNotApplicable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrSubmitting):
		return c.JSON(http.StatusConflict, echo.Map{"error": "submission in progress"})
	case errors.Is(err, booking.ErrFinalized):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already confirmed, reset to start a new one"})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}

func wantWait(c echo.Context) bool {
	switch c.QueryParam("wait") {
	case "1", "true", "yes":
		return true
	}
	return false
}
