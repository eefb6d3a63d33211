package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/model"
	"github.com/iliyamo/blackmouth-booking/internal/session"
	"github.com/iliyamo/blackmouth-booking/internal/utils"
)

// SessionHandler opens application sessions and serves the page chrome
// reads (header badge, active flow).
type SessionHandler struct {
	Manager  *session.Manager
	Secret   string
	TokenTTL time.Duration
}

// Create handles POST /v1/sessions.  It returns a Bearer token naming a
// fresh session with an empty cart.  Authenticated responses renew the
// token in the X-Session-Token header.
func (h *SessionHandler) Create(c echo.Context) error {
	s := h.Manager.Create()
	tok, err := utils.NewSessionToken(h.Secret, s.ID, h.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id": s.ID,
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}

// Summary handles GET /v1/session/summary.
func (h *SessionHandler) Summary(c echo.Context) error {
	s, err := currentSession(c, h.Manager)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Summary())
}

// SetRoute handles PUT /v1/session/route with {"active": "reservation"|"delivery"}.
func (h *SessionHandler) SetRoute(c echo.Context) error {
	s, err := currentSession(c, h.Manager)
	if s == nil {
		return err
	}
	var body struct {
		Active model.WorkflowKind `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := s.SetActive(body.Active); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active must be reservation or delivery"})
	}
	return c.JSON(http.StatusOK, s.Summary())
}
