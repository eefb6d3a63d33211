package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/booking"
	"github.com/iliyamo/blackmouth-booking/internal/middleware"
)

// BookingHandler serves both checkout flows.  The route group decides the
// flow through middleware.ForWorkflow.
type BookingHandler struct {
	Sessions Sessions
}

// Get handles GET /v1/{reservation,delivery}.
func (h *BookingHandler) Get(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	if wantWait(c) {
		s.Wait()
	}
	view, err := s.Workflow(middleware.Workflow(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Patch handles PATCH /v1/{reservation,delivery}.  Invalid values come back
// as field_errors with status 200; they never block other fields.  With
// ?wait=true the response includes the slot suggestions a date or party
// size change triggered.
func (h *BookingHandler) Patch(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	var p booking.Patch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	kind := middleware.Workflow(c)
	view, err := s.UpdateDraft(kind, p)
	if err != nil {
		return writeError(c, err)
	}
	if wantWait(c) {
		s.Wait()
		if view, err = s.Workflow(kind); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusOK, view)
}

// Slots handles GET /v1/reservation/slots.
func (h *BookingHandler) Slots(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	if wantWait(c) {
		s.Wait()
	}
	view, err := s.Workflow(middleware.Workflow(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slots":         view.Slots,
		"selected":      view.Draft.Time,
		"loading_slots": view.LoadingSlots,
	})
}

// RefreshSlots handles POST /v1/reservation/slots: suggestions are fetched
// again for the current date and party size.
func (h *BookingHandler) RefreshSlots(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	view := s.RefreshSlots()
	if wantWait(c) {
		s.Wait()
		if view, err = s.Workflow(middleware.Workflow(c)); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(http.StatusAccepted, view)
}

// Submit handles POST /v1/{reservation,delivery}/submit.  The workflow
// resolves after a processing delay: 202 returns the submitting state,
// ?wait=true blocks and returns the outcome.
func (h *BookingHandler) Submit(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	kind := middleware.Workflow(c)
	view, err := s.Submit(kind)
	if errors.Is(err, booking.ErrIncomplete) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "required fields missing", "workflow": view})
	}
	if err != nil {
		return writeError(c, err)
	}
	if !wantWait(c) {
		return c.JSON(http.StatusAccepted, view)
	}
	s.Wait()
	if view, err = s.Workflow(kind); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Reset handles POST /v1/{reservation,delivery}/reset ("make another").
func (h *BookingHandler) Reset(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	view, err := s.Reset(middleware.Workflow(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
