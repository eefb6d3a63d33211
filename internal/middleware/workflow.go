package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// ForWorkflow tags every request of a route group with the checkout flow it
// operates on, so the reservation and delivery groups share handlers.
// Handlers read the kind with Workflow(c).
func ForWorkflow(kind model.WorkflowKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("workflow", kind)
			return next(c)
		}
	}
}

// Workflow returns the kind set by ForWorkflow, or "" when none was set.
func Workflow(c echo.Context) model.WorkflowKind {
	k, _ := c.Get("workflow").(model.WorkflowKind)
	return k
}
