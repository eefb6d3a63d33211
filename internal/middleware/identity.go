package middleware

// identity.go holds helpers that name the caller for rate limiting and
// logging: the session id set by SessionAuth, or "anon".

import "github.com/labstack/echo/v4"

// SessionID returns the authenticated session id, or "anon" when the
// request carries none.
func SessionID(c echo.Context) string {
	if v, ok := c.Get("session_id").(string); ok && v != "" {
		return v
	}
	return "anon"
}
