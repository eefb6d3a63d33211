package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/utils"
)

// HeaderSessionToken carries the renewed session token on every
// authenticated response.
const HeaderSessionToken = "X-Session-Token"

// SessionAuth validates the Bearer session token and stores the session id
// in the context under "session_id".  Handlers resolve the session itself.
//
// When ttl is positive a fresh token valid for ttl is returned in
// HeaderSessionToken, so a session in use never loses its token; only the
// manager's idle expiry ends it.
func SessionAuth(secret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, err := utils.ParseSessionToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("session_id", id)
			if ttl > 0 {
				if tok, err := utils.NewSessionToken(secret, id, ttl); err == nil {
					c.Response().Header().Set(HeaderSessionToken, tok.Token)
				}
			}
			return next(c)
		}
	}
}
