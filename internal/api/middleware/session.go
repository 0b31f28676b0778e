package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/core/ports"
)

const sessionCookie = "session"

// Session authenticates the request from the session cookie and injects the
// resolved user and session id into context. Requests without a valid session
// are redirected to the login page, not answered with an error status.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			user, sid, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set("user", user)
			c.Set("sid", sid)
			return next(c)
		}
	}
}
