package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// AdminOnly gates the user management surface. Non-admins are sent back to
// the item listing with a denial notice instead of an error status.
func AdminOnly(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if user == nil || !user.Role.IsAdmin() {
				if sid, _ := c.Get("sid").(string); sid != "" {
					_ = sessions.SetFlash(c.Request().Context(), sid, ports.Flash{
						Kind:    "danger",
						Message: "access denied",
					})
				}
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}
