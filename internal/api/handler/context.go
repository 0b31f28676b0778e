package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// Context keys populated by the session middleware.
const (
	CtxUser      = "user"
	CtxSessionID = "sid"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

// currentUser extracts the authenticated user injected by the session
// middleware. Its presence proves the middleware ran; routes reached without
// it are a wiring bug, answered with 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}

// sessionID returns the session id injected by the session middleware.
func sessionID(c echo.Context) string {
	sid, _ := c.Get(CtxSessionID).(string)
	return sid
}

// flash stores a one-shot notice for the next page view. Failures are
// swallowed: a lost notice must not break the action that produced it.
func flash(c echo.Context, store ports.SessionStore, kind, message string) {
	if sid := sessionID(c); sid != "" {
		_ = store.SetFlash(c.Request().Context(), sid, ports.Flash{Kind: kind, Message: message})
	}
}

// seeOther issues the post-action redirect that prevents re-submission on
// refresh.
func seeOther(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}
