package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/api/metrics"
	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// AuthHandler drives the unauthenticated flows: login, register, logout.
type AuthHandler struct {
	auth      ports.AuthService
	cookieTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL}
}

// LoginPage serves the login view model.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "login", Error: c.QueryParam("error")})
}

// Login authenticates the posted credentials and opens a session.
// Failures never reveal whether the username or the password was wrong.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Login name"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return loginFailure(c)
	}
	if err := c.Validate(&req); err != nil {
		return loginFailure(c)
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return loginFailure(c)
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsOpenedTotal.Inc()

	c.SetCookie(h.sessionCookie(token, int(h.cookieTTL.Seconds())))
	return seeOther(c, "/")
}

// RegisterPage serves the registration view model.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "register", Error: c.QueryParam("error")})
}

// Register creates a user-role account. On success the client is sent to the
// login page; registration never authenticates by itself.
//
// @Summary      Register
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username          formData  string  true  "Login name"
// @Param        password          formData  string  true  "Password"
// @Param        confirm_password  formData  string  true  "Password confirmation"
// @Success      303
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return seeOther(c, "/register?error="+url.QueryEscape("invalid form"))
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return seeOther(c, "/register?error="+url.QueryEscape(err.Error()))
	}

	if _, err := h.auth.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return seeOther(c, "/register?error="+url.QueryEscape("username already taken"))
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return seeOther(c, "/login")
}

// Logout destroys the session unconditionally; repeating it succeeds too.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
		metrics.SessionsClosedTotal.Inc()
	}

	c.SetCookie(h.sessionCookie("", -1))
	return seeOther(c, "/login")
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func loginFailure(c echo.Context) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return seeOther(c, "/login?error="+url.QueryEscape("invalid username or password"))
}
