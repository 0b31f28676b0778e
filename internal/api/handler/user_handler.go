package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/api/metrics"
	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// UserHandler serves the admin-only user directory. The admin gate itself is
// the AdminOnly middleware; these handlers assume it already ran.
type UserHandler struct {
	users    ports.UserService
	sessions ports.SessionStore
}

func NewUserHandler(users ports.UserService, sessions ports.SessionStore) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// List serves one page of the user directory.
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  listUsersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.users.List(c.Request().Context(), pageParam(c), 0)
	if err != nil {
		return err
	}

	pending, _ := h.sessions.PopFlash(c.Request().Context(), sessionID(c))

	data := make([]userResponse, 0, len(result.Users))
	for _, u := range result.Users {
		data = append(data, userResponse{
			ID:           u.ID,
			Username:     u.Username,
			Name:         valueOrEmpty(u.Name),
			Role:         string(u.Role),
			CreatedAt:    u.CreatedAt,
			LastActivity: u.LastActivity,
		})
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
		Viewer: viewerResponse{
			ID:       user.ID,
			Username: user.Username,
			Name:     valueOrEmpty(user.Name),
			Role:     string(user.Role),
			CanEdit:  user.Role.CanEdit(),
			IsAdmin:  user.Role.IsAdmin(),
		},
		Flash: pending,
	})
}

// Mutate dispatches one directory action and redirects back to the listing.
// Refused actions (protected role, self-deletion, bad role, mismatched
// passwords) leave the directory unchanged and surface as a notice.
//
// @Summary      Manage a user account
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Param        action            formData  string  true   "edit_role | edit_name | change_password | delete"
// @Param        user_id           formData  int     true   "Target account"
// @Param        role              formData  string  false  "New role (edit_role)"
// @Param        name              formData  string  false  "New display name (edit_name)"
// @Param        new_password      formData  string  false  "New password (change_password)"
// @Param        confirm_password  formData  string  false  "Password confirmation (change_password)"
// @Success      303
// @Router       /users [post]
func (h *UserHandler) Mutate(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	back := directoryURL(c)

	var req userActionRequest
	if err := c.Bind(&req); err != nil {
		flash(c, h.sessions, "danger", "invalid form")
		return seeOther(c, back)
	}
	if err := c.Validate(&req); err != nil {
		flash(c, h.sessions, "danger", err.Error())
		return seeOther(c, back)
	}

	ctx := c.Request().Context()
	var actionErr error
	var notice string
	switch req.Action {
	case "edit_role":
		actionErr = h.users.UpdateRole(ctx, req.UserID, req.Role)
		notice = "role updated"
	case "edit_name":
		actionErr = h.users.UpdateName(ctx, req.UserID, req.Name)
		notice = "name updated"
	case "change_password":
		actionErr = h.users.ChangePassword(ctx, req.UserID, req.NewPassword, req.ConfirmPassword)
		notice = "password changed"
	case "delete":
		actionErr = h.users.Delete(ctx, actor.ID, req.UserID)
		notice = "user deleted"
	}

	if actionErr != nil {
		if msg, ok := refusalNotice(actionErr); ok {
			metrics.UserActionsTotal.WithLabelValues(req.Action, "denied").Inc()
			flash(c, h.sessions, "danger", msg)
			return seeOther(c, back)
		}
		return actionErr
	}

	metrics.UserActionsTotal.WithLabelValues(req.Action, "success").Inc()
	flash(c, h.sessions, "success", notice)
	return seeOther(c, back)
}

// refusalNotice maps the expected refusals to their user-facing notices.
func refusalNotice(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid role", true
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "passwords do not match", true
	case errors.Is(err, domain.ErrSelfDeletion):
		return "cannot delete your own account", true
	case errors.Is(err, domain.ErrProtectedRole):
		return "cannot delete an admin account", true
	case errors.Is(err, domain.ErrUserNotFound):
		return "user not found", true
	}
	return "", false
}

func directoryURL(c echo.Context) string {
	if page := c.QueryParam("page"); page != "" {
		return "/users?page=" + page
	}
	return "/users"
}
