package handler

import (
	"time"

	"github.com/itemdesk/item-registry/internal/core/ports"
)

// userActionRequest is the POST /users form. Which fields matter depends on
// the action discriminator.
type userActionRequest struct {
	Action          string `form:"action"  validate:"required,oneof=edit_role edit_name change_password delete"`
	UserID          int64  `form:"user_id" validate:"required"`
	Role            string `form:"role"`
	Name            string `form:"name"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

type userResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
	Viewer     viewerResponse     `json:"viewer"`
	Flash      *ports.Flash       `json:"flash,omitempty"`
}
