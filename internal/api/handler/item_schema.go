package handler

import (
	"time"

	"github.com/itemdesk/item-registry/internal/core/ports"
)

// itemActionRequest is the POST / form. Which fields matter depends on the
// action discriminator: add uses name/description, edit adds item_id, delete
// only needs item_id.
type itemActionRequest struct {
	Action      string `form:"action"      validate:"required,oneof=add edit delete"`
	ItemID      int64  `form:"item_id"`
	Name        string `form:"name"`
	Description string `form:"description"`
}

// Response-only types owned by the transport layer, kept separate from
// ports/domain types so the JSON contract is not coupled to internal changes.

type creatorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type itemResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Creator     creatorResponse `json:"creator"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type viewerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	CanEdit  bool   `json:"can_edit"`
	IsAdmin  bool   `json:"is_admin"`
}

type listItemsResponse struct {
	Data       []itemResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
	Viewer     viewerResponse     `json:"viewer"`
	Flash      *ports.Flash       `json:"flash,omitempty"`
}
