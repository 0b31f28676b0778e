package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/itemdesk/item-registry/internal/api/metrics"
	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// ItemHandler serves the item listing and its add/edit/delete actions.
type ItemHandler struct {
	items    ports.ItemService
	sessions ports.SessionStore
}

func NewItemHandler(items ports.ItemService, sessions ports.SessionStore) *ItemHandler {
	return &ItemHandler{items: items, sessions: sessions}
}

// List serves one page of items scoped by the viewer's role.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  listItemsResponse
// @Router       / [get]
func (h *ItemHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.items.List(c.Request().Context(), ports.ListItemsInput{
		Actor: user,
		Page:  pageParam(c),
	})
	if err != nil {
		return err
	}

	pending, _ := h.sessions.PopFlash(c.Request().Context(), sessionID(c))

	data := make([]itemResponse, 0, len(result.Items))
	for _, it := range result.Items {
		data = append(data, itemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Creator: creatorResponse{
				ID:       it.CreatorID,
				Username: it.CreatorUsername,
				Name:     it.CreatorName,
			},
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, listItemsResponse{
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

// Mutate dispatches one POST action against the listing and redirects back,
// preserving the page the viewer was on.
//
// @Summary      Add, edit or delete an item
// @Tags         items
// @Accept       x-www-form-urlencoded
// @Param        action       formData  string  true   "add | edit | delete"
// @Param        item_id      formData  int     false  "Target item (edit/delete)"
// @Param        name         formData  string  false  "Item name"
// @Param        description  formData  string  false  "Item description"
// @Success      303
// @Router       / [post]
func (h *ItemHandler) Mutate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	back := listingURL(c)

	var req itemActionRequest
	if err := c.Bind(&req); err != nil {
		flash(c, h.sessions, "danger", "invalid form")
		return seeOther(c, back)
	}
	if err := c.Validate(&req); err != nil {
		flash(c, h.sessions, "danger", err.Error())
		return seeOther(c, back)
	}

	if !user.Role.CanEdit() {
		metrics.ItemActionsTotal.WithLabelValues(req.Action, "denied").Inc()
		flash(c, h.sessions, "danger", "you do not have permission to edit")
		return seeOther(c, back)
	}

	input := ports.MutateItemInput{
		Actor:       user,
		ItemID:      req.ItemID,
		Name:        req.Name,
		Description: req.Description,
	}

	switch req.Action {
	case "add", "edit":
		if strings.TrimSpace(req.Name) == "" {
			flash(c, h.sessions, "danger", "name is required")
			return seeOther(c, back)
		}
	}

	var actionErr error
	var notice string
	switch req.Action {
	case "add":
		_, actionErr = h.items.Add(c.Request().Context(), input)
		notice = "item added"
	case "edit":
		actionErr = h.items.Edit(c.Request().Context(), input)
		notice = "item updated"
	case "delete":
		actionErr = h.items.Delete(c.Request().Context(), input)
		notice = "item deleted"
	}

	if actionErr != nil {
		if errors.Is(actionErr, domain.ErrForbidden) {
			metrics.ItemActionsTotal.WithLabelValues(req.Action, "denied").Inc()
			flash(c, h.sessions, "danger", "you do not have permission to edit")
			return seeOther(c, back)
		}
		return actionErr
	}

	metrics.ItemActionsTotal.WithLabelValues(req.Action, "success").Inc()
	flash(c, h.sessions, "success", notice)
	return seeOther(c, back)
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listingURL rebuilds the listing location including the page the form was
// submitted from.
func listingURL(c echo.Context) string {
	if page := c.QueryParam("page"); page != "" {
		return "/?page=" + page
	}
	return "/"
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
