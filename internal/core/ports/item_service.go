package ports

import (
	"context"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

// ListItemsInput carries the acting user's identity alongside the page
// request; the service derives the listing scope from the role.
type ListItemsInput struct {
	Actor    *domain.User
	Page     int
	PageSize int
}

// ListItemsResult is one page of items plus pagination totals.
type ListItemsResult struct {
	Items      []domain.Item
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// MutateItemInput carries one POST action against the item listing.
type MutateItemInput struct {
	Actor       *domain.User
	ItemID      int64 // edit/delete only
	Name        string
	Description string
}

// ItemService defines the use-case operations behind the item listing.
// Every mutation requires the actor's role to grant CanEdit; edits and
// deletes by editors are additionally restricted to their own items.
type ItemService interface {
	List(ctx context.Context, input ListItemsInput) (*ListItemsResult, error)
	Add(ctx context.Context, input MutateItemInput) (*domain.Item, error)
	Edit(ctx context.Context, input MutateItemInput) error
	Delete(ctx context.Context, input MutateItemInput) error
}
