package ports

import (
	"context"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

// ListItemsFilter carries the query parameters for listing items.
// CreatorID is enforced by the service layer: zero means no owner filter
// (admin scope), non-zero scopes the listing to that owner.
type ListItemsFilter struct {
	CreatorID int64
	Page      int // 1-based
	PageSize  int
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// Update stores name and description and refreshes updated_at, whether
	// or not the fields actually changed. Missing ids surface as
	// domain.ErrItemNotFound.
	Update(ctx context.Context, id int64, name, description string) error
	// Delete removes the item. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
	// List returns one page of items ordered by created_at descending plus
	// the total count matching the filter. Each item is joined with its
	// creator's identity for display.
	List(ctx context.Context, filter ListItemsFilter) ([]domain.Item, int64, error)
}
