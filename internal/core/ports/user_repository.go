package ports

import (
	"context"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts a new account. The unique index on username is the
	// final arbiter under concurrent registrations; a violation surfaces
	// as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	// UpdateName stores the trimmed name, or NULL when name is nil.
	UpdateName(ctx context.Context, id int64, name *string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastActivity(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	// List returns one page of accounts ordered by created_at descending
	// plus the total count. Page is 1-based; a page past the end yields an
	// empty slice, not an error.
	List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	// CountAdmins reports how many admin-role accounts exist (seeding check).
	CountAdmins(ctx context.Context) (int64, error)
}
