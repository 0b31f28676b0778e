package ports

import (
	"context"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

// ListUsersResult is one page of the user directory plus pagination totals.
type ListUsersResult struct {
	Users      []domain.User
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// UserService defines the admin-only directory management operations.
// Authorization (admin gate) happens at the transport layer; the service
// enforces the per-operation constraints.
type UserService interface {
	List(ctx context.Context, page, pageSize int) (*ListUsersResult, error)
	UpdateRole(ctx context.Context, userID int64, role string) error
	UpdateName(ctx context.Context, userID int64, name string) error
	// ChangePassword re-hashes and stores the new password after checking
	// the confirmation matches.
	ChangePassword(ctx context.Context, userID int64, newPassword, confirmPassword string) error
	// Delete removes an account. Deleting the acting admin's own account
	// fails with domain.ErrSelfDeletion; deleting any admin account fails
	// with domain.ErrProtectedRole.
	Delete(ctx context.Context, actorID, userID int64) error
	// EnsureAdmin seeds the initial admin account when no admin exists.
	EnsureAdmin(ctx context.Context, password string) error
}
