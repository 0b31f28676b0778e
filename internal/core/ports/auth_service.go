package ports

import (
	"context"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

// AuthService covers the credential store and the session lifecycle.
type AuthService interface {
	// Register creates a user-role account. Duplicate usernames fail with
	// domain.ErrUserExists.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials, stamps last_activity and opens a session.
	// It returns the signed session token for the cookie. Unknown usernames
	// and wrong passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate resolves a session token back to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, string, error)
	// Logout destroys the session behind the token. Idempotent; an invalid
	// token is not an error.
	Logout(ctx context.Context, token string) error
}
