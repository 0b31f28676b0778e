package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDeletion       = errors.New("cannot delete own account")
	ErrProtectedRole      = errors.New("cannot delete an admin account")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrItemNotFound       = errors.New("item not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionNotFound    = errors.New("session not found")
)

// Item is a record owned by a user. Ownership is attribution only; whether a
// non-owner may mutate an item is decided by the service layer.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Creator identity joined in by the repository for display.
	CreatorUsername string `json:"creator_username,omitempty"`
	CreatorName     string `json:"creator_name,omitempty"`
}
