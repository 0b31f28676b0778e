package domain

import "time"

// Role controls what a user may do. Capabilities are derived from the role on
// every request; roles carry no state beyond their name.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// CanEdit reports whether the role may add, edit or delete items.
func (r Role) CanEdit() bool {
	return r == RoleEditor || r == RoleAdmin
}

// IsAdmin reports whether the role may see all items and manage users.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User models an account in the directory.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         *string   `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// DisplayName returns the optional display name when set, the username otherwise.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Username
}
