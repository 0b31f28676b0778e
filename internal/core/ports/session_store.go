package ports

import "context"

// Flash is a one-shot notice stored next to a session record and consumed by
// the next page view.
type Flash struct {
	Kind    string `json:"kind"` // "success" | "danger" | "info"
	Message string `json:"message"`
}

// SessionStore keeps the server-side session records referenced by the
// client-held token. Records expire on their own; Delete only needs to cover
// explicit logout.
type SessionStore interface {
	// Create allocates a new session id for the user.
	Create(ctx context.Context, userID int64) (string, error)
	// Resolve returns the user id a session id maps to, or
	// domain.ErrSessionNotFound when the record is missing or expired.
	Resolve(ctx context.Context, sid string) (int64, error)
	// Delete removes the record. Deleting a missing session is a no-op.
	Delete(ctx context.Context, sid string) error

	SetFlash(ctx context.Context, sid string, flash Flash) error
	// PopFlash returns the pending flash, if any, and clears it.
	PopFlash(ctx context.Context, sid string) (*Flash, error)
}
