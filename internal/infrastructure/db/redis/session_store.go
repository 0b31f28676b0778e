package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// SessionStore keeps session records in Redis.
// Key formats: session:<sid> -> user id, flash:<sid> -> JSON flash.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore whose records expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create allocates a fresh opaque session id for the user.
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(sid), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// Resolve returns the user id behind a session id.
func (s *SessionStore) Resolve(ctx context.Context, sid string) (int64, error) {
	val, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrSessionNotFound
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Delete removes the session record and any pending flash. Missing keys are
// fine; logout is idempotent.
func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey(sid), flashKey(sid)).Err()
}

// SetFlash stores a one-shot notice next to the session record.
func (s *SessionStore) SetFlash(ctx context.Context, sid string, flash ports.Flash) error {
	b, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, flashKey(sid), b, s.ttl).Err()
}

// PopFlash returns the pending flash, if any, and clears it.
func (s *SessionStore) PopFlash(ctx context.Context, sid string) (*ports.Flash, error) {
	val, err := s.client.GetDel(ctx, flashKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop flash: %w", err)
	}
	var f ports.Flash
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func sessionKey(sid string) string { return "session:" + sid }
func flashKey(sid string) string   { return "flash:" + sid }
