package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/itemdesk/item-registry/internal/core/domain"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubSessionStore) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, "test-secret", time.Hour, zerolog.Nop())
	return svc, users, sessions
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()

	created, err := svc.Register(context.Background(), "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an assigned id")
	}
	if created.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", created.Role, domain.RoleUser)
	}
	if created.PasswordHash == "s3cretpw" || strings.Contains(created.PasswordHash, "s3cretpw") {
		t.Error("plaintext password stored in hash")
	}

	stored, err := users.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpw")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "s3cretpw"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "otherpw"); err != domain.ErrUserExists {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, users, sessions := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	before, _ := users.FindByID(ctx, created.ID)

	token, user, err := svc.Login(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("open sessions = %d, want 1", len(sessions.sessions))
	}

	after, _ := users.FindByID(ctx, created.ID)
	if !after.LastActivity.After(before.LastActivity) {
		t.Error("last_activity was not stamped on login")
	}
}

func TestLoginRejections(t *testing.T) {
	svc, users, sessions := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	before, _ := users.FindByID(ctx, created.ID)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "s3cretpw"},
		{"wrong password", "alice", "wrong"},
		{"empty password", "alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.username, tt.password); err != domain.ErrInvalidCredentials {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	if len(sessions.sessions) != 0 {
		t.Errorf("open sessions = %d, want 0", len(sessions.sessions))
	}
	after, _ := users.FindByID(ctx, created.ID)
	if !after.LastActivity.Equal(before.LastActivity) {
		t.Error("failed login must not stamp last_activity")
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cretpw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, sid, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}
	if sid == "" {
		t.Error("empty session id")
	}
}

func TestAuthenticateInvalidTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	other := NewAuthService(newStubUserRepo(), newStubSessionStore(), "other-secret", time.Hour, zerolog.Nop())
	if _, err := other.Register(ctx, "alice", "s3cretpw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	foreign, _, err := other.Login(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	for _, token := range []string{"", "garbage", foreign} {
		if _, _, err := svc.Authenticate(ctx, token); err != domain.ErrSessionNotFound {
			t.Errorf("Authenticate(%q) err = %v, want ErrSessionNotFound", token, err)
		}
	}
}

func TestAuthenticateDeletedAccount(t *testing.T) {
	svc, users, sessions := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := users.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, token); err != domain.ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("session for a deleted account should be destroyed")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, sessions := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cretpw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice", "s3cretpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("first Logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("open sessions = %d, want 0", len(sessions.sessions))
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Errorf("second Logout: %v", err)
	}
	if err := svc.Logout(ctx, "garbage"); err != nil {
		t.Errorf("Logout with unparseable token: %v", err)
	}
}
