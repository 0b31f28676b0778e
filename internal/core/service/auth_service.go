package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// AuthService implements registration, login and session resolution.
// The client-held token is a signed HS256 JWT whose only payload is the
// opaque session id; the session record itself lives in the SessionStore.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a user-role account. Plaintext passwords are hashed here
// and never stored or logged.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		LastActivity: now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Login verifies credentials, stamps last_activity and opens a session.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastActivity(ctx, user.ID); err != nil {
		return "", nil, err
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.signToken(sid)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")
	return token, user, nil
}

// Authenticate resolves a session token back to its user and session id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, string, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil, "", domain.ErrSessionNotFound
	}

	userID, err := s.sessions.Resolve(ctx, sid)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Account deleted while the session was live.
			_ = s.sessions.Delete(ctx, sid)
			return nil, "", domain.ErrSessionNotFound
		}
		return nil, "", err
	}

	return user, sid, nil
}

// Logout destroys the session behind the token. Tokens that no longer parse
// or resolve are ignored; logging out twice succeeds both times.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

func (s *AuthService) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
