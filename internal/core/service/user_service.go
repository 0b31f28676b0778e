package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/itemdesk/item-registry/internal/core/domain"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// seedUsername is the login name of the account created at first startup.
const seedUsername = "admin"

// UserService implements the admin directory management operations.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns one page of the directory ordered by created_at descending.
func (s *UserService) List(ctx context.Context, page, pageSize int) (*ports.ListUsersResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	users, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// UpdateRole assigns a new role after validating it is one of the known three.
func (s *UserService) UpdateRole(ctx context.Context, userID int64, role string) error {
	r := domain.Role(role)
	if !r.Valid() {
		return domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdateRole(ctx, userID, r); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Str("role", role).Msg("role updated")
	return nil
}

// UpdateName stores the trimmed display name; a blank name clears it.
func (s *UserService) UpdateName(ctx context.Context, userID int64, name string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(name)
	var value *string
	if trimmed != "" {
		value = &trimmed
	}
	return s.repo.UpdateName(ctx, userID, value)
}

// ChangePassword re-hashes and stores the new password after checking the
// confirmation matches.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

// Delete removes an account. Admin accounts are protected, and an admin can
// never remove themselves; both refusals leave the directory unchanged.
func (s *UserService) Delete(ctx context.Context, actorID, userID int64) error {
	if userID == actorID {
		return domain.ErrSelfDeletion
	}

	target, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role.IsAdmin() {
		return domain.ErrProtectedRole
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Str("username", target.Username).Msg("account deleted")
	return nil
}

// EnsureAdmin seeds the initial admin account at startup when the directory
// holds no admin-role account yet.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     seedUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		LastActivity: now,
	})
	if err == domain.ErrUserExists {
		// Another instance won the race; the directory has its admin.
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info().Str("username", seedUsername).Msg("seeded initial admin account")
	return nil
}
