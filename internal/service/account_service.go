package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/vitrine/internal/auth"
	"github.com/vbonduro/vitrine/internal/domain"
)

// MinPasswordLength is the shortest password ChangePassword accepts.
const MinPasswordLength = 6

// adminRepository is the subset of store.AdminStore that AccountService requires.
type adminRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdateSocialLinks(ctx context.Context, id int64, links domain.SocialLinks) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

type AccountService struct {
	admins adminRepository
	logger *slog.Logger
}

func NewAccountService(admins adminRepository, logger *slog.Logger) *AccountService {
	return &AccountService{admins: admins, logger: logger}
}

// Authenticate returns the admin matching username and password. An unknown
// username and a wrong password produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Admin, error) {
	if username == "" || password == "" {
		return nil, domain.Validation("Missing credentials")
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil || !auth.CheckPassword(password, admin.PasswordHash) {
		s.logger.Info("login rejected", "username", username)
		return nil, domain.Unauthorized("Invalid credentials")
	}
	return admin, nil
}

func (s *AccountService) Profile(ctx context.Context, id int64) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.NotFound("Admin not found")
	}
	return admin, nil
}

// UpdateProfile merges the non-nil social links of u into the stored record.
func (s *AccountService) UpdateProfile(ctx context.Context, id int64, u domain.ProfileUpdate) (*domain.Admin, error) {
	admin, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	links := u.Apply(admin.SocialLinks)
	if err := s.admins.UpdateSocialLinks(ctx, id, links); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}

func (s *AccountService) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.Validation("Missing required fields")
	}
	if len(newPassword) < MinPasswordLength {
		return domain.Validation(fmt.Sprintf("New password must be at least %d characters", MinPasswordLength))
	}

	admin, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, admin.PasswordHash) {
		return domain.Unauthorized("Invalid current password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.admins.UpdatePasswordHash(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info("password changed", "admin_id", id)
	return nil
}

// EnsureAdmin creates the administrator account when none exists yet. It
// reports whether a record was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, domain.Validation("admin username and password are required to bootstrap")
	}
	if len(password) < MinPasswordLength {
		return false, domain.Validation(fmt.Sprintf("admin password must be at least %d characters", MinPasswordLength))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin, err := s.admins.Create(ctx, username, hash)
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Info("admin account created", "admin_id", admin.ID, "username", admin.Username)
	return true, nil
}
