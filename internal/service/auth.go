package service

import (
	"context"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/guard"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin login and credential management.
type AuthService struct {
	pool   *pgxpool.Pool
	admins repository.AdminRepository
	codec  *auth.Codec
}

// NewAuthService creates a new AuthService.
func NewAuthService(pool *pgxpool.Pool, admins repository.AdminRepository, codec *auth.Codec) *AuthService {
	return &AuthService{pool: pool, admins: admins, codec: codec}
}

// LoginInput holds the admin login request fields. Username also accepts the
// admin's email address.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned on successful admin login.
type LoginResult struct {
	Token        string               `json:"token"`
	RefreshToken string               `json:"refresh_token"`
	Admin        *domain.AdminAccount `json:"admin"`
}

// Login authenticates an admin by username or email. Unknown accounts and bad
// passwords both return the same generic 401.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ip string) (*LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrValidation("username and password are required")
	}

	if err := guard.CheckLocked(ctx, s.pool, input.Username, guard.RealmAdmin); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByLogin(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find admin", err)
	}
	if admin == nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmAdmin, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}
	if !admin.IsActive {
		return nil, domain.ErrForbidden("Account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmAdmin, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}

	guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmAdmin, ip, true)

	if err := s.admins.TouchLastLogin(ctx, s.pool, admin.ID); err != nil {
		return nil, domain.ErrInternal("touch last login", err)
	}

	token, err := s.codec.Issue(auth.RealmAdmin, admin.ID, auth.TokenAccess)
	if err != nil {
		return nil, domain.ErrInternal("issue access token", err)
	}
	refresh, err := s.codec.Issue(auth.RealmAdmin, admin.ID, auth.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInternal("issue refresh token", err)
	}

	return &LoginResult{Token: token, RefreshToken: refresh, Admin: admin}, nil
}

// Me returns the authenticated admin's account with roles.
func (s *AuthService) Me(ctx context.Context, adminID int64) (*domain.AdminAccount, error) {
	admin, err := s.admins.FindByID(ctx, s.pool, adminID)
	if err != nil {
		return nil, domain.ErrInternal("find admin", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound("Admin", adminID)
	}
	return admin, nil
}

// Refresh exchanges a verified refresh token's identity for a new access token.
// The account must still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, adminID int64) (string, error) {
	admin, err := s.admins.FindByID(ctx, s.pool, adminID)
	if err != nil {
		return "", domain.ErrInternal("find admin", err)
	}
	if admin == nil || !admin.IsActive {
		return "", domain.ErrUnauthorized("Invalid authentication token")
	}
	token, err := s.codec.Issue(auth.RealmAdmin, admin.ID, auth.TokenAccess)
	if err != nil {
		return "", domain.ErrInternal("issue access token", err)
	}
	return token, nil
}

// ChangePasswordInput holds the password change request fields.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password and replaces it.
func (s *AuthService) ChangePassword(ctx context.Context, adminID int64, input ChangePasswordInput) error {
	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return domain.ErrValidation(err.Error())
	}

	admin, err := s.admins.FindByID(ctx, s.pool, adminID)
	if err != nil {
		return domain.ErrInternal("find admin", err)
	}
	if admin == nil {
		return domain.ErrNotFound("Admin", adminID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrValidation("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.ErrInternal("hash password", err)
	}

	admin.PasswordHash = string(hash)
	if err := s.admins.Update(ctx, s.pool, admin); err != nil {
		return domain.ErrInternal("update admin", err)
	}
	return nil
}
