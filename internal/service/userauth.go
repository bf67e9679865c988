package service

import (
	"context"
	"time"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/guard"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService handles end-user signup, login and profile management.
type UserAuthService struct {
	pool  *pgxpool.Pool
	users repository.UserRepository
	codec *auth.Codec
}

// NewUserAuthService creates a new UserAuthService.
func NewUserAuthService(pool *pgxpool.Pool, users repository.UserRepository, codec *auth.Codec) *UserAuthService {
	return &UserAuthService{pool: pool, users: users, codec: codec}
}

// SignupInput holds the end-user registration request fields.
type SignupInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// UserAuthResult is returned on successful signup or login.
type UserAuthResult struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// Signup creates an end-user account. Duplicate email or username is a 409.
func (s *UserAuthService) Signup(ctx context.Context, input SignupInput) (*UserAuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if input.Username == "" {
		return nil, domain.ErrValidation("username is required")
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if existing, err := s.users.FindByEmail(ctx, s.pool, input.Email); err != nil {
		return nil, domain.ErrInternal("find user", err)
	} else if existing != nil {
		return nil, domain.ErrConflict("Email already registered")
	}
	if existing, err := s.users.FindByUsername(ctx, s.pool, input.Username); err != nil {
		return nil, domain.ErrInternal("find user", err)
	} else if existing != nil {
		return nil, domain.ErrConflict("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		UUID:             uuid.New().String(),
		Email:            input.Email,
		Username:         input.Username,
		FullName:         input.FullName,
		PasswordHash:     string(hash),
		RegistrationDate: now,
		LastLogin:        now,
		Status:           domain.UserStatusActive,
		FavoriteSports:   []string{},
		FavoriteTeams:    []int64{},
		FavoritePlayers:  []int64{},
	}
	if err := s.users.Create(ctx, s.pool, user); err != nil {
		return nil, domain.ErrInternal("create user", err)
	}

	return s.issueTokens(user)
}

// UserLoginInput holds the end-user login request fields. Username also
// accepts the user's email address.
type UserLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an end user by username or email.
func (s *UserAuthService) Login(ctx context.Context, input UserLoginInput, ip string) (*UserAuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrValidation("username and password are required")
	}

	if err := guard.CheckLocked(ctx, s.pool, input.Username, guard.RealmUser); err != nil {
		return nil, err
	}

	user, err := s.users.FindByLogin(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmUser, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrForbidden("Account is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmUser, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}

	guard.RecordAttempt(ctx, s.pool, input.Username, guard.RealmUser, ip, true)

	if err := s.users.TouchLastLogin(ctx, s.pool, user.ID); err != nil {
		return nil, domain.ErrInternal("touch last login", err)
	}

	return s.issueTokens(user)
}

// Refresh issues a new access token for a verified refresh-token holder.
func (s *UserAuthService) Refresh(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return "", domain.ErrInternal("find user", err)
	}
	if user == nil || user.Status != domain.UserStatusActive {
		return "", domain.ErrUnauthorized("Invalid authentication token")
	}
	token, err := s.codec.Issue(auth.RealmUser, user.ID, auth.TokenAccess)
	if err != nil {
		return "", domain.ErrInternal("issue access token", err)
	}
	return token, nil
}

// Profile returns the authenticated user's account.
func (s *UserAuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("User", userID)
	}
	return user, nil
}

// UpdateProfileInput holds the editable profile fields. Nil pointers leave the
// stored value unchanged.
type UpdateProfileInput struct {
	Email        *string `json:"email"`
	Username     *string `json:"username"`
	FullName     *string `json:"full_name"`
	ProfileImage *string `json:"profile_image"`
	Bio          *string `json:"bio"`
}

// UpdateProfile applies partial profile edits. Email and username changes run
// the same duplicate checks as signup.
func (s *UserAuthService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("User", userID)
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
		if existing, err := s.users.FindByEmail(ctx, s.pool, *input.Email); err != nil {
			return nil, domain.ErrInternal("find user", err)
		} else if existing != nil {
			return nil, domain.ErrConflict("Email already registered")
		}
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != user.Username {
		if *input.Username == "" {
			return nil, domain.ErrValidation("username is required")
		}
		if existing, err := s.users.FindByUsername(ctx, s.pool, *input.Username); err != nil {
			return nil, domain.ErrInternal("find user", err)
		} else if existing != nil {
			return nil, domain.ErrConflict("Username already taken")
		}
		user.Username = *input.Username
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.users.Update(ctx, s.pool, user); err != nil {
		return nil, domain.ErrInternal("update user", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *UserAuthService) ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error {
	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return domain.ErrValidation(err.Error())
	}

	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return domain.ErrInternal("find user", err)
	}
	if user == nil {
		return domain.ErrNotFound("User", userID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrValidation("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.ErrInternal("hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, s.pool, user); err != nil {
		return domain.ErrInternal("update user", err)
	}
	return nil
}

// UpdateFavorites replaces all three favorite sets wholesale. Applying the
// same payload twice leaves the stored state unchanged.
func (s *UserAuthService) UpdateFavorites(ctx context.Context, userID int64, fav domain.Favorites) (*domain.User, error) {
	if fav.Sports == nil {
		fav.Sports = []string{}
	}
	if fav.Teams == nil {
		fav.Teams = []int64{}
	}
	if fav.Players == nil {
		fav.Players = []int64{}
	}

	if err := s.users.UpdateFavorites(ctx, s.pool, userID, fav); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *UserAuthService) issueTokens(user *domain.User) (*UserAuthResult, error) {
	token, err := s.codec.Issue(auth.RealmUser, user.ID, auth.TokenAccess)
	if err != nil {
		return nil, domain.ErrInternal("issue access token", err)
	}
	refresh, err := s.codec.Issue(auth.RealmUser, user.ID, auth.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInternal("issue refresh token", err)
	}
	return &UserAuthResult{Token: token, RefreshToken: refresh, User: user}, nil
}
