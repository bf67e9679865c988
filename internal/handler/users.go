package handler

import (
	"net/http"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles admin management of end-user accounts.
type UserHandler struct {
	pool  *pgxpool.Pool
	users repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(pool *pgxpool.Pool, users repository.UserRepository) *UserHandler {
	return &UserHandler{pool: pool, users: users}
}

// List handles GET /api/users?status=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if err := domain.ValidateUserStatus(status); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
	}

	users, err := h.users.List(r.Context(), h.pool, status)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list users", err))
		return
	}
	Respond(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find user", err))
		return
	}
	if user == nil {
		RespondError(w, r, domain.ErrNotFound("User", id))
		return
	}
	Respond(w, http.StatusOK, user)
}

// GetByUUID handles GET /api/users/uuid/{uuid}.
func (h *UserHandler) GetByUUID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "uuid")
	if _, err := uuid.Parse(raw); err != nil {
		RespondError(w, r, domain.ErrValidation("Invalid uuid parameter"))
		return
	}

	user, err := h.users.FindByUUID(r.Context(), h.pool, raw)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find user", err))
		return
	}
	if user == nil {
		RespondError(w, r, domain.ErrNotFound("User", raw))
		return
	}
	Respond(w, http.StatusOK, user)
}

// Stats handles GET /api/users/stats: user counts broken down by status.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var total, active, inactive, suspended int
	err := h.pool.QueryRow(r.Context(), `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'inactive'),
		       COUNT(*) FILTER (WHERE status = 'suspended')
		FROM users`).Scan(&total, &active, &inactive, &suspended)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("user stats", err))
		return
	}

	Respond(w, http.StatusOK, map[string]int{
		"total":     total,
		"active":    active,
		"inactive":  inactive,
		"suspended": suspended,
	})
}

// Activity handles GET /api/users/activity: daily active/new user counts.
func (h *UserHandler) Activity(w http.ResponseWriter, r *http.Request) {
	days := QueryInt(r, "days", 30)

	rows, err := h.pool.Query(r.Context(), `
		SELECT id, date, active_users, new_users FROM user_activity
		WHERE date > $1 ORDER BY date`, time.Now().AddDate(0, 0, -days))
	if err != nil {
		RespondError(w, r, domain.ErrInternal("user activity", err))
		return
	}
	defer rows.Close()

	var activity []domain.UserActivity
	for rows.Next() {
		a := domain.UserActivity{}
		if err := rows.Scan(&a.ID, &a.Date, &a.ActiveUsers, &a.NewUsers); err != nil {
			RespondError(w, r, domain.ErrInternal("scan activity", err))
			return
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		RespondError(w, r, domain.ErrInternal("user activity", err))
		return
	}
	Respond(w, http.StatusOK, activity)
}

type createUserInput struct {
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	ProfileImage string   `json:"profile_image"`
	Bio          string   `json:"bio"`
	Password     string   `json:"password"`
	Status       string   `json:"status"`
	Sports       []string `json:"favorite_sports"`
	Teams        []int64  `json:"favorite_teams"`
	Players      []int64  `json:"favorite_players"`
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}
	if input.Username == "" {
		RespondError(w, r, domain.ErrValidation("username is required"))
		return
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}
	if input.Status == "" {
		input.Status = domain.UserStatusActive
	}
	if err := domain.ValidateUserStatus(input.Status); err != nil {
		RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}

	if existing, err := h.users.FindByEmail(r.Context(), h.pool, input.Email); err != nil {
		RespondError(w, r, domain.ErrInternal("find user", err))
		return
	} else if existing != nil {
		RespondError(w, r, domain.ErrDuplicate("Email already registered"))
		return
	}
	if existing, err := h.users.FindByUsername(r.Context(), h.pool, input.Username); err != nil {
		RespondError(w, r, domain.ErrInternal("find user", err))
		return
	} else if existing != nil {
		RespondError(w, r, domain.ErrDuplicate("Username already taken"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("hash password", err))
		return
	}

	now := time.Now()
	user := &domain.User{
		UUID:             uuid.New().String(),
		Email:            input.Email,
		Username:         input.Username,
		FullName:         input.FullName,
		ProfileImage:     input.ProfileImage,
		Bio:              input.Bio,
		PasswordHash:     string(hash),
		RegistrationDate: now,
		LastLogin:        now,
		Status:           input.Status,
		FavoriteSports:   orEmpty(input.Sports),
		FavoriteTeams:    orEmptyInt64(input.Teams),
		FavoritePlayers:  orEmptyInt64(input.Players),
	}
	if err := h.users.Create(r.Context(), h.pool, user); err != nil {
		RespondError(w, r, domain.ErrInternal("create user", err))
		return
	}
	Respond(w, http.StatusCreated, user)
}

type updateUserInput struct {
	Email        *string `json:"email"`
	Username     *string `json:"username"`
	FullName     *string `json:"full_name"`
	ProfileImage *string `json:"profile_image"`
	Bio          *string `json:"bio"`
	Status       *string `json:"status"`
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var input updateUserInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find user", err))
		return
	}
	if user == nil {
		RespondError(w, r, domain.ErrNotFound("User", id))
		return
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		if existing, err := h.users.FindByEmail(r.Context(), h.pool, *input.Email); err != nil {
			RespondError(w, r, domain.ErrInternal("find user", err))
			return
		} else if existing != nil {
			RespondError(w, r, domain.ErrDuplicate("Email already registered"))
			return
		}
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != user.Username {
		if existing, err := h.users.FindByUsername(r.Context(), h.pool, *input.Username); err != nil {
			RespondError(w, r, domain.ErrInternal("find user", err))
			return
		} else if existing != nil {
			RespondError(w, r, domain.ErrDuplicate("Username already taken"))
			return
		}
		user.Username = *input.Username
	}
	if input.Status != nil {
		if err := domain.ValidateUserStatus(*input.Status); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		user.Status = *input.Status
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

	if err := h.users.Update(r.Context(), h.pool, user); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyInt64(s []int64) []int64 {
	if s == nil {
		return []int64{}
	}
	return s
}
