package admin

import (
	"net/http"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/handler"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler handles admin account management.
type AdminHandler struct {
	pool   *pgxpool.Pool
	admins repository.AdminRepository
	roles  repository.RoleRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(pool *pgxpool.Pool, admins repository.AdminRepository, roles repository.RoleRepository) *AdminHandler {
	return &AdminHandler{pool: pool, admins: admins, roles: roles}
}

// List handles GET /api/admins?page=&per_page=.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page := handler.QueryInt(r, "page", 1)
	perPage := handler.QueryInt(r, "per_page", 10)

	admins, total, err := h.admins.List(r.Context(), h.pool, page, perPage)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("list admins", err))
		return
	}

	handler.Respond(w, http.StatusOK, map[string]interface{}{
		"admins":     admins,
		"pagination": handler.NewPagination(total, page, perPage),
	})
}

// Get handles GET /api/admins/{id}.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	admin, err := h.admins.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	if admin == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Admin", id))
		return
	}
	handler.Respond(w, http.StatusOK, admin)
}

type adminInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	IsActive *bool   `json:"is_active"`
	RoleIDs  []int64 `json:"role_ids"`
}

func (h *AdminHandler) checkRoleIDs(r *http.Request, roleIDs []int64) error {
	for _, roleID := range roleIDs {
		role, err := h.roles.FindByID(r.Context(), h.pool, roleID)
		if err != nil {
			return domain.ErrInternal("find role", err)
		}
		if role == nil {
			return domain.ErrNotFound("Role", roleID)
		}
	}
	return nil
}

// Create handles POST /api/admins.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input adminInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if input.Username == "" {
		handler.RespondError(w, r, domain.ErrValidation("username is required"))
		return
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		handler.RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		handler.RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}

	if existing, err := h.admins.FindByLogin(r.Context(), h.pool, input.Username); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	} else if existing != nil {
		handler.RespondError(w, r, domain.ErrDuplicate("Username already exists"))
		return
	}
	if existing, err := h.admins.FindByLogin(r.Context(), h.pool, input.Email); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	} else if existing != nil {
		handler.RespondError(w, r, domain.ErrDuplicate("Email already exists"))
		return
	}
	if err := h.checkRoleIDs(r, input.RoleIDs); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("hash password", err))
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	admin := &domain.AdminAccount{
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		IsActive:     isActive,
	}
	if err := h.admins.Create(r.Context(), h.pool, admin); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("create admin", err))
		return
	}
	if len(input.RoleIDs) > 0 {
		if err := h.admins.SetRoles(r.Context(), h.pool, admin.ID, input.RoleIDs); err != nil {
			handler.RespondError(w, r, domain.ErrInternal("set roles", err))
			return
		}
	}

	created, err := h.admins.FindByID(r.Context(), h.pool, admin.ID)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	handler.Respond(w, http.StatusCreated, created)
}

// Update handles PUT /api/admins/{id}. Deactivating your own account is
// rejected regardless of permissions.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	admin, err := h.admins.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	if admin == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Admin", id))
		return
	}

	var input adminInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	selfID := auth.SubjectIDFromContext(r.Context())
	if input.IsActive != nil && !*input.IsActive && id == selfID {
		handler.RespondError(w, r, domain.ErrForbidden("You cannot deactivate your own account"))
		return
	}

	if input.Username != "" && input.Username != admin.Username {
		if existing, err := h.admins.FindByLogin(r.Context(), h.pool, input.Username); err != nil {
			handler.RespondError(w, r, domain.ErrInternal("find admin", err))
			return
		} else if existing != nil {
			handler.RespondError(w, r, domain.ErrDuplicate("Username already exists"))
			return
		}
		admin.Username = input.Username
	}
	if input.Email != "" && input.Email != admin.Email {
		if err := domain.ValidateEmail(input.Email); err != nil {
			handler.RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		if existing, err := h.admins.FindByLogin(r.Context(), h.pool, input.Email); err != nil {
			handler.RespondError(w, r, domain.ErrInternal("find admin", err))
			return
		} else if existing != nil {
			handler.RespondError(w, r, domain.ErrDuplicate("Email already exists"))
			return
		}
		admin.Email = input.Email
	}
	if input.Name != "" {
		admin.Name = input.Name
	}
	if input.Password != "" {
		if err := domain.ValidatePassword(input.Password); err != nil {
			handler.RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			handler.RespondError(w, r, domain.ErrInternal("hash password", err))
			return
		}
		admin.PasswordHash = string(hash)
	}
	if input.IsActive != nil {
		admin.IsActive = *input.IsActive
	}

	if err := h.admins.Update(r.Context(), h.pool, admin); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if input.RoleIDs != nil {
		if err := h.checkRoleIDs(r, input.RoleIDs); err != nil {
			handler.RespondError(w, r, err)
			return
		}
		if err := h.admins.SetRoles(r.Context(), h.pool, id, input.RoleIDs); err != nil {
			handler.RespondError(w, r, domain.ErrInternal("set roles", err))
			return
		}
	}

	updated, err := h.admins.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	handler.Respond(w, http.StatusOK, updated)
}

// ToggleStatus handles PATCH /api/admins/{id}/toggle-status. Toggling your own
// account is rejected.
func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if id == auth.SubjectIDFromContext(r.Context()) {
		handler.RespondError(w, r, domain.ErrForbidden("You cannot change the status of your own account"))
		return
	}

	admin, err := h.admins.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	if admin == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Admin", id))
		return
	}

	admin.IsActive = !admin.IsActive
	if err := h.admins.Update(r.Context(), h.pool, admin); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.Respond(w, http.StatusOK, admin)
}

// Delete handles DELETE /api/admins/{id}. Deleting your own account is
// rejected.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if id == auth.SubjectIDFromContext(r.Context()) {
		handler.RespondError(w, r, domain.ErrForbidden("You cannot delete your own account"))
		return
	}

	if err := h.admins.Delete(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.Respond(w, http.StatusOK, map[string]string{"message": "Admin deleted successfully"})
}
