package admin

import (
	"net/http"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/handler"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleHandler handles role management and role assignments.
type RoleHandler struct {
	pool   *pgxpool.Pool
	roles  repository.RoleRepository
	admins repository.AdminRepository
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(pool *pgxpool.Pool, roles repository.RoleRepository, admins repository.AdminRepository) *RoleHandler {
	return &RoleHandler{pool: pool, roles: roles, admins: admins}
}

// List handles GET /api/roles?page=&per_page=.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	page := handler.QueryInt(r, "page", 1)
	perPage := handler.QueryInt(r, "per_page", 10)

	roles, total, err := h.roles.List(r.Context(), h.pool, page, perPage)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("list roles", err))
		return
	}

	handler.Respond(w, http.StatusOK, map[string]interface{}{
		"roles":      roles,
		"pagination": handler.NewPagination(total, page, perPage),
	})
}

// Get handles GET /api/roles/{id}.
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	role, err := h.roles.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find role", err))
		return
	}
	if role == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Role", id))
		return
	}
	handler.Respond(w, http.StatusOK, role)
}

// Permissions handles GET /api/roles/permissions: the closed permission tag
// list clients build role forms from.
func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	handler.Respond(w, http.StatusOK, auth.AllPermissions())
}

type roleInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func validatePermissions(tags []string) error {
	for _, tag := range tags {
		if !auth.ValidPermission(tag) {
			return domain.ErrValidation("Invalid permission: " + tag)
		}
	}
	return nil
}

// Create handles POST /api/roles.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input roleInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if input.Name == "" {
		handler.RespondError(w, r, domain.ErrValidation("name is required"))
		return
	}
	if err := validatePermissions(input.Permissions); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if existing, err := h.roles.FindByName(r.Context(), h.pool, input.Name); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find role", err))
		return
	} else if existing != nil {
		handler.RespondError(w, r, domain.ErrDuplicate("Role with this name already exists"))
		return
	}

	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		Permissions: input.Permissions,
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	if err := h.roles.Create(r.Context(), h.pool, role); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("create role", err))
		return
	}
	handler.Respond(w, http.StatusCreated, role)
}

// Update handles PUT /api/roles/{id}.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	role, err := h.roles.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find role", err))
		return
	}
	if role == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Role", id))
		return
	}

	var input roleInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if input.Name != "" && input.Name != role.Name {
		if existing, err := h.roles.FindByName(r.Context(), h.pool, input.Name); err != nil {
			handler.RespondError(w, r, domain.ErrInternal("find role", err))
			return
		} else if existing != nil {
			handler.RespondError(w, r, domain.ErrDuplicate("Role with this name already exists"))
			return
		}
		role.Name = input.Name
	}
	if input.Description != "" {
		role.Description = input.Description
	}
	if input.Permissions != nil {
		if err := validatePermissions(input.Permissions); err != nil {
			handler.RespondError(w, r, err)
			return
		}
		role.Permissions = input.Permissions
	}

	if err := h.roles.Update(r.Context(), h.pool, role); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.Respond(w, http.StatusOK, role)
}

// Delete handles DELETE /api/roles/{id}. A role still held by any admin
// cannot be deleted.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLID(r, "id")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	role, err := h.roles.FindByID(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find role", err))
		return
	}
	if role == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Role", id))
		return
	}

	count, err := h.roles.AssignedAdminCount(r.Context(), h.pool, id)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("count assignments", err))
		return
	}
	if count > 0 {
		handler.RespondError(w, r, domain.ErrValidation("Cannot delete a role that is assigned to admins"))
		return
	}

	if err := h.roles.Delete(r.Context(), h.pool, id); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.Respond(w, http.StatusOK, map[string]string{"message": "Role deleted successfully"})
}

// AdminAssignments handles GET /api/roles/admin-assignments: every admin with
// their assigned roles.
func (h *RoleHandler) AdminAssignments(w http.ResponseWriter, r *http.Request) {
	page := handler.QueryInt(r, "page", 1)
	perPage := handler.QueryInt(r, "per_page", 10)

	admins, total, err := h.admins.List(r.Context(), h.pool, page, perPage)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("list admins", err))
		return
	}

	type assignment struct {
		AdminID  int64         `json:"admin_id"`
		Username string        `json:"username"`
		Name     string        `json:"name"`
		Roles    []domain.Role `json:"roles"`
	}

	assignments := make([]assignment, 0, len(admins))
	for _, a := range admins {
		assignments = append(assignments, assignment{
			AdminID:  a.ID,
			Username: a.Username,
			Name:     a.Name,
			Roles:    a.Roles,
		})
	}

	handler.Respond(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"pagination":  handler.NewPagination(total, page, perPage),
	})
}

type assignInput struct {
	AdminID int64 `json:"admin_id"`
	RoleID  int64 `json:"role_id"`
}

// Assign handles POST /api/roles/assign.
func (h *RoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input assignInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	admin, err := h.admins.FindByID(r.Context(), h.pool, input.AdminID)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find admin", err))
		return
	}
	if admin == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Admin", input.AdminID))
		return
	}
	role, err := h.roles.FindByID(r.Context(), h.pool, input.RoleID)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("find role", err))
		return
	}
	if role == nil {
		handler.RespondError(w, r, domain.ErrNotFound("Role", input.RoleID))
		return
	}

	has, err := h.admins.HasRole(r.Context(), h.pool, input.AdminID, input.RoleID)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("check assignment", err))
		return
	}
	if has {
		handler.RespondError(w, r, domain.ErrDuplicate("Admin already has this role"))
		return
	}

	if err := h.admins.AssignRole(r.Context(), h.pool, input.AdminID, input.RoleID); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("assign role", err))
		return
	}
	handler.Respond(w, http.StatusOK, map[string]string{"message": "Role assigned successfully"})
}

// Unassign handles POST /api/roles/unassign.
func (h *RoleHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	var input assignInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	has, err := h.admins.HasRole(r.Context(), h.pool, input.AdminID, input.RoleID)
	if err != nil {
		handler.RespondError(w, r, domain.ErrInternal("check assignment", err))
		return
	}
	if !has {
		handler.RespondError(w, r, domain.ErrValidation("Admin does not have this role"))
		return
	}

	if err := h.admins.UnassignRole(r.Context(), h.pool, input.AdminID, input.RoleID); err != nil {
		handler.RespondError(w, r, domain.ErrInternal("unassign role", err))
		return
	}
	handler.Respond(w, http.StatusOK, map[string]string{"message": "Role unassigned successfully"})
}
