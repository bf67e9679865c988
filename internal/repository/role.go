package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type roleRepo struct{}

// NewRoleRepository returns a pgx-backed RoleRepository.
func NewRoleRepository() RoleRepository {
	return &roleRepo{}
}

const roleColumns = `id, name, description, permissions, created_at, updated_at`

func scanRole(row pgx.Row) (*domain.Role, error) {
	role := &domain.Role{}
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
		&role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

func collectRoles(rows pgx.Rows) ([]domain.Role, error) {
	defer rows.Close()
	var roles []domain.Role
	for rows.Next() {
		role := domain.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
			&role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Role, error) {
	return scanRole(db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
}

func (r *roleRepo) FindByName(ctx context.Context, db DBTX, name string) (*domain.Role, error) {
	return scanRole(db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
}

func (r *roleRepo) List(ctx context.Context, db DBTX, page, perPage int) ([]domain.Role, int, error) {
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(ctx,
		`SELECT `+roleColumns+` FROM roles ORDER BY name LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	roles, err := collectRoles(rows)
	return roles, total, err
}

func (r *roleRepo) ListByAdmin(ctx context.Context, db DBTX, adminID int64) ([]domain.Role, error) {
	rows, err := db.Query(ctx, `
		SELECT r.id, r.name, r.description, r.permissions, r.created_at, r.updated_at
		FROM roles r
		JOIN admin_roles ar ON ar.role_id = r.id
		WHERE ar.admin_id = $1
		ORDER BY r.name`, adminID)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

func (r *roleRepo) Create(ctx context.Context, db DBTX, role *domain.Role) error {
	return db.QueryRow(ctx, `
		INSERT INTO roles (name, description, permissions)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		role.Name, role.Description, role.Permissions,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *roleRepo) Update(ctx context.Context, db DBTX, role *domain.Role) error {
	tag, err := db.Exec(ctx, `
		UPDATE roles SET name = $2, description = $3, permissions = $4, updated_at = now()
		WHERE id = $1`,
		role.ID, role.Name, role.Description, role.Permissions)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Role", role.ID)
	}
	return nil
}

func (r *roleRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Role", id)
	}
	return nil
}

func (r *roleRepo) AssignedAdminCount(ctx context.Context, db DBTX, roleID int64) (int, error) {
	var count int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM admin_roles WHERE role_id = $1`, roleID).Scan(&count)
	return count, err
}

// AccessResolver adapts the admin and role repositories to the auth
// middleware's source interfaces over a fixed pool.
type AccessResolver struct {
	pool   *pgxpool.Pool
	admins AdminRepository
	roles  RoleRepository
}

// NewAccessResolver creates an AccessResolver.
func NewAccessResolver(pool *pgxpool.Pool, admins AdminRepository, roles RoleRepository) *AccessResolver {
	return &AccessResolver{pool: pool, admins: admins, roles: roles}
}

// EffectivePermissions computes the union of permission tags across the
// admin's assigned roles.
func (p *AccessResolver) EffectivePermissions(ctx context.Context, adminID int64) (auth.PermissionSet, error) {
	roles, err := p.roles.ListByAdmin(ctx, p.pool, adminID)
	if err != nil {
		return auth.PermissionSet{}, err
	}
	return auth.NewPermissionSet(roles), nil
}

// AdminStanding reports whether the admin account exists and is active.
func (p *AccessResolver) AdminStanding(ctx context.Context, adminID int64) (bool, bool, error) {
	return p.admins.Standing(ctx, p.pool, adminID)
}
