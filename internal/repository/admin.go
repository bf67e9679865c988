package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type adminRepo struct {
	roles RoleRepository
}

// NewAdminRepository returns a pgx-backed AdminRepository.
func NewAdminRepository(roles RoleRepository) AdminRepository {
	return &adminRepo{roles: roles}
}

const adminColumns = `id, username, email, name, password_hash, is_active, last_login, created_at, updated_at`

func scanAdmin(row pgx.Row) (*domain.AdminAccount, error) {
	a := &domain.AdminAccount{}
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.PasswordHash,
		&a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *adminRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.AdminAccount, error) {
	admin, err := scanAdmin(db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if err != nil || admin == nil {
		return admin, err
	}
	admin.Roles, err = r.roles.ListByAdmin(ctx, db, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return admin, nil
}

func (r *adminRepo) FindByLogin(ctx context.Context, db DBTX, usernameOrEmail string) (*domain.AdminAccount, error) {
	admin, err := scanAdmin(db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = $1 OR email = $1`, usernameOrEmail))
	if err != nil || admin == nil {
		return admin, err
	}
	admin.Roles, err = r.roles.ListByAdmin(ctx, db, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return admin, nil
}

func (r *adminRepo) List(ctx context.Context, db DBTX, page, perPage int) ([]domain.AdminAccount, int, error) {
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY name LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var admins []domain.AdminAccount
	for rows.Next() {
		a := domain.AdminAccount{}
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.PasswordHash,
			&a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range admins {
		admins[i].Roles, err = r.roles.ListByAdmin(ctx, db, admins[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("load roles: %w", err)
		}
	}
	return admins, total, nil
}

func (r *adminRepo) Create(ctx context.Context, db DBTX, admin *domain.AdminAccount) error {
	return db.QueryRow(ctx, `
		INSERT INTO admins (username, email, name, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		admin.Username, admin.Email, admin.Name, admin.PasswordHash, admin.IsActive,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepo) Update(ctx context.Context, db DBTX, admin *domain.AdminAccount) error {
	tag, err := db.Exec(ctx, `
		UPDATE admins
		SET username = $2, email = $3, name = $4, password_hash = $5, is_active = $6, updated_at = now()
		WHERE id = $1`,
		admin.ID, admin.Username, admin.Email, admin.Name, admin.PasswordHash, admin.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Admin", admin.ID)
	}
	return nil
}

func (r *adminRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Admin", id)
	}
	return nil
}

func (r *adminRepo) TouchLastLogin(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `UPDATE admins SET last_login = now() WHERE id = $1`, id)
	return err
}

func (r *adminRepo) Standing(ctx context.Context, db DBTX, id int64) (bool, bool, error) {
	var active bool
	err := db.QueryRow(ctx, `SELECT is_active FROM admins WHERE id = $1`, id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("admin standing: %w", err)
	}
	return true, active, nil
}

func (r *adminRepo) SetRoles(ctx context.Context, db DBTX, adminID int64, roleIDs []int64) error {
	if _, err := db.Exec(ctx, `DELETE FROM admin_roles WHERE admin_id = $1`, adminID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := db.Exec(ctx,
			`INSERT INTO admin_roles (admin_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			adminID, roleID); err != nil {
			return err
		}
	}
	return nil
}

func (r *adminRepo) AssignRole(ctx context.Context, db DBTX, adminID, roleID int64) error {
	_, err := db.Exec(ctx,
		`INSERT INTO admin_roles (admin_id, role_id) VALUES ($1, $2)`, adminID, roleID)
	return err
}

func (r *adminRepo) UnassignRole(ctx context.Context, db DBTX, adminID, roleID int64) error {
	_, err := db.Exec(ctx,
		`DELETE FROM admin_roles WHERE admin_id = $1 AND role_id = $2`, adminID, roleID)
	return err
}

func (r *adminRepo) HasRole(ctx context.Context, db DBTX, adminID, roleID int64) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admin_roles WHERE admin_id = $1 AND role_id = $2)`,
		adminID, roleID).Scan(&exists)
	return exists, err
}
