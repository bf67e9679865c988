package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmins bootstraps the baseline roles and a default admin account when
// the admins table is empty. The default password must be changed immediately
// after first login.
func SeedAdmins(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	roles := repository.NewRoleRepository()
	admins := repository.NewAdminRepository(roles)

	superAdmin, err := ensureRole(ctx, pool, roles, &domain.Role{
		Name:        "Super Admin",
		Description: "Full access to all features",
		Permissions: []string{string(auth.PermAll)},
	})
	if err != nil {
		return err
	}
	if _, err := ensureRole(ctx, pool, roles, &domain.Role{
		Name:        "Content Manager",
		Description: "Manage content and notifications",
		Permissions: []string{string(auth.PermContent), string(auth.PermNotification)},
	}); err != nil {
		return err
	}
	if _, err := ensureRole(ctx, pool, roles, &domain.Role{
		Name:        "Reels Manager",
		Description: "Manage reels, leagues, and content",
		Permissions: []string{string(auth.PermReels), string(auth.PermContent), string(auth.PermLeagues)},
	}); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	admin := &domain.AdminAccount{
		Username:     "admin",
		Email:        "admin@gambit.com",
		Name:         "Administrator",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := admins.Create(ctx, pool, admin); err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	if err := admins.SetRoles(ctx, pool, admin.ID, []int64{superAdmin.ID}); err != nil {
		return fmt.Errorf("seed: assign role: %w", err)
	}

	logger.Info("seeded default admin account", "username", admin.Username)
	return nil
}

func ensureRole(ctx context.Context, pool *pgxpool.Pool, roles repository.RoleRepository, role *domain.Role) (*domain.Role, error) {
	existing, err := roles.FindByName(ctx, pool, role.Name)
	if err != nil {
		return nil, fmt.Errorf("seed: find role %q: %w", role.Name, err)
	}
	if existing != nil {
		return existing, nil
	}
	if err := roles.Create(ctx, pool, role); err != nil {
		return nil, fmt.Errorf("seed: create role %q: %w", role.Name, err)
	}
	return role, nil
}
