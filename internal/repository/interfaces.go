package repository

import (
	"context"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AdminRepository provides access to admins and their role assignments.
type AdminRepository interface {
	// FindByID returns an admin with roles populated, or nil if not found.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.AdminAccount, error)

	// FindByLogin returns an admin matching the given username or email.
	FindByLogin(ctx context.Context, db DBTX, usernameOrEmail string) (*domain.AdminAccount, error)

	// List returns a page of admins ordered by name, plus the total count.
	List(ctx context.Context, db DBTX, page, perPage int) ([]domain.AdminAccount, int, error)

	// Create inserts a new admin and returns it with generated fields set.
	Create(ctx context.Context, db DBTX, admin *domain.AdminAccount) error

	// Update persists mutable admin fields.
	Update(ctx context.Context, db DBTX, admin *domain.AdminAccount) error

	// Delete removes an admin; role assignments cascade.
	Delete(ctx context.Context, db DBTX, id int64) error

	// TouchLastLogin stamps last_login on successful authentication.
	TouchLastLogin(ctx context.Context, db DBTX, id int64) error

	// Standing reports whether the admin row exists and whether it is active,
	// without loading roles. Consulted on every authenticated request.
	Standing(ctx context.Context, db DBTX, id int64) (found bool, active bool, err error)

	// SetRoles replaces the admin's role assignments with the given role ids.
	SetRoles(ctx context.Context, db DBTX, adminID int64, roleIDs []int64) error

	// AssignRole adds a single role assignment.
	AssignRole(ctx context.Context, db DBTX, adminID, roleID int64) error

	// UnassignRole removes a single role assignment.
	UnassignRole(ctx context.Context, db DBTX, adminID, roleID int64) error

	// HasRole reports whether the assignment already exists.
	HasRole(ctx context.Context, db DBTX, adminID, roleID int64) (bool, error)
}

// RoleRepository provides access to roles. It is also the PermissionSource
// consulted by the auth middleware.
type RoleRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, db DBTX, name string) (*domain.Role, error)
	List(ctx context.Context, db DBTX, page, perPage int) ([]domain.Role, int, error)
	ListByAdmin(ctx context.Context, db DBTX, adminID int64) ([]domain.Role, error)
	Create(ctx context.Context, db DBTX, role *domain.Role) error
	Update(ctx context.Context, db DBTX, role *domain.Role) error
	Delete(ctx context.Context, db DBTX, id int64) error

	// AssignedAdminCount returns how many admins currently hold the role.
	AssignedAdminCount(ctx context.Context, db DBTX, roleID int64) (int, error)
}

// UserRepository provides access to end-user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.User, error)
	FindByUUID(ctx context.Context, db DBTX, uuid string) (*domain.User, error)
	FindByLogin(ctx context.Context, db DBTX, usernameOrEmail string) (*domain.User, error)
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.User, error)
	List(ctx context.Context, db DBTX, status string) ([]domain.User, error)
	Create(ctx context.Context, db DBTX, user *domain.User) error
	Update(ctx context.Context, db DBTX, user *domain.User) error
	Delete(ctx context.Context, db DBTX, id int64) error
	TouchLastLogin(ctx context.Context, db DBTX, id int64) error

	// UpdateFavorites replaces the user's favorite sets wholesale.
	UpdateFavorites(ctx context.Context, db DBTX, id int64, fav domain.Favorites) error
}

// LeagueRepository provides access to leagues.
type LeagueRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.League, error)
	List(ctx context.Context, db DBTX, category string, enabledOnly bool) ([]domain.League, error)
	ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.League, error)
	Create(ctx context.Context, db DBTX, league *domain.League) error
	Update(ctx context.Context, db DBTX, league *domain.League) error
	SetEnabled(ctx context.Context, db DBTX, id int64, enabled bool) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// TeamRepository provides access to teams.
type TeamRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Team, error)
	List(ctx context.Context, db DBTX, leagueID int64) ([]domain.Team, error)
	ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Team, error)
	Create(ctx context.Context, db DBTX, team *domain.Team) error
	Update(ctx context.Context, db DBTX, team *domain.Team) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// PlayerRepository provides access to players.
type PlayerRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error)
	List(ctx context.Context, db DBTX, teamID, leagueID int64) ([]domain.Player, error)
	ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Player, error)
	Create(ctx context.Context, db DBTX, player *domain.Player) error
	Update(ctx context.Context, db DBTX, player *domain.Player) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// ReelRepository provides access to reels.
type ReelRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Reel, error)
	List(ctx context.Context, db DBTX, playerID int64) ([]domain.Reel, error)
	ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Reel, error)
	Create(ctx context.Context, db DBTX, reel *domain.Reel) error
	Update(ctx context.Context, db DBTX, reel *domain.Reel) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// SubscriberRepository provides access to subscribers.
type SubscriberRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Subscriber, error)
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Subscriber, error)
	List(ctx context.Context, db DBTX, status, subscriptionType string) ([]domain.Subscriber, error)
	Create(ctx context.Context, db DBTX, sub *domain.Subscriber) error
	Update(ctx context.Context, db DBTX, sub *domain.Subscriber) error
	Delete(ctx context.Context, db DBTX, id int64) error
}

// ContentRepository provides access to FAQs and content pages.
type ContentRepository interface {
	FindFAQ(ctx context.Context, db DBTX, id int64) (*domain.FAQ, error)
	ListFAQs(ctx context.Context, db DBTX, publishedOnly bool) ([]domain.FAQ, error)
	CreateFAQ(ctx context.Context, db DBTX, faq *domain.FAQ) error
	UpdateFAQ(ctx context.Context, db DBTX, faq *domain.FAQ) error
	DeleteFAQ(ctx context.Context, db DBTX, id int64) error

	FindPage(ctx context.Context, db DBTX, id int64) (*domain.ContentPage, error)
	FindPageByType(ctx context.Context, db DBTX, pageType string) (*domain.ContentPage, error)
	ListPages(ctx context.Context, db DBTX, publishedOnly bool) ([]domain.ContentPage, error)
	CreatePage(ctx context.Context, db DBTX, page *domain.ContentPage) error
	UpdatePage(ctx context.Context, db DBTX, page *domain.ContentPage) error
	DeletePage(ctx context.Context, db DBTX, id int64) error
}

// NotificationRepository provides access to notifications.
type NotificationRepository interface {
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.Notification, error)
	List(ctx context.Context, db DBTX, targetType string, sent *bool) ([]domain.Notification, error)
	Create(ctx context.Context, db DBTX, n *domain.Notification) error
	Update(ctx context.Context, db DBTX, n *domain.Notification) error
	Delete(ctx context.Context, db DBTX, id int64) error

	// MarkSent flips the sent flag.
	MarkSent(ctx context.Context, db DBTX, id int64) error
}

// OutboxRepository provides access to the notification_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (same transaction as MarkSent).
	Insert(ctx context.Context, db DBTX, event *domain.OutboxEvent) error

	// FetchUnpublished returns unpublished events oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxEvent, error)

	// MarkPublished stamps published_at on the given events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// Compile-time checks that the access resolver satisfies both middleware
// source interfaces.
var (
	_ auth.PermissionSource = (*AccessResolver)(nil)
	_ auth.AdminSource      = (*AccessResolver)(nil)
)
