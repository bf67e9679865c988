package guard

import (
	"context"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// Login realms, so admin and app-user lockouts are tracked separately.
const (
	RealmAdmin = "admin"
	RealmUser  = "user"
)

// RecordAttempt inserts a login attempt row. Errors are swallowed; attempt
// bookkeeping must never fail a login.
func RecordAttempt(ctx context.Context, pool *pgxpool.Pool, identity, realm, ip string, success bool) {
	_, _ = pool.Exec(ctx, `
		INSERT INTO login_attempts (identity, realm, ip_address, success)
		VALUES ($1, $2, $3, $4)`,
		identity, realm, ip, success)
}

// CheckLocked returns ErrAccountLocked if the identity has >= MaxAttempts
// failed logins within the lockout window.
func CheckLocked(ctx context.Context, pool *pgxpool.Pool, identity, realm string) error {
	var count int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE identity = $1 AND realm = $2 AND success = false
		  AND created_at > $3`,
		identity, realm, time.Now().Add(-LockoutWindow)).Scan(&count)
	if err != nil {
		return nil // fail open on DB error — don't block login
	}
	if count >= MaxAttempts {
		return domain.ErrAccountLocked("too many failed login attempts, try again later")
	}
	return nil
}
