//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all tables in dependency-safe order.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"login_attempts",
		"notification_outbox",
		"notifications",
		"user_activity",
		"subscriber_stats",
		"subscribers",
		"content_pages",
		"faqs",
		"reels",
		"players",
		"teams",
		"leagues",
		"users",
		"admin_roles",
		"roles",
		"admins",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
