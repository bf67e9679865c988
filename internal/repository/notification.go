package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type notificationRepo struct{}

// NewNotificationRepository returns a pgx-backed NotificationRepository.
func NewNotificationRepository() NotificationRepository {
	return &notificationRepo{}
}

const notificationColumns = `id, title, message, destination_url, image_url, icon_url,
	target_type, target_user_id, sent, created_at, updated_at`

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	n := &domain.Notification{}
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.DestinationURL, &n.ImageURL, &n.IconURL,
		&n.TargetType, &n.TargetUserID, &n.Sent, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Notification, error) {
	return scanNotification(db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
}

func (r *notificationRepo) List(ctx context.Context, db DBTX, targetType string, sent *bool) ([]domain.Notification, error) {
	rows, err := db.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE ($1 = '' OR target_type = $1) AND ($2::boolean IS NULL OR sent = $2)
		ORDER BY created_at DESC`, targetType, sent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Notification
	for rows.Next() {
		n := domain.Notification{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.DestinationURL, &n.ImageURL, &n.IconURL,
			&n.TargetType, &n.TargetUserID, &n.Sent, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *notificationRepo) Create(ctx context.Context, db DBTX, n *domain.Notification) error {
	return db.QueryRow(ctx, `
		INSERT INTO notifications (title, message, destination_url, image_url, icon_url, target_type, target_user_id, sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		n.Title, n.Message, n.DestinationURL, n.ImageURL, n.IconURL, n.TargetType, n.TargetUserID, n.Sent,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *notificationRepo) Update(ctx context.Context, db DBTX, n *domain.Notification) error {
	tag, err := db.Exec(ctx, `
		UPDATE notifications
		SET title = $2, message = $3, destination_url = $4, image_url = $5, icon_url = $6,
			target_type = $7, target_user_id = $8, updated_at = now()
		WHERE id = $1`,
		n.ID, n.Title, n.Message, n.DestinationURL, n.ImageURL, n.IconURL, n.TargetType, n.TargetUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Notification", n.ID)
	}
	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Notification", id)
	}
	return nil
}

func (r *notificationRepo) MarkSent(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `UPDATE notifications SET sent = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Notification", id)
	}
	return nil
}
