package repository

import (
	"context"

	"github.com/gambit/admin-api/internal/domain"
)

type outboxRepo struct{}

// NewOutboxRepository returns a pgx-backed OutboxRepository.
func NewOutboxRepository() OutboxRepository {
	return &outboxRepo{}
}

func (r *outboxRepo) Insert(ctx context.Context, db DBTX, event *domain.OutboxEvent) error {
	return db.QueryRow(ctx, `
		INSERT INTO notification_outbox (notification_id, target_type, payload)
		VALUES ($1, $2, $3)
		RETURNING id, occurred_at`,
		event.NotificationID, event.TargetType, event.Payload,
	).Scan(&event.ID, &event.OccurredAt)
}

func (r *outboxRepo) FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxEvent, error) {
	rows, err := db.Query(ctx, `
		SELECT id, notification_id, target_type, payload, occurred_at, published_at
		FROM notification_outbox
		WHERE published_at IS NULL
		ORDER BY occurred_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []domain.OutboxEvent
	for rows.Next() {
		e := domain.OutboxEvent{}
		if err := rows.Scan(&e.ID, &e.NotificationID, &e.TargetType, &e.Payload,
			&e.OccurredAt, &e.PublishedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepo) MarkPublished(ctx context.Context, db DBTX, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.Exec(ctx, `
		UPDATE notification_outbox SET published_at = now() WHERE id = ANY($1)`, ids)
	return err
}
