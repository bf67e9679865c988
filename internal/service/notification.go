package service

import (
	"context"
	"encoding/json"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationService handles notification dispatch through the outbox.
type NotificationService struct {
	pool          *pgxpool.Pool
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(pool *pgxpool.Pool, notifications repository.NotificationRepository, outbox repository.OutboxRepository) *NotificationService {
	return &NotificationService{pool: pool, notifications: notifications, outbox: outbox}
}

// Send marks a notification sent and enqueues it for delivery. The sent flag
// and the outbox row commit in one transaction.
func (s *NotificationService) Send(ctx context.Context, id int64) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find notification", err)
	}
	if n == nil {
		return nil, domain.ErrNotFound("Notification", id)
	}
	if n.Sent {
		return nil, domain.ErrValidation("Notification has already been sent")
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return nil, domain.ErrInternal("marshal notification", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.notifications.MarkSent(ctx, tx, id); err != nil {
		return nil, domain.ErrInternal("mark sent", err)
	}

	event := &domain.OutboxEvent{
		NotificationID: n.ID,
		TargetType:     n.TargetType,
		Payload:        payload,
	}
	if err := s.outbox.Insert(ctx, tx, event); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	n.Sent = true
	return n, nil
}
