package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type subscriberRepo struct{}

// NewSubscriberRepository returns a pgx-backed SubscriberRepository.
func NewSubscriberRepository() SubscriberRepository {
	return &subscriberRepo{}
}

const subscriberColumns = `id, email, name, subscription_type, start_date, end_date, status, created_at, updated_at`

func scanSubscriber(row pgx.Row) (*domain.Subscriber, error) {
	s := &domain.Subscriber{}
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.SubscriptionType, &s.StartDate,
		&s.EndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func collectSubscribers(rows pgx.Rows) ([]domain.Subscriber, error) {
	defer rows.Close()
	var subs []domain.Subscriber
	for rows.Next() {
		s := domain.Subscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.SubscriptionType, &s.StartDate,
			&s.EndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *subscriberRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Subscriber, error) {
	return scanSubscriber(db.QueryRow(ctx, `SELECT `+subscriberColumns+` FROM subscribers WHERE id = $1`, id))
}

func (r *subscriberRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Subscriber, error) {
	return scanSubscriber(db.QueryRow(ctx, `SELECT `+subscriberColumns+` FROM subscribers WHERE email = $1`, email))
}

func (r *subscriberRepo) List(ctx context.Context, db DBTX, status, subscriptionType string) ([]domain.Subscriber, error) {
	rows, err := db.Query(ctx, `
		SELECT `+subscriberColumns+` FROM subscribers
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR subscription_type = $2)
		ORDER BY start_date DESC`, status, subscriptionType)
	if err != nil {
		return nil, err
	}
	return collectSubscribers(rows)
}

func (r *subscriberRepo) Create(ctx context.Context, db DBTX, sub *domain.Subscriber) error {
	return db.QueryRow(ctx, `
		INSERT INTO subscribers (email, name, subscription_type, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		sub.Email, sub.Name, sub.SubscriptionType, sub.StartDate, sub.EndDate, sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriberRepo) Update(ctx context.Context, db DBTX, sub *domain.Subscriber) error {
	tag, err := db.Exec(ctx, `
		UPDATE subscribers
		SET email = $2, name = $3, subscription_type = $4, start_date = $5,
			end_date = $6, status = $7, updated_at = now()
		WHERE id = $1`,
		sub.ID, sub.Email, sub.Name, sub.SubscriptionType, sub.StartDate, sub.EndDate, sub.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Subscriber", sub.ID)
	}
	return nil
}

func (r *subscriberRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Subscriber", id)
	}
	return nil
}
