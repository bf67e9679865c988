package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type reelRepo struct{}

// NewReelRepository returns a pgx-backed ReelRepository.
func NewReelRepository() ReelRepository {
	return &reelRepo{}
}

const reelColumns = `id, player_id, title, thumbnail_url, video_url, duration, view_count, created_at, updated_at`

func scanReel(row pgx.Row) (*domain.Reel, error) {
	rl := &domain.Reel{}
	err := row.Scan(&rl.ID, &rl.PlayerID, &rl.Title, &rl.ThumbnailURL, &rl.VideoURL,
		&rl.Duration, &rl.ViewCount, &rl.CreatedAt, &rl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rl, nil
}

func collectReels(rows pgx.Rows) ([]domain.Reel, error) {
	defer rows.Close()
	var reels []domain.Reel
	for rows.Next() {
		rl := domain.Reel{}
		if err := rows.Scan(&rl.ID, &rl.PlayerID, &rl.Title, &rl.ThumbnailURL, &rl.VideoURL,
			&rl.Duration, &rl.ViewCount, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
			return nil, err
		}
		reels = append(reels, rl)
	}
	return reels, rows.Err()
}

func (r *reelRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Reel, error) {
	return scanReel(db.QueryRow(ctx, `SELECT `+reelColumns+` FROM reels WHERE id = $1`, id))
}

func (r *reelRepo) List(ctx context.Context, db DBTX, playerID int64) ([]domain.Reel, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reelColumns+` FROM reels
		WHERE ($1 = 0 OR player_id = $1)
		ORDER BY created_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	return collectReels(rows)
}

func (r *reelRepo) ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Reel, error) {
	rows, err := db.Query(ctx, `
		SELECT `+reelColumns+` FROM reels ORDER BY view_count DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectReels(rows)
}

func (r *reelRepo) Create(ctx context.Context, db DBTX, reel *domain.Reel) error {
	return db.QueryRow(ctx, `
		INSERT INTO reels (player_id, title, thumbnail_url, video_url, duration, view_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		reel.PlayerID, reel.Title, reel.ThumbnailURL, reel.VideoURL, reel.Duration, reel.ViewCount,
	).Scan(&reel.ID, &reel.CreatedAt, &reel.UpdatedAt)
}

func (r *reelRepo) Update(ctx context.Context, db DBTX, reel *domain.Reel) error {
	tag, err := db.Exec(ctx, `
		UPDATE reels
		SET player_id = $2, title = $3, thumbnail_url = $4, video_url = $5,
			duration = $6, view_count = $7, updated_at = now()
		WHERE id = $1`,
		reel.ID, reel.PlayerID, reel.Title, reel.ThumbnailURL, reel.VideoURL,
		reel.Duration, reel.ViewCount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Reel", reel.ID)
	}
	return nil
}

func (r *reelRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM reels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Reel", id)
	}
	return nil
}
