package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `id, name, team_id, league_id, position, jersey_number, profile_image,
	dob, college, height_weight, bat_throw, experience, birthplace, status, created_at, updated_at`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	p := &domain.Player{}
	err := row.Scan(&p.ID, &p.Name, &p.TeamID, &p.LeagueID, &p.Position, &p.JerseyNumber,
		&p.ProfileImage, &p.DOB, &p.College, &p.HeightWeight, &p.BatThrow, &p.Experience,
		&p.Birthplace, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectPlayers(rows pgx.Rows) ([]domain.Player, error) {
	defer rows.Close()
	var players []domain.Player
	for rows.Next() {
		p := domain.Player{}
		if err := rows.Scan(&p.ID, &p.Name, &p.TeamID, &p.LeagueID, &p.Position, &p.JerseyNumber,
			&p.ProfileImage, &p.DOB, &p.College, &p.HeightWeight, &p.BatThrow, &p.Experience,
			&p.Birthplace, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Player, error) {
	return scanPlayer(db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
}

func (r *playerRepo) List(ctx context.Context, db DBTX, teamID, leagueID int64) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE ($1 = 0 OR team_id = $1) AND ($2 = 0 OR league_id = $2)
		ORDER BY name`, teamID, leagueID)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

func (r *playerRepo) ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Player, error) {
	// Popularity proxied by reel views, matching the dashboard's notion.
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+` FROM players p
		ORDER BY (SELECT COALESCE(SUM(view_count), 0) FROM reels WHERE player_id = p.id) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	return db.QueryRow(ctx, `
		INSERT INTO players (name, team_id, league_id, position, jersey_number, profile_image,
			dob, college, height_weight, bat_throw, experience, birthplace, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		player.Name, player.TeamID, player.LeagueID, player.Position, player.JerseyNumber,
		player.ProfileImage, player.DOB, player.College, player.HeightWeight, player.BatThrow,
		player.Experience, player.Birthplace, player.Status,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)
}

func (r *playerRepo) Update(ctx context.Context, db DBTX, player *domain.Player) error {
	tag, err := db.Exec(ctx, `
		UPDATE players
		SET name = $2, team_id = $3, league_id = $4, position = $5, jersey_number = $6,
			profile_image = $7, dob = $8, college = $9, height_weight = $10, bat_throw = $11,
			experience = $12, birthplace = $13, status = $14, updated_at = now()
		WHERE id = $1`,
		player.ID, player.Name, player.TeamID, player.LeagueID, player.Position,
		player.JerseyNumber, player.ProfileImage, player.DOB, player.College,
		player.HeightWeight, player.BatThrow, player.Experience, player.Birthplace, player.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Player", player.ID)
	}
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Player", id)
	}
	return nil
}
