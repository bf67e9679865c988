package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type teamRepo struct{}

// NewTeamRepository returns a pgx-backed TeamRepository.
func NewTeamRepository() TeamRepository {
	return &teamRepo{}
}

const teamColumns = `id, name, league_id, logo_url, popularity, created_at, updated_at`

func scanTeam(row pgx.Row) (*domain.Team, error) {
	t := &domain.Team{}
	err := row.Scan(&t.ID, &t.Name, &t.LeagueID, &t.LogoURL, &t.Popularity, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func collectTeams(rows pgx.Rows) ([]domain.Team, error) {
	defer rows.Close()
	var teams []domain.Team
	for rows.Next() {
		t := domain.Team{}
		if err := rows.Scan(&t.ID, &t.Name, &t.LeagueID, &t.LogoURL, &t.Popularity,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.Team, error) {
	return scanTeam(db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
}

func (r *teamRepo) List(ctx context.Context, db DBTX, leagueID int64) ([]domain.Team, error) {
	rows, err := db.Query(ctx, `
		SELECT `+teamColumns+` FROM teams
		WHERE ($1 = 0 OR league_id = $1)
		ORDER BY popularity DESC`, leagueID)
	if err != nil {
		return nil, err
	}
	return collectTeams(rows)
}

func (r *teamRepo) ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.Team, error) {
	rows, err := db.Query(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY popularity DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectTeams(rows)
}

func (r *teamRepo) Create(ctx context.Context, db DBTX, team *domain.Team) error {
	return db.QueryRow(ctx, `
		INSERT INTO teams (name, league_id, logo_url, popularity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		team.Name, team.LeagueID, team.LogoURL, team.Popularity,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepo) Update(ctx context.Context, db DBTX, team *domain.Team) error {
	tag, err := db.Exec(ctx, `
		UPDATE teams SET name = $2, league_id = $3, logo_url = $4, popularity = $5, updated_at = now()
		WHERE id = $1`,
		team.ID, team.Name, team.LeagueID, team.LogoURL, team.Popularity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Team", team.ID)
	}
	return nil
}

func (r *teamRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Team", id)
	}
	return nil
}
