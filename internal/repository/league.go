package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type leagueRepo struct{}

// NewLeagueRepository returns a pgx-backed LeagueRepository.
func NewLeagueRepository() LeagueRepository {
	return &leagueRepo{}
}

const leagueColumns = `id, name, category, country, logo_url, popularity, founded_date,
	headquarters, commissioner, divisions, num_teams, enabled, created_at, updated_at`

func scanLeague(row pgx.Row) (*domain.League, error) {
	l := &domain.League{}
	err := row.Scan(&l.ID, &l.Name, &l.Category, &l.Country, &l.LogoURL, &l.Popularity,
		&l.FoundedDate, &l.Headquarters, &l.Commissioner, &l.Divisions, &l.NumTeams,
		&l.Enabled, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func collectLeagues(rows pgx.Rows) ([]domain.League, error) {
	defer rows.Close()
	var leagues []domain.League
	for rows.Next() {
		l := domain.League{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Category, &l.Country, &l.LogoURL, &l.Popularity,
			&l.FoundedDate, &l.Headquarters, &l.Commissioner, &l.Divisions, &l.NumTeams,
			&l.Enabled, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

func (r *leagueRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.League, error) {
	return scanLeague(db.QueryRow(ctx, `SELECT `+leagueColumns+` FROM leagues WHERE id = $1`, id))
}

func (r *leagueRepo) List(ctx context.Context, db DBTX, category string, enabledOnly bool) ([]domain.League, error) {
	rows, err := db.Query(ctx, `
		SELECT `+leagueColumns+` FROM leagues
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR enabled)
		ORDER BY popularity DESC`, category, enabledOnly)
	if err != nil {
		return nil, err
	}
	return collectLeagues(rows)
}

func (r *leagueRepo) ListPopular(ctx context.Context, db DBTX, limit int) ([]domain.League, error) {
	rows, err := db.Query(ctx, `
		SELECT `+leagueColumns+` FROM leagues
		WHERE enabled ORDER BY popularity DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectLeagues(rows)
}

func (r *leagueRepo) Create(ctx context.Context, db DBTX, league *domain.League) error {
	return db.QueryRow(ctx, `
		INSERT INTO leagues (name, category, country, logo_url, popularity, founded_date,
			headquarters, commissioner, divisions, num_teams, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		league.Name, league.Category, league.Country, league.LogoURL, league.Popularity,
		league.FoundedDate, league.Headquarters, league.Commissioner, league.Divisions,
		league.NumTeams, league.Enabled,
	).Scan(&league.ID, &league.CreatedAt, &league.UpdatedAt)
}

func (r *leagueRepo) Update(ctx context.Context, db DBTX, league *domain.League) error {
	tag, err := db.Exec(ctx, `
		UPDATE leagues
		SET name = $2, category = $3, country = $4, logo_url = $5, popularity = $6,
			founded_date = $7, headquarters = $8, commissioner = $9, divisions = $10,
			num_teams = $11, enabled = $12, updated_at = now()
		WHERE id = $1`,
		league.ID, league.Name, league.Category, league.Country, league.LogoURL,
		league.Popularity, league.FoundedDate, league.Headquarters, league.Commissioner,
		league.Divisions, league.NumTeams, league.Enabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("League", league.ID)
	}
	return nil
}

func (r *leagueRepo) SetEnabled(ctx context.Context, db DBTX, id int64, enabled bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE leagues SET enabled = $2, updated_at = now() WHERE id = $1`, id, enabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("League", id)
	}
	return nil
}

func (r *leagueRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("League", id)
	}
	return nil
}
