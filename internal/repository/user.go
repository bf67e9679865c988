package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type userRepo struct{}

// NewUserRepository returns a pgx-backed UserRepository.
func NewUserRepository() UserRepository {
	return &userRepo{}
}

const userColumns = `id, uuid, email, username, full_name, profile_image, bio, password_hash,
	registration_date, last_login, status, favorite_sports, favorite_teams, favorite_players,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.UUID, &u.Email, &u.Username, &u.FullName, &u.ProfileImage,
		&u.Bio, &u.PasswordHash, &u.RegistrationDate, &u.LastLogin, &u.Status,
		&u.FavoriteSports, &u.FavoriteTeams, &u.FavoritePlayers, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) FindByID(ctx context.Context, db DBTX, id int64) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) FindByUUID(ctx context.Context, db DBTX, uuid string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE uuid = $1`, uuid))
}

func (r *userRepo) FindByLogin(ctx context.Context, db DBTX, usernameOrEmail string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, usernameOrEmail))
}

func (r *userRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepo) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *userRepo) List(ctx context.Context, db DBTX, status string) ([]domain.User, error) {
	rows, err := db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR status = $1)
		ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u := domain.User{}
		if err := rows.Scan(&u.ID, &u.UUID, &u.Email, &u.Username, &u.FullName, &u.ProfileImage,
			&u.Bio, &u.PasswordHash, &u.RegistrationDate, &u.LastLogin, &u.Status,
			&u.FavoriteSports, &u.FavoriteTeams, &u.FavoritePlayers, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) Create(ctx context.Context, db DBTX, user *domain.User) error {
	return db.QueryRow(ctx, `
		INSERT INTO users (uuid, email, username, full_name, profile_image, bio, password_hash,
			registration_date, last_login, status, favorite_sports, favorite_teams, favorite_players)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		user.UUID, user.Email, user.Username, user.FullName, user.ProfileImage, user.Bio,
		user.PasswordHash, user.RegistrationDate, user.LastLogin, user.Status,
		user.FavoriteSports, user.FavoriteTeams, user.FavoritePlayers,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepo) Update(ctx context.Context, db DBTX, user *domain.User) error {
	tag, err := db.Exec(ctx, `
		UPDATE users
		SET email = $2, username = $3, full_name = $4, profile_image = $5, bio = $6,
			password_hash = $7, status = $8, updated_at = now()
		WHERE id = $1`,
		user.ID, user.Email, user.Username, user.FullName, user.ProfileImage, user.Bio,
		user.PasswordHash, user.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("User", user.ID)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("User", id)
	}
	return nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	return err
}

func (r *userRepo) UpdateFavorites(ctx context.Context, db DBTX, id int64, fav domain.Favorites) error {
	tag, err := db.Exec(ctx, `
		UPDATE users
		SET favorite_sports = $2, favorite_teams = $3, favorite_players = $4, updated_at = now()
		WHERE id = $1`,
		id, fav.Sports, fav.Teams, fav.Players)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("User", id)
	}
	return nil
}
