package domain

import "time"

// End-user account statuses.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User represents a users row (an end user of the platform, not an admin).
type User struct {
	ID               int64     `json:"id"`
	UUID             string    `json:"uuid"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	ProfileImage     string    `json:"profile_image"`
	Bio              string    `json:"bio"`
	PasswordHash     string    `json:"-"`
	RegistrationDate time.Time `json:"registration_date"`
	LastLogin        time.Time `json:"last_login"`
	Status           string    `json:"status"`
	FavoriteSports   []string  `json:"favorite_sports"`
	FavoriteTeams    []int64   `json:"favorite_teams"`
	FavoritePlayers  []int64   `json:"favorite_players"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Favorites is the replace-wholesale payload for a user's favorite sets.
// Applying the same Favorites twice yields the same stored state.
type Favorites struct {
	Sports  []string `json:"favorite_sports"`
	Teams   []int64  `json:"favorite_teams"`
	Players []int64  `json:"favorite_players"`
}

// UserActivity is a daily active/new user count row.
type UserActivity struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	ActiveUsers int       `json:"active_users"`
	NewUsers    int       `json:"new_users"`
}
