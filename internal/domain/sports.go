package domain

import "time"

// League represents a leagues row.
type League struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Country      string     `json:"country"`
	LogoURL      string     `json:"logo_url"`
	Popularity   int        `json:"popularity"`
	FoundedDate  *time.Time `json:"founded_date"`
	Headquarters string     `json:"headquarters"`
	Commissioner string     `json:"commissioner"`
	Divisions    []string   `json:"divisions"`
	NumTeams     int        `json:"num_teams"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Team represents a teams row. LeagueID must reference an existing league.
type Team struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LeagueID   int64     `json:"league_id"`
	LogoURL    string    `json:"logo_url"`
	Popularity int       `json:"popularity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Player represents a players row.
type Player struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	TeamID       int64      `json:"team_id"`
	LeagueID     int64      `json:"league_id"`
	Position     string     `json:"position"`
	JerseyNumber string     `json:"jersey_number"`
	ProfileImage string     `json:"profile_image"`
	DOB          *time.Time `json:"dob"`
	College      string     `json:"college"`
	HeightWeight string     `json:"height_weight"`
	BatThrow     string     `json:"bat_throw"`
	Experience   string     `json:"experience"`
	Birthplace   string     `json:"birthplace"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Reel represents a reels row (a short highlight video tied to a player).
type Reel struct {
	ID           int64     `json:"id"`
	PlayerID     int64     `json:"player_id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	Duration     float64   `json:"duration"`
	ViewCount    int64     `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
