package types

import "time"

// UserAuth represents the core user entity in the domain.
type UserAuth struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Hashed password (never exposed).
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileResponse is the body of GET /api/profile.
type ProfileResponse struct {
	User  ProfileUser  `json:"user"`
	Stats ProfileStats `json:"stats"`
}

type ProfileUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProfileStats struct {
	TripsCount int `json:"trips_count"`
}
