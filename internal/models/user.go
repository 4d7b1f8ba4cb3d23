package models

import (
	"time"
)

// User is an account holder. Birthdate is a calendar date (YYYY-MM-DD).
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Birthdate string    `db:"birthdate" json:"birthdate"`
	Bio       string    `db:"bio" json:"bio"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Internal only - never returned in JSON
	PasswordHash string `db:"password" json:"-"`
}

// PublicUser is the identity returned by signup and login.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips everything except id, name and email.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name      string
	Email     string
	Birthdate string
	Bio       string
}

// UserStats summarises a user's activity.
type UserStats struct {
	TotalEntries     int64 `db:"total_entries" json:"total_entries"`
	PublicEntries    int64 `db:"public_entries" json:"public_entries"`
	TotalConnections int64 `db:"total_connections" json:"total_connections"`
	DaysActive       int64 `db:"days_active" json:"days_active"`
}
