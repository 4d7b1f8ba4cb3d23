package models

import "time"

// Mood is the single mood record a user keeps per calendar day.
type Mood struct {
	Date  string `db:"date" json:"date"`
	Mood  string `db:"mood" json:"mood"`
	Emoji string `db:"emoji" json:"emoji"`
}

// Gratitude is one entry of a user's gratitude log.
type Gratitude struct {
	ID        int64     `db:"id" json:"-"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
