package models

import (
	"time"
)

// DefaultJournalCategory is used when an entry is saved without a category.
const DefaultJournalCategory = "general"

// JournalEntry is a journal post. Only entries with IsPublic set appear in
// the public feed.
type JournalEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Category  string    `db:"category" json:"category"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PublicJournalEntry is a feed item: the entry plus author and like count.
type PublicJournalEntry struct {
	JournalEntry
	AuthorName string `db:"author_name" json:"author_name"`
	Likes      int64  `db:"likes" json:"likes"`
}

// JournalComment is a comment on a journal entry.
type JournalComment struct {
	ID         int64     `db:"id" json:"id"`
	JournalID  int64     `db:"journal_id" json:"journal_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	AuthorName string    `db:"author_name" json:"author_name"`
}
