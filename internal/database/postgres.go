package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConnectPostgres opens the PostgreSQL pool, checks it and creates the schema.
func ConnectPostgres(ctx context.Context, postgresURI string, log *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", postgresURI)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	log.Info("connected to PostgreSQL")

	if err = InitPostgresTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("PostgreSQL tables initialized")

	return db, nil
}

// SchemaStatements creates every table and index, idempotently. Order
// matters: referenced tables come first.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		birthdate DATE,
		bio TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS moods (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		mood VARCHAR(50) NOT NULL,
		emoji VARCHAR(16),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(user_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS gratitude (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'general',
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS journal_likes (
		id SERIAL PRIMARY KEY,
		journal_id INTEGER NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(journal_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS journal_comments (
		id SERIAL PRIMARY KEY,
		journal_id INTEGER NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS connection_requests (
		id SERIAL PRIMARY KEY,
		sender_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'accepted', 'rejected')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(sender_id, receiver_id)
	)`,

	// user1_id < user2_id keeps one row per undirected pair
	`CREATE TABLE IF NOT EXISTS connections (
		id SERIAL PRIMARY KEY,
		user1_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		user2_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'accepted',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (user1_id < user2_id),
		UNIQUE(user1_id, user2_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_moods_user_date ON moods(user_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_gratitude_user_created_at ON gratitude(user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_id ON journal_entries(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_public ON journal_entries(is_public, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_likes_journal_id ON journal_likes(journal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_comments_journal_id ON journal_comments(journal_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_connection_requests_receiver ON connection_requests(receiver_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_connections_user2_id ON connections(user2_id)`,
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(ctx context.Context, db *sqlx.DB) error {
	for _, query := range SchemaStatements {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
