package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqStringTooLong       = "22001"
)

const userColumns = `id, name, email, password,
	COALESCE(to_char(birthdate, 'YYYY-MM-DD'), '') AS birthdate,
	COALESCE(bio, '') AS bio, created_at`

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// translate maps driver errors onto the store sentinels and attaches op.
func translate(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return errors.Wrap(ErrConflict, op)
		case pqForeignKeyViolation:
			return errors.Wrap(ErrNotFound, op)
		case pqStringTooLong:
			return errors.Wrap(ErrTooLong, op)
		}
	}
	return errors.Wrap(err, op)
}

// mustAffect turns "zero rows touched" into ErrNotFound.
func mustAffect(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, op)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ---- users ----

func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash, birthdate string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		INSERT INTO users (name, email, password, birthdate)
		VALUES ($1, $2, $3, NULLIF($4, '')::date)
		RETURNING `+userColumns,
		name, email, passwordHash, birthdate)
	if err != nil {
		return nil, translate(err, "create user")
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, translate(err, "get user by email")
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, translate(err, "get user by id")
	}
	return &u, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		UPDATE users
		SET name = $1, email = $2, birthdate = NULLIF($3, '')::date, bio = $4
		WHERE id = $5
		RETURNING `+userColumns,
		p.Name, p.Email, p.Birthdate, p.Bio, id)
	if err != nil {
		return nil, translate(err, "update profile")
	}
	return &u, nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return translate(err, "update password")
	}
	return mustAffect(res, "update password")
}

// UserStats counts each figure in its own sub-query so that joining entries
// against connections cannot multiply the totals.
func (s *PostgresStore) UserStats(ctx context.Context, id int64) (*models.UserStats, error) {
	var st models.UserStats
	err := s.db.GetContext(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM journal_entries WHERE user_id = $1) AS total_entries,
			(SELECT COUNT(*) FROM journal_entries WHERE user_id = $1 AND is_public = TRUE) AS public_entries,
			(SELECT COUNT(*) FROM connections
				WHERE (user1_id = $1 OR user2_id = $1) AND status = 'accepted') AS total_connections,
			(SELECT COUNT(DISTINCT DATE(created_at)) FROM journal_entries WHERE user_id = $1) AS days_active
	`, id)
	if err != nil {
		return nil, translate(err, "user stats")
	}
	return &st, nil
}

// ---- moods & gratitude ----

func (s *PostgresStore) SaveMood(ctx context.Context, userID int64, date, mood, emoji string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO moods (user_id, date, mood, emoji)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE SET mood = EXCLUDED.mood, emoji = EXCLUDED.emoji
	`, userID, date, mood, emoji)
	if err != nil {
		return translate(err, "save mood")
	}
	return nil
}

func (s *PostgresStore) ListMoods(ctx context.Context, userID int64) ([]models.Mood, error) {
	moods := []models.Mood{}
	err := s.db.SelectContext(ctx, &moods, `
		SELECT to_char(date, 'YYYY-MM-DD') AS date, mood, COALESCE(emoji, '') AS emoji
		FROM moods WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, translate(err, "list moods")
	}
	return moods, nil
}

func (s *PostgresStore) AddGratitude(ctx context.Context, userID int64, text string) (*models.Gratitude, error) {
	var g models.Gratitude
	err := s.db.GetContext(ctx, &g, `
		INSERT INTO gratitude (user_id, text) VALUES ($1, $2)
		RETURNING id, text, created_at
	`, userID, text)
	if err != nil {
		return nil, translate(err, "add gratitude")
	}
	return &g, nil
}

func (s *PostgresStore) ListGratitude(ctx context.Context, userID int64, limit int) ([]models.Gratitude, error) {
	items := []models.Gratitude{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, text, created_at FROM gratitude
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, translate(err, "list gratitude")
	}
	return items, nil
}

// ---- journal ----

const journalColumns = `id, user_id, title, content, category, is_public, created_at`

func (s *PostgresStore) CreateJournalEntry(ctx context.Context, e *models.JournalEntry) error {
	row := s.db.QueryRowxContext(ctx, `
		INSERT INTO journal_entries (user_id, title, content, category, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, e.UserID, e.Title, e.Content, e.Category, e.IsPublic)
	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		return translate(err, "create journal entry")
	}
	return nil
}

func (s *PostgresStore) ListJournalEntries(ctx context.Context, userID int64, category string) ([]models.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id = $1`
	args := []interface{}{userID}
	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	entries := []models.JournalEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, translate(err, "list journal entries")
	}
	return entries, nil
}

func (s *PostgresStore) GetJournalEntry(ctx context.Context, id int64) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := s.db.GetContext(ctx, &e, `SELECT `+journalColumns+` FROM journal_entries WHERE id = $1`, id); err != nil {
		return nil, translate(err, "get journal entry")
	}
	return &e, nil
}

func (s *PostgresStore) DeleteJournalEntry(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translate(err, "delete journal entry")
	}
	return mustAffect(res, "delete journal entry")
}

func (s *PostgresStore) ListPublicJournal(ctx context.Context, category string) ([]models.PublicJournalEntry, error) {
	query := `
		SELECT j.id, j.user_id, j.title, j.content, j.category, j.is_public, j.created_at,
			u.name AS author_name, COUNT(l.id) AS likes
		FROM journal_entries j
		JOIN users u ON j.user_id = u.id
		LEFT JOIN journal_likes l ON j.id = l.journal_id
		WHERE j.is_public = TRUE`
	var args []interface{}
	if category != "" {
		query += ` AND j.category = $1`
		args = append(args, category)
	}
	query += ` GROUP BY j.id, u.name ORDER BY j.created_at DESC, j.id DESC`

	entries := []models.PublicJournalEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, translate(err, "list public journal")
	}
	return entries, nil
}

func (s *PostgresStore) LikeJournalEntry(ctx context.Context, journalID, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_likes (journal_id, user_id) VALUES ($1, $2)
		ON CONFLICT (journal_id, user_id) DO NOTHING
	`, journalID, userID)
	if err != nil {
		return translate(err, "like journal entry")
	}
	return nil
}

func (s *PostgresStore) ListComments(ctx context.Context, journalID int64) ([]models.JournalComment, error) {
	comments := []models.JournalComment{}
	err := s.db.SelectContext(ctx, &comments, `
		SELECT c.id, c.journal_id, c.user_id, c.content, c.created_at, u.name AS author_name
		FROM journal_comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.journal_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, journalID)
	if err != nil {
		return nil, translate(err, "list comments")
	}
	return comments, nil
}

func (s *PostgresStore) AddComment(ctx context.Context, journalID, userID int64, content string) (*models.JournalComment, error) {
	var c models.JournalComment
	err := s.db.GetContext(ctx, &c, `
		WITH inserted AS (
			INSERT INTO journal_comments (journal_id, user_id, content) VALUES ($1, $2, $3)
			RETURNING id, journal_id, user_id, content, created_at
		)
		SELECT i.id, i.journal_id, i.user_id, i.content, i.created_at, u.name AS author_name
		FROM inserted i JOIN users u ON u.id = i.user_id
	`, journalID, userID, content)
	if err != nil {
		return nil, translate(err, "add comment")
	}
	return &c, nil
}

// ---- social graph ----

func (s *PostgresStore) ListCandidates(ctx context.Context, userID int64) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	err := s.db.SelectContext(ctx, &candidates, `
		SELECT u.id, u.name, u.created_at, COUNT(j.id) AS public_entries_count
		FROM users u
		LEFT JOIN journal_entries j ON u.id = j.user_id AND j.is_public = TRUE
		WHERE u.id != $1
		AND u.id NOT IN (
			SELECT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
			FROM connections
			WHERE (user1_id = $1 OR user2_id = $1) AND status = 'accepted'
		)
		AND u.id NOT IN (
			SELECT receiver_id FROM connection_requests WHERE sender_id = $1
		)
		GROUP BY u.id, u.name, u.created_at
		ORDER BY u.name, u.id
	`, userID)
	if err != nil {
		return nil, translate(err, "list candidates")
	}
	return candidates, nil
}

func (s *PostgresStore) CreateConnectionRequest(ctx context.Context, senderID, receiverID int64) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := s.db.GetContext(ctx, &req, `
		INSERT INTO connection_requests (sender_id, receiver_id) VALUES ($1, $2)
		RETURNING id, sender_id, receiver_id, status, created_at
	`, senderID, receiverID)
	if err != nil {
		return nil, translate(err, "create connection request")
	}
	return &req, nil
}

func (s *PostgresStore) ListIncomingRequests(ctx context.Context, receiverID int64) ([]models.ConnectionRequest, error) {
	reqs := []models.ConnectionRequest{}
	err := s.db.SelectContext(ctx, &reqs, `
		SELECT cr.id, cr.sender_id, cr.receiver_id, cr.status, cr.created_at, u.name AS sender_name
		FROM connection_requests cr
		JOIN users u ON cr.sender_id = u.id
		WHERE cr.receiver_id = $1 AND cr.status = 'pending'
		ORDER BY cr.created_at DESC, cr.id DESC
	`, receiverID)
	if err != nil {
		return nil, translate(err, "list connection requests")
	}
	return reqs, nil
}

// AcceptConnectionRequest locks the pending request, records the connection
// and marks the request accepted in one transaction.
func (s *PostgresStore) AcceptConnectionRequest(ctx context.Context, requestID, receiverID int64) (*models.Connection, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, translate(err, "accept connection request")
	}
	defer tx.Rollback()

	var senderID int64
	err = tx.GetContext(ctx, &senderID, `
		SELECT sender_id FROM connection_requests
		WHERE id = $1 AND receiver_id = $2 AND status = 'pending'
		FOR UPDATE
	`, requestID, receiverID)
	if err != nil {
		return nil, translate(err, "accept connection request")
	}

	user1, user2 := models.OrderedPair(senderID, receiverID)
	var conn models.Connection
	err = tx.GetContext(ctx, &conn, `
		INSERT INTO connections (user1_id, user2_id, status) VALUES ($1, $2, 'accepted')
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, user1_id, user2_id, status, created_at
	`, user1, user2)
	if err != nil {
		return nil, translate(err, "accept connection request")
	}

	if _, err = tx.ExecContext(ctx, `UPDATE connection_requests SET status = 'accepted' WHERE id = $1`, requestID); err != nil {
		return nil, translate(err, "accept connection request")
	}

	if err = tx.Commit(); err != nil {
		return nil, translate(err, "accept connection request")
	}
	return &conn, nil
}

func (s *PostgresStore) RejectConnectionRequest(ctx context.Context, requestID, receiverID int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE connection_requests SET status = 'rejected'
		WHERE id = $1 AND receiver_id = $2 AND status = 'pending'
	`, requestID, receiverID)
	if err != nil {
		return translate(err, "reject connection request")
	}
	return mustAffect(res, "reject connection request")
}

func (s *PostgresStore) AreConnected(ctx context.Context, a, b int64) (bool, error) {
	user1, user2 := models.OrderedPair(a, b)
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM connections WHERE user1_id = $1 AND user2_id = $2 AND status = 'accepted')
	`, user1, user2)
	if err != nil {
		return false, translate(err, "check connection")
	}
	return exists, nil
}

func (s *PostgresStore) ListConnections(ctx context.Context, userID int64) ([]models.ConnectedUser, error) {
	conns := []models.ConnectedUser{}
	err := s.db.SelectContext(ctx, &conns, `
		SELECT
			CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END AS id,
			CASE WHEN c.user1_id = $1 THEN u2.name ELSE u1.name END AS name,
			c.created_at AS connected_at
		FROM connections c
		JOIN users u1 ON c.user1_id = u1.id
		JOIN users u2 ON c.user2_id = u2.id
		WHERE (c.user1_id = $1 OR c.user2_id = $1) AND c.status = 'accepted'
		ORDER BY c.created_at DESC, c.id DESC
	`, userID)
	if err != nil {
		return nil, translate(err, "list connections")
	}
	return conns, nil
}

// RemoveConnection deletes the pair and the requests between them, so either
// side may send a new request later.
func (s *PostgresStore) RemoveConnection(ctx context.Context, userID, otherID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return translate(err, "remove connection")
	}
	defer tx.Rollback()

	user1, user2 := models.OrderedPair(userID, otherID)
	res, err := tx.ExecContext(ctx, `DELETE FROM connections WHERE user1_id = $1 AND user2_id = $2`, user1, user2)
	if err != nil {
		return translate(err, "remove connection")
	}
	if err = mustAffect(res, "remove connection"); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM connection_requests
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
	`, userID, otherID); err != nil {
		return translate(err, "remove connection")
	}

	if err = tx.Commit(); err != nil {
		return translate(err, "remove connection")
	}
	return nil
}
