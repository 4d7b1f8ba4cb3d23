// Package store holds the query contracts of the service. Every handler talks
// to a Store; PostgresStore is the production implementation and MemoryStore
// keeps the same invariants in process.
package store

import (
	"context"
	"errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
)

var (
	// ErrNotFound means the addressed row does not exist or is not visible to the caller.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict means a uniqueness rule would be violated.
	ErrConflict = errors.New("store: conflict")
	// ErrTooLong means a text value does not fit its column.
	ErrTooLong = errors.New("store: value too long")
)

// GratitudeListLimit is how many gratitude entries a listing returns.
const GratitudeListLimit = 10

type Store interface {
	Ping(ctx context.Context) error
	Close() error

	// Users
	CreateUser(ctx context.Context, name, email, passwordHash, birthdate string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UserStats(ctx context.Context, id int64) (*models.UserStats, error)

	// Moods and gratitude
	SaveMood(ctx context.Context, userID int64, date, mood, emoji string) error
	ListMoods(ctx context.Context, userID int64) ([]models.Mood, error)
	AddGratitude(ctx context.Context, userID int64, text string) (*models.Gratitude, error)
	ListGratitude(ctx context.Context, userID int64, limit int) ([]models.Gratitude, error)

	// Journal
	CreateJournalEntry(ctx context.Context, e *models.JournalEntry) error
	ListJournalEntries(ctx context.Context, userID int64, category string) ([]models.JournalEntry, error)
	GetJournalEntry(ctx context.Context, id int64) (*models.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id, userID int64) error
	ListPublicJournal(ctx context.Context, category string) ([]models.PublicJournalEntry, error)
	LikeJournalEntry(ctx context.Context, journalID, userID int64) error
	ListComments(ctx context.Context, journalID int64) ([]models.JournalComment, error)
	AddComment(ctx context.Context, journalID, userID int64, content string) (*models.JournalComment, error)

	// Social graph
	ListCandidates(ctx context.Context, userID int64) ([]models.Candidate, error)
	CreateConnectionRequest(ctx context.Context, senderID, receiverID int64) (*models.ConnectionRequest, error)
	ListIncomingRequests(ctx context.Context, receiverID int64) ([]models.ConnectionRequest, error)
	AcceptConnectionRequest(ctx context.Context, requestID, receiverID int64) (*models.Connection, error)
	RejectConnectionRequest(ctx context.Context, requestID, receiverID int64) error
	AreConnected(ctx context.Context, a, b int64) (bool, error)
	ListConnections(ctx context.Context, userID int64) ([]models.ConnectedUser, error)
	RemoveConnection(ctx context.Context, userID, otherID int64) error
}
