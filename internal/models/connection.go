package models

import (
	"time"
)

// ConnectionRequestStatus is the state of a connection request.
// A request starts pending and moves to accepted or rejected exactly once.
type ConnectionRequestStatus string

const (
	RequestStatusPending  ConnectionRequestStatus = "pending"
	RequestStatusAccepted ConnectionRequestStatus = "accepted"
	RequestStatusRejected ConnectionRequestStatus = "rejected"
)

// ConnectionStatusAccepted is the only status a stored connection carries.
const ConnectionStatusAccepted = "accepted"

type ConnectionRequest struct {
	ID         int64                   `db:"id" json:"id"`
	SenderID   int64                   `db:"sender_id" json:"sender_id"`
	ReceiverID int64                   `db:"receiver_id" json:"receiver_id"`
	Status     ConnectionRequestStatus `db:"status" json:"status"`
	CreatedAt  time.Time               `db:"created_at" json:"created_at"`
	SenderName string                  `db:"sender_name" json:"sender_name,omitempty"`
}

// Connection is an undirected edge between two users, stored with
// User1ID < User2ID.
type Connection struct {
	ID        int64     `db:"id" json:"id"`
	User1ID   int64     `db:"user1_id" json:"user1_id"`
	User2ID   int64     `db:"user2_id" json:"user2_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OrderedPair returns a and b in ascending order.
func OrderedPair(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// ConnectedUser is the other side of one of the caller's connections.
type ConnectedUser struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	ConnectedAt time.Time `db:"connected_at" json:"connected_at"`
}

// Candidate is a user the caller may send a connection request to.
type Candidate struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	PublicEntriesCount int64     `db:"public_entries_count" json:"public_entries_count"`
}
