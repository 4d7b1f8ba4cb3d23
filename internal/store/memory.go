package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
)

type moodKey struct {
	userID int64
	date   string
}

type likeKey struct {
	journalID int64
	userID    int64
}

type pairKey struct {
	user1, user2 int64
}

// MemoryStore is an in-process Store. It enforces the same uniqueness and
// ownership rules as the PostgreSQL schema and is safe for concurrent use.
type MemoryStore struct {
	mu sync.Mutex

	nextID int64

	users       map[int64]*models.User
	moods       map[moodKey]*models.Mood
	gratitude   map[int64][]models.Gratitude
	journal     map[int64]*models.JournalEntry
	likes       map[likeKey]struct{}
	comments    []models.JournalComment
	requests    map[int64]*models.ConnectionRequest
	connections map[pairKey]*models.Connection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]*models.User),
		moods:       make(map[moodKey]*models.Mood),
		gratitude:   make(map[int64][]models.Gratitude),
		journal:     make(map[int64]*models.JournalEntry),
		likes:       make(map[likeKey]struct{}),
		requests:    make(map[int64]*models.ConnectionRequest),
		connections: make(map[pairKey]*models.Connection),
	}
}

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// ---- users ----

func (s *MemoryStore) emailTaken(email string, except int64) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateUser(_ context.Context, name, email, passwordHash, birthdate string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.TooLong(name, models.MaxNameLength) || models.TooLong(email, models.MaxEmailLength) {
		return nil, errors.Wrap(ErrTooLong, "create user")
	}
	if s.emailTaken(email, 0) {
		return nil, errors.Wrap(ErrConflict, "create user")
	}
	u := &models.User{
		ID:           s.id(),
		Name:         name,
		Email:        email,
		Birthdate:    birthdate,
		CreatedAt:    time.Now(),
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.Wrap(ErrNotFound, "get user by email")
}

func (s *MemoryStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "get user by id")
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "update profile")
	}
	if models.TooLong(p.Name, models.MaxNameLength) || models.TooLong(p.Email, models.MaxEmailLength) {
		return nil, errors.Wrap(ErrTooLong, "update profile")
	}
	if s.emailTaken(p.Email, id) {
		return nil, errors.Wrap(ErrConflict, "update profile")
	}
	u.Name, u.Email, u.Birthdate, u.Bio = p.Name, p.Email, p.Birthdate, p.Bio
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return errors.Wrap(ErrNotFound, "update password")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *MemoryStore) UserStats(_ context.Context, id int64) (*models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &models.UserStats{}
	days := make(map[string]struct{})
	for _, e := range s.journal {
		if e.UserID != id {
			continue
		}
		st.TotalEntries++
		if e.IsPublic {
			st.PublicEntries++
		}
		days[e.CreatedAt.Format("2006-01-02")] = struct{}{}
	}
	st.DaysActive = int64(len(days))
	for k, c := range s.connections {
		if (k.user1 == id || k.user2 == id) && c.Status == models.ConnectionStatusAccepted {
			st.TotalConnections++
		}
	}
	return st, nil
}

// ---- moods & gratitude ----

func (s *MemoryStore) SaveMood(_ context.Context, userID int64, date, mood, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return errors.Wrap(ErrNotFound, "save mood")
	}
	if models.TooLong(mood, models.MaxMoodLength) || models.TooLong(emoji, models.MaxEmojiLength) {
		return errors.Wrap(ErrTooLong, "save mood")
	}
	s.moods[moodKey{userID, date}] = &models.Mood{Date: date, Mood: mood, Emoji: emoji}
	return nil
}

func (s *MemoryStore) ListMoods(_ context.Context, userID int64) ([]models.Mood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moods := []models.Mood{}
	for k, m := range s.moods {
		if k.userID == userID {
			moods = append(moods, *m)
		}
	}
	// YYYY-MM-DD sorts lexically in date order
	sort.Slice(moods, func(i, j int) bool { return moods[i].Date > moods[j].Date })
	return moods, nil
}

func (s *MemoryStore) AddGratitude(_ context.Context, userID int64, text string) (*models.Gratitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, errors.Wrap(ErrNotFound, "add gratitude")
	}
	g := models.Gratitude{ID: s.id(), Text: text, CreatedAt: time.Now()}
	s.gratitude[userID] = append(s.gratitude[userID], g)
	return &g, nil
}

func (s *MemoryStore) ListGratitude(_ context.Context, userID int64, limit int) ([]models.Gratitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.gratitude[userID]
	items := []models.Gratitude{}
	for i := len(all) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, all[i])
	}
	return items, nil
}

// ---- journal ----

func newestFirst(a, b *models.JournalEntry) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *MemoryStore) CreateJournalEntry(_ context.Context, e *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[e.UserID]; !ok {
		return errors.Wrap(ErrNotFound, "create journal entry")
	}
	if models.TooLong(e.Title, models.MaxTitleLength) || models.TooLong(e.Category, models.MaxCategoryLength) {
		return errors.Wrap(ErrTooLong, "create journal entry")
	}
	e.ID = s.id()
	e.CreatedAt = time.Now()
	cp := *e
	s.journal[e.ID] = &cp
	return nil
}

func (s *MemoryStore) ListJournalEntries(_ context.Context, userID int64, category string) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []models.JournalEntry{}
	for _, e := range s.journal {
		if e.UserID == userID && (category == "" || e.Category == category) {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return newestFirst(&entries[i], &entries[j]) })
	return entries, nil
}

func (s *MemoryStore) GetJournalEntry(_ context.Context, id int64) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.journal[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "get journal entry")
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) DeleteJournalEntry(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.journal[id]
	if !ok || e.UserID != userID {
		return errors.Wrap(ErrNotFound, "delete journal entry")
	}
	delete(s.journal, id)
	for k := range s.likes {
		if k.journalID == id {
			delete(s.likes, k)
		}
	}
	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.JournalID != id {
			kept = append(kept, c)
		}
	}
	s.comments = kept
	return nil
}

func (s *MemoryStore) ListPublicJournal(_ context.Context, category string) ([]models.PublicJournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []models.PublicJournalEntry{}
	for _, e := range s.journal {
		if !e.IsPublic || (category != "" && e.Category != category) {
			continue
		}
		item := models.PublicJournalEntry{JournalEntry: *e}
		if u, ok := s.users[e.UserID]; ok {
			item.AuthorName = u.Name
		}
		for k := range s.likes {
			if k.journalID == e.ID {
				item.Likes++
			}
		}
		entries = append(entries, item)
	}
	sort.Slice(entries, func(i, j int) bool {
		return newestFirst(&entries[i].JournalEntry, &entries[j].JournalEntry)
	})
	return entries, nil
}

func (s *MemoryStore) LikeJournalEntry(_ context.Context, journalID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.journal[journalID]; !ok {
		return errors.Wrap(ErrNotFound, "like journal entry")
	}
	s.likes[likeKey{journalID, userID}] = struct{}{}
	return nil
}

func (s *MemoryStore) ListComments(_ context.Context, journalID int64) ([]models.JournalComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// comments are appended in creation order
	comments := []models.JournalComment{}
	for _, c := range s.comments {
		if c.JournalID == journalID {
			if u, ok := s.users[c.UserID]; ok {
				c.AuthorName = u.Name
			}
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (s *MemoryStore) AddComment(_ context.Context, journalID, userID int64, content string) (*models.JournalComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.journal[journalID]; !ok {
		return nil, errors.Wrap(ErrNotFound, "add comment")
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "add comment")
	}
	c := models.JournalComment{
		ID:        s.id(),
		JournalID: journalID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.comments = append(s.comments, c)
	c.AuthorName = u.Name
	return &c, nil
}

// ---- social graph ----

func (s *MemoryStore) connected(a, b int64) bool {
	user1, user2 := models.OrderedPair(a, b)
	c, ok := s.connections[pairKey{user1, user2}]
	return ok && c.Status == models.ConnectionStatusAccepted
}

func (s *MemoryStore) ListCandidates(_ context.Context, userID int64) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// an existing row of any status blocks a new request to that receiver
	requested := make(map[int64]bool)
	for _, r := range s.requests {
		if r.SenderID == userID {
			requested[r.ReceiverID] = true
		}
	}

	candidates := []models.Candidate{}
	for _, u := range s.users {
		if u.ID == userID || requested[u.ID] || s.connected(userID, u.ID) {
			continue
		}
		c := models.Candidate{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
		for _, e := range s.journal {
			if e.UserID == u.ID && e.IsPublic {
				c.PublicEntriesCount++
			}
		}
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Name == candidates[j].Name {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates, nil
}

func (s *MemoryStore) CreateConnectionRequest(_ context.Context, senderID, receiverID int64) (*models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[senderID]; !ok {
		return nil, errors.Wrap(ErrNotFound, "create connection request")
	}
	if _, ok := s.users[receiverID]; !ok {
		return nil, errors.Wrap(ErrNotFound, "create connection request")
	}
	for _, r := range s.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID {
			return nil, errors.Wrap(ErrConflict, "create connection request")
		}
	}
	r := &models.ConnectionRequest{
		ID:         s.id(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.RequestStatusPending,
		CreatedAt:  time.Now(),
	}
	s.requests[r.ID] = r
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) ListIncomingRequests(_ context.Context, receiverID int64) ([]models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := []models.ConnectionRequest{}
	for _, r := range s.requests {
		if r.ReceiverID != receiverID || r.Status != models.RequestStatusPending {
			continue
		}
		cp := *r
		if u, ok := s.users[r.SenderID]; ok {
			cp.SenderName = u.Name
		}
		reqs = append(reqs, cp)
	}
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID > reqs[j].ID
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	return reqs, nil
}

func (s *MemoryStore) AcceptConnectionRequest(_ context.Context, requestID, receiverID int64) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok || r.ReceiverID != receiverID || r.Status != models.RequestStatusPending {
		return nil, errors.Wrap(ErrNotFound, "accept connection request")
	}

	user1, user2 := models.OrderedPair(r.SenderID, r.ReceiverID)
	key := pairKey{user1, user2}
	conn, ok := s.connections[key]
	if !ok {
		conn = &models.Connection{
			ID:        s.id(),
			User1ID:   user1,
			User2ID:   user2,
			CreatedAt: time.Now(),
		}
		s.connections[key] = conn
	}
	conn.Status = models.ConnectionStatusAccepted
	r.Status = models.RequestStatusAccepted

	cp := *conn
	return &cp, nil
}

func (s *MemoryStore) RejectConnectionRequest(_ context.Context, requestID, receiverID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok || r.ReceiverID != receiverID || r.Status != models.RequestStatusPending {
		return errors.Wrap(ErrNotFound, "reject connection request")
	}
	r.Status = models.RequestStatusRejected
	return nil
}

func (s *MemoryStore) AreConnected(_ context.Context, a, b int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected(a, b), nil
}

func (s *MemoryStore) ListConnections(_ context.Context, userID int64) ([]models.ConnectedUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type ordered struct {
		user models.ConnectedUser
		id   int64
	}
	var found []ordered
	for k, c := range s.connections {
		if c.Status != models.ConnectionStatusAccepted || (k.user1 != userID && k.user2 != userID) {
			continue
		}
		other := k.user1
		if other == userID {
			other = k.user2
		}
		cu := models.ConnectedUser{ID: other, ConnectedAt: c.CreatedAt}
		if u, ok := s.users[other]; ok {
			cu.Name = u.Name
		}
		found = append(found, ordered{cu, c.ID})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].user.ConnectedAt.Equal(found[j].user.ConnectedAt) {
			return found[i].id > found[j].id
		}
		return found[i].user.ConnectedAt.After(found[j].user.ConnectedAt)
	})

	conns := make([]models.ConnectedUser, 0, len(found))
	for _, f := range found {
		conns = append(conns, f.user)
	}
	return conns, nil
}

func (s *MemoryStore) RemoveConnection(_ context.Context, userID, otherID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user1, user2 := models.OrderedPair(userID, otherID)
	key := pairKey{user1, user2}
	if _, ok := s.connections[key]; !ok {
		return errors.Wrap(ErrNotFound, "remove connection")
	}
	delete(s.connections, key)
	for id, r := range s.requests {
		if (r.SenderID == userID && r.ReceiverID == otherID) || (r.SenderID == otherID && r.ReceiverID == userID) {
			delete(s.requests, id)
		}
	}
	return nil
}

// ConnectionCount reports how many connection rows exist. Used by tests to
// check that pairs are stored once.
func (s *MemoryStore) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

// MoodCount reports how many mood rows a user has.
func (s *MemoryStore) MoodCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.moods {
		if k.userID == userID {
			n++
		}
	}
	return n
}

// LikeCount reports how many likes an entry has.
func (s *MemoryStore) LikeCount(journalID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.likes {
		if k.journalID == journalID {
			n++
		}
	}
	return n
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*PostgresStore)(nil)
