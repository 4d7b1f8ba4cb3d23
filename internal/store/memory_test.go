package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
)

func seedUsers(t *testing.T, s *MemoryStore, names ...string) []*models.User {
	t.Helper()
	users := make([]*models.User, 0, len(names))
	for _, n := range names {
		u, err := s.CreateUser(context.Background(), n, n+"@example.com", "hash", "")
		require.NoError(t, err)
		users = append(users, u)
	}
	return users
}

func TestMemoryCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "Ana", "ana@example.com", "hash", "1990-01-01")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "Other", "ana@example.com", "hash", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryUpdateProfileEmailConflict(t *testing.T) {
	s := NewMemoryStore()
	users := seedUsers(t, s, "ana", "ben")

	_, err := s.UpdateProfile(context.Background(), users[0].ID, models.ProfileUpdate{Name: "Ana", Email: "ben@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	u, err := s.UpdateProfile(context.Background(), users[0].ID, models.ProfileUpdate{Name: "Ana", Email: "ana@example.com", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", u.Bio)
}

func TestMemorySaveMoodKeepsOnePerDay(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := seedUsers(t, s, "ana")[0]

	require.NoError(t, s.SaveMood(ctx, u.ID, "2024-03-01", "happy", "😊"))
	require.NoError(t, s.SaveMood(ctx, u.ID, "2024-03-01", "sad", "😢"))
	require.NoError(t, s.SaveMood(ctx, u.ID, "2024-03-02", "calm", "😌"))

	assert.Equal(t, 2, s.MoodCount(u.ID))

	moods, err := s.ListMoods(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, moods, 2)
	assert.Equal(t, "2024-03-02", moods[0].Date)
	assert.Equal(t, "sad", moods[1].Mood)
}

func TestMemoryListGratitudeNewestFirstAndLimited(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := seedUsers(t, s, "ana")[0]

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.AddGratitude(ctx, u.ID, text)
		require.NoError(t, err)
	}

	items, err := s.ListGratitude(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Text)
	assert.Equal(t, "b", items[1].Text)
}

func TestMemoryLikeIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	users := seedUsers(t, s, "ana", "ben")

	e := &models.JournalEntry{UserID: users[0].ID, Content: "hello", Category: "general", IsPublic: true}
	require.NoError(t, s.CreateJournalEntry(ctx, e))

	require.NoError(t, s.LikeJournalEntry(ctx, e.ID, users[1].ID))
	require.NoError(t, s.LikeJournalEntry(ctx, e.ID, users[1].ID))
	assert.Equal(t, 1, s.LikeCount(e.ID))

	feed, err := s.ListPublicJournal(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].Likes)
	assert.Equal(t, "ana", feed[0].AuthorName)

	assert.ErrorIs(t, s.LikeJournalEntry(ctx, 999, users[1].ID), ErrNotFound)
}

func TestMemoryDeleteJournalEntryOwnerOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	users := seedUsers(t, s, "ana", "ben")

	e := &models.JournalEntry{UserID: users[0].ID, Content: "mine", Category: "general"}
	require.NoError(t, s.CreateJournalEntry(ctx, e))
	_, err := s.AddComment(ctx, e.ID, users[1].ID, "nice")
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteJournalEntry(ctx, e.ID, users[1].ID), ErrNotFound)
	require.NoError(t, s.DeleteJournalEntry(ctx, e.ID, users[0].ID))

	_, err = s.GetJournalEntry(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	comments, err := s.ListComments(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestMemoryListJournalEntriesFiltersCategory(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := seedUsers(t, s, "ana")[0]

	for _, cat := range []string{"general", "work", "general"} {
		require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: u.ID, Content: "x", Category: cat}))
	}

	all, err := s.ListJournalEntries(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID)

	work, err := s.ListJournalEntries(ctx, u.ID, "work")
	require.NoError(t, err)
	assert.Len(t, work, 1)
}

func TestMemoryConnectionWorkflow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	users := seedUsers(t, s, "ana", "ben")
	ana, ben := users[0], users[1]

	req, err := s.CreateConnectionRequest(ctx, ben.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)

	_, err = s.CreateConnectionRequest(ctx, ben.ID, ana.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// only the receiver can act on a request
	_, err = s.AcceptConnectionRequest(ctx, req.ID, ben.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	incoming, err := s.ListIncomingRequests(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "ben", incoming[0].SenderName)

	conn, err := s.AcceptConnectionRequest(ctx, req.ID, ana.ID)
	require.NoError(t, err)
	assert.Less(t, conn.User1ID, conn.User2ID)

	_, err = s.AcceptConnectionRequest(ctx, req.ID, ana.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.ConnectionCount())

	ok, err := s.AreConnected(ctx, ana.ID, ben.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, u := range users {
		conns, err := s.ListConnections(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, conns, 1)
		assert.NotEqual(t, u.ID, conns[0].ID)
	}

	stats, err := s.UserStats(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalConnections)

	require.NoError(t, s.RemoveConnection(ctx, ana.ID, ben.ID))
	assert.ErrorIs(t, s.RemoveConnection(ctx, ben.ID, ana.ID), ErrNotFound)

	// removal clears the old request so either side can ask again
	_, err = s.CreateConnectionRequest(ctx, ben.ID, ana.ID)
	require.NoError(t, err)
}

func TestMemoryRejectConnectionRequest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	users := seedUsers(t, s, "ana", "ben")

	req, err := s.CreateConnectionRequest(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)

	require.NoError(t, s.RejectConnectionRequest(ctx, req.ID, users[1].ID))
	assert.ErrorIs(t, s.RejectConnectionRequest(ctx, req.ID, users[1].ID), ErrNotFound)

	incoming, err := s.ListIncomingRequests(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
	assert.Equal(t, 0, s.ConnectionCount())

	candidates, err := s.ListCandidates(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	candidates, err = s.ListCandidates(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestMemoryListCandidatesExcludesSelfConnectedAndPending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	users := seedUsers(t, s, "ana", "ben", "cat", "dan")
	ana, ben, cat := users[0], users[1], users[2]

	req, err := s.CreateConnectionRequest(ctx, ana.ID, ben.ID)
	require.NoError(t, err)
	_, err = s.AcceptConnectionRequest(ctx, req.ID, ben.ID)
	require.NoError(t, err)
	_, err = s.CreateConnectionRequest(ctx, ana.ID, cat.ID)
	require.NoError(t, err)
	require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: users[3].ID, Content: "x", Category: "general", IsPublic: true}))

	candidates, err := s.ListCandidates(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "dan", candidates[0].Name)
	assert.Equal(t, int64(1), candidates[0].PublicEntriesCount)
}

func TestMemoryRejectsOverlongValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := seedUsers(t, s, "ana")[0]

	assert.ErrorIs(t, s.SaveMood(ctx, u.ID, "2024-03-01", strings.Repeat("x", models.MaxMoodLength+1), ""), ErrTooLong)
	assert.Equal(t, 0, s.MoodCount(u.ID))

	err := s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: u.ID, Content: "x", Category: strings.Repeat("c", models.MaxCategoryLength+1)})
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = s.CreateUser(ctx, strings.Repeat("n", models.MaxNameLength+1), "n@x.com", "hash", "1990-01-01")
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Name: "ana", Email: strings.Repeat("e", models.MaxEmailLength+1)})
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestMemoryUserStatsCountsEntries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := seedUsers(t, s, "ana")[0]

	require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: u.ID, Content: "a", Category: "general", IsPublic: true}))
	require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: u.ID, Content: "b", Category: "general"}))

	stats, err := s.UserStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEntries)
	assert.Equal(t, int64(1), stats.PublicEntries)
	assert.Equal(t, int64(1), stats.DaysActive)
	assert.Equal(t, int64(0), stats.TotalConnections)
}
