package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/testutil"
)

func TestExampleScenario(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")

	rec := srv.Do(t, "POST", "/api/signup", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret", "birthdate": "1990-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.Do(t, "POST", "/api/login", map[string]string{"email": "a@x.com", "password": "oops"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.Do(t, "POST", "/api/login", map[string]string{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	c := testutil.SessionCookie(rec)
	require.NotNil(t, c)

	rec = srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "happy", "emoji": "😊"}, c)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.Do(t, "GET", "/api/moods", nil, c)
	require.Equal(t, http.StatusOK, rec.Code)
	var moods []models.Mood
	testutil.DecodeJSON(t, rec, &moods)
	require.Len(t, moods, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), moods[0].Date)
	assert.Equal(t, "happy", moods[0].Mood)
}

func TestSaveMoodTwiceSameDayKeepsLatest(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	c, id := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")

	day := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	srv.Handler.SetClock(func() time.Time { return day })

	srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "happy", "emoji": "😊"}, c)
	srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "tired", "emoji": "😴"}, c)
	assert.Equal(t, 1, srv.Store.MoodCount(id))

	day = day.Add(2 * time.Hour)
	srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "calm", "emoji": "😌"}, c)

	rec := srv.Do(t, "GET", "/api/moods", nil, c)
	assert.JSONEq(t, `[
		{"date":"2024-03-02","mood":"calm","emoji":"😌"},
		{"date":"2024-03-01","mood":"tired","emoji":"😴"}
	]`, rec.Body.String())
}

func TestSaveMoodRequiresMood(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	c, _ := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")

	rec := srv.Do(t, "POST", "/api/mood", map[string]string{"emoji": "😊"}, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Mood is required"}`, rec.Body.String())
}

func TestSaveMoodLengthLimits(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	c, id := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")

	rec := srv.Do(t, "POST", "/api/mood", map[string]string{"mood": strings.Repeat("x", 51)}, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Mood must be at most 50 characters"}`, rec.Body.String())

	rec = srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "calm", "emoji": strings.Repeat("😊", 17)}, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, srv.Store.MoodCount(id))

	// limits count characters, not bytes
	rec = srv.Do(t, "POST", "/api/mood", map[string]string{"mood": "calm", "emoji": strings.Repeat("😊", 16)}, c)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGratitudeReturnsTenMostRecent(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	c, _ := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")

	rec := srv.Do(t, "POST", "/api/gratitude", map[string]string{"text": ""}, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 12; i++ {
		rec := srv.Do(t, "POST", "/api/gratitude", map[string]string{"text": string(rune('a' + i))}, c)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = srv.Do(t, "GET", "/api/gratitude", nil, c)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	testutil.DecodeJSON(t, rec, &items)
	require.Len(t, items, 10)
	assert.Equal(t, "l", items[0]["text"])
	assert.Equal(t, "c", items[9]["text"])
	assert.Contains(t, items[0], "created_at")
}

func TestEmptyListsAreArrays(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	c, _ := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")

	for _, path := range []string{"/api/moods", "/api/gratitude", "/api/journal", "/api/public-journal",
		"/api/users", "/api/connection-requests", "/api/connections"} {
		rec := srv.Do(t, "GET", path, nil, c)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}
