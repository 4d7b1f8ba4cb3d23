package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(ttl time.Duration) *SessionManager {
	return NewSessionManager(NewLocalCache(0), "test-secret", ttl)
}

func TestSessionCreateValidateDestroy(t *testing.T) {
	m := newTestSessions(time.Hour)
	ctx := context.Background()

	cookie, err := m.Create(ctx, 42)
	require.NoError(t, err)

	userID, err := m.Validate(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	require.NoError(t, m.Destroy(ctx, cookie))
	_, err = m.Validate(ctx, cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	cache := NewLocalCache(0)
	ours := NewSessionManager(cache, "ours", time.Hour)
	theirs := NewSessionManager(cache, "theirs", time.Hour)

	cookie, err := theirs.Create(ctx, 7)
	require.NoError(t, err)

	_, err = ours.Validate(ctx, cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsUnknownSessionID(t *testing.T) {
	m := newTestSessions(time.Hour)

	claims := &SessionClaims{
		SessionID: "never-stored",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	cookie, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(context.Background(), cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpires(t *testing.T) {
	m := newTestSessions(time.Second)
	ctx := context.Background()

	cookie, err := m.Create(ctx, 1)
	require.NoError(t, err)

	// jwt expiry has second granularity
	time.Sleep(2100 * time.Millisecond)
	_, err = m.Validate(ctx, cookie)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionValidateEmptyAndGarbage(t *testing.T) {
	m := newTestSessions(time.Hour)
	ctx := context.Background()

	_, err := m.Validate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = m.Validate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.NoError(t, m.Destroy(ctx, "not-a-jwt"))
}
