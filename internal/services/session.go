package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// SessionKeyPrefix is the cache key prefix for sessions
	SessionKeyPrefix = "session:"
	// SessionCookieName is the cookie the signed session token travels in
	SessionCookieName = "mindful_session"
)

// ErrInvalidSession covers a bad signature, an expired token and a session
// that no longer exists in the cache.
var ErrInvalidSession = errors.New("session: invalid or expired")

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionManager keeps session tokens in a Cache and hands out signed cookies
// that reference them.
type SessionManager struct {
	cache  Cache
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(cache Cache, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{cache: cache, secret: []byte(secret), ttl: ttl}
}

// TTL is how long a new session lives.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session for userID and returns the signed cookie value.
func (m *SessionManager) Create(ctx context.Context, userID int64) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", errors.Wrap(err, "generate session token")
	}
	sid := base64.RawURLEncoding.EncodeToString(tokenBytes)

	if err := m.cache.Set(ctx, SessionKeyPrefix+sid, strconv.FormatInt(userID, 10), m.ttl); err != nil {
		return "", errors.Wrap(err, "store session")
	}

	now := time.Now()
	claims := &SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session")
	}
	return signed, nil
}

func (m *SessionManager) parse(cookie string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(cookie, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Validate returns the user id the cookie's session belongs to.
func (m *SessionManager) Validate(ctx context.Context, cookie string) (int64, error) {
	if cookie == "" {
		return 0, ErrInvalidSession
	}
	claims, err := m.parse(cookie)
	if err != nil {
		return 0, err
	}

	val, err := m.cache.Get(ctx, SessionKeyPrefix+claims.SessionID)
	if errors.Is(err, ErrCacheMiss) {
		return 0, ErrInvalidSession
	}
	if err != nil {
		return 0, errors.Wrap(err, "load session")
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidSession
	}
	return userID, nil
}

// Destroy removes the session behind cookie. Unknown or malformed cookies are
// ignored.
func (m *SessionManager) Destroy(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	claims, err := m.parse(cookie)
	if err != nil {
		return nil
	}
	return m.cache.Del(ctx, SessionKeyPrefix+claims.SessionID)
}
