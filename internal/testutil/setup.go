package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/config"
	"github.com/AnshRaj112/mindfulspace-backend/internal/handlers"
	"github.com/AnshRaj112/mindfulspace-backend/internal/metrics"
	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/routes"
	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

// SetupTestDB returns a sqlx handle backed by sqlmock.
func SetupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "SetupTestDB: sqlmock")
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

// SetupTestCache creates a LocalCache (no Redis required).
func SetupTestCache(t *testing.T) *services.LocalCache {
	t.Helper()
	c := services.NewLocalCache(0)
	t.Cleanup(c.Close)
	return c
}

// TestConfig is a development config pointing at dir for static files.
func TestConfig(staticDir string) *config.Config {
	return &config.Config{
		Environment:    "development",
		Port:           "0",
		SessionSecret:  "test-secret",
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		StaticDir:      staticDir,
		LogLevel:       "debug",
	}
}

// Server is the full router wired to in-memory collaborators.
type Server struct {
	Config   *config.Config
	Store    *store.MemoryStore
	Cache    *services.LocalCache
	Sessions *services.SessionManager
	Handler  *handlers.Handler
	Metrics  *metrics.Metrics
	Router   http.Handler
}

// SetupTestServer builds a Server. staticDir may be empty when no page is
// requested.
func SetupTestServer(t *testing.T, staticDir string) *Server {
	t.Helper()
	cfg := TestConfig(staticDir)
	st := store.NewMemoryStore()
	cache := SetupTestCache(t)
	sessions := services.NewSessionManager(cache, cfg.SessionSecret, cfg.SessionTTL)
	log := zap.NewNop()
	m := metrics.New()

	deps := routes.Deps{Config: cfg, Store: st, Sessions: sessions, Logger: log, Metrics: m}
	h := handlers.New(st, sessions, log, cfg)
	return &Server{
		Config:   cfg,
		Store:    st,
		Cache:    cache,
		Sessions: sessions,
		Handler:  h,
		Metrics:  m,
		Router:   routes.SetupRoutes(h, deps),
	}
}

// Do sends a request through the router. body is JSON encoded unless it is
// already a string.
func (s *Server) Do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

// SessionCookie returns the session cookie set on rec, or nil.
func SessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			return c
		}
	}
	return nil
}

// SignupAndLogin registers a user and returns its session cookie and id.
func (s *Server) SignupAndLogin(t *testing.T, name, email, password string) (*http.Cookie, int64) {
	t.Helper()
	rec := s.Do(t, "POST", "/api/signup", map[string]string{
		"name": name, "email": email, "password": password, "birthdate": "1990-05-17",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.Do(t, "POST", "/api/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		User models.PublicUser `json:"user"`
	}
	DecodeJSON(t, rec, &resp)
	c := SessionCookie(rec)
	require.NotNil(t, c, "login did not set a session cookie")
	return c, resp.User.ID
}

// DecodeJSON unmarshals the recorder body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
