// Package handlers implements the HTTP endpoints. Every handler reads the
// caller from the request context, talks to the Store and writes JSON.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/config"
	"github.com/AnshRaj112/mindfulspace-backend/internal/middleware"
	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	store    store.Store
	sessions *services.SessionManager
	log      *zap.Logger
	cfg      *config.Config
	now      func() time.Time
}

func New(st store.Store, sessions *services.SessionManager, log *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		store:    st,
		sessions: sessions,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for mood dates.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// MessageResponse is the body of every write that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Message: msg})
}

// fail writes err as JSON. Internal errors are logged with op and only carry
// their cause in the body in development.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	apiErr := classify(err)
	resp := ErrorResponse{Message: apiErr.Message}
	if apiErr.Kind == KindInternal {
		h.log.Error(op,
			zap.Error(err),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		if h.cfg.IsDevelopment() && apiErr.Err != nil {
			resp.Error = apiErr.Err.Error()
		}
	}
	writeJSON(w, apiErr.Kind.Status(), resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validationError("Invalid request body")
	}
	return nil
}

// currentUser returns the id RequireSession put in the context.
func currentUser(r *http.Request) int64 {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validationError("Invalid id")
	}
	return id, nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// lengthError names the first field over its limit, or returns nil.
func lengthError(fields ...lengthCheck) *APIError {
	for _, f := range fields {
		if models.TooLong(f.value, f.max) {
			return validationError(fmt.Sprintf("%s must be at most %d characters", f.name, f.max))
		}
	}
	return nil
}

type lengthCheck struct {
	name  string
	value string
	max   int
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
