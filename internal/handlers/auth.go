package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
	"github.com/AnshRaj112/mindfulspace-backend/pkg/utils"
)

type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

// Signup handles user registration
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "signup", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Birthdate = strings.TrimSpace(req.Birthdate)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Birthdate == "" {
		h.fail(w, r, "signup", validationError("All fields are required"))
		return
	}
	if !validDate(req.Birthdate) {
		h.fail(w, r, "signup", validationError("Birthdate must be YYYY-MM-DD"))
		return
	}
	if e := lengthError(
		lengthCheck{"Name", req.Name, models.MaxNameLength},
		lengthCheck{"Email", req.Email, models.MaxEmailLength},
	); e != nil {
		h.fail(w, r, "signup", e)
		return
	}

	_, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err == nil {
		h.fail(w, r, "signup", conflict("User already exists"))
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "signup", err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.fail(w, r, "signup", errors.Wrap(err, "hash password"))
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Name, req.Email, hash, req.Birthdate)
	if errors.Is(err, store.ErrConflict) {
		h.fail(w, r, "signup", conflict("User already exists"))
		return
	}
	if err != nil {
		h.fail(w, r, "signup", err)
		return
	}

	h.log.Info("user signed up", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		User:    user.Public(),
	})
}

// Login verifies credentials and starts a session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "login", err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		h.fail(w, r, "login", validationError("Email and password are required"))
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "login", unauthorized("Invalid credentials"))
		return
	}
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		h.log.Warn("stored password hash is unreadable", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	if !ok {
		h.fail(w, r, "login", unauthorized("Invalid credentials"))
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}
	h.setSessionCookie(w, token, h.sessions.TTL())

	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user.Public(),
	})
}

// Logout destroys the session. It succeeds even without one.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(services.SessionCookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), c.Value); err != nil {
			h.log.Warn("destroy session", zap.Error(err))
		}
	}
	h.setSessionCookie(w, "", -1)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// setSessionCookie writes the session cookie; a negative ttl expires it.
func (h *Handler) setSessionCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	} else {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl)
	}
	http.SetCookie(w, c)
}
