package handlers

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
	"github.com/AnshRaj112/mindfulspace-backend/pkg/utils"
)

type UserProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate"`
	Bio       string `json:"bio"`
}

func profileOf(u *models.User) UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Birthdate: u.Birthdate, Bio: u.Bio}
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate"`
	Bio       string `json:"bio"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByID(r.Context(), currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "get user", notFound("User not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, profileOf(user))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "update profile", err)
		return
	}
	p := models.ProfileUpdate{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Birthdate: strings.TrimSpace(req.Birthdate),
		Bio:       req.Bio,
	}
	if p.Name == "" || p.Email == "" {
		h.fail(w, r, "update profile", validationError("Name and email are required"))
		return
	}
	if p.Birthdate != "" && !validDate(p.Birthdate) {
		h.fail(w, r, "update profile", validationError("Birthdate must be YYYY-MM-DD"))
		return
	}
	if e := lengthError(
		lengthCheck{"Name", p.Name, models.MaxNameLength},
		lengthCheck{"Email", p.Email, models.MaxEmailLength},
	); e != nil {
		h.fail(w, r, "update profile", e)
		return
	}

	user, err := h.store.UpdateProfile(r.Context(), currentUser(r), p)
	switch {
	case errors.Is(err, store.ErrConflict):
		h.fail(w, r, "update profile", conflict("Email already in use"))
		return
	case errors.Is(err, store.ErrNotFound):
		h.fail(w, r, "update profile", notFound("User not found"))
		return
	case err != nil:
		h.fail(w, r, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profileOf(user))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "change password", err)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		h.fail(w, r, "change password", validationError("Current and new password are required"))
		return
	}

	userID := currentUser(r)
	user, err := h.store.GetUserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "change password", notFound("User not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "change password", err)
		return
	}

	ok, err := utils.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		h.log.Warn("stored password hash is unreadable", zap.Int64("user_id", userID), zap.Error(err))
	}
	if !ok {
		h.fail(w, r, "change password", validationError("Current password is incorrect"))
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		h.fail(w, r, "change password", errors.Wrap(err, "hash password"))
		return
	}
	if err := h.store.UpdatePassword(r.Context(), userID, hash); err != nil {
		h.fail(w, r, "change password", err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.UserStats(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, "user stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
