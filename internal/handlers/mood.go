package handlers

import (
	"net/http"
	"strings"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

type SaveMoodRequest struct {
	Mood  string `json:"mood"`
	Emoji string `json:"emoji"`
}

type AddGratitudeRequest struct {
	Text string `json:"text"`
}

// SaveMood records today's mood (UTC date), replacing any earlier one.
func (h *Handler) SaveMood(w http.ResponseWriter, r *http.Request) {
	var req SaveMoodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "save mood", err)
		return
	}
	req.Mood = strings.TrimSpace(req.Mood)
	if req.Mood == "" {
		h.fail(w, r, "save mood", validationError("Mood is required"))
		return
	}
	if e := lengthError(
		lengthCheck{"Mood", req.Mood, models.MaxMoodLength},
		lengthCheck{"Emoji", req.Emoji, models.MaxEmojiLength},
	); e != nil {
		h.fail(w, r, "save mood", e)
		return
	}

	today := h.now().UTC().Format("2006-01-02")
	if err := h.store.SaveMood(r.Context(), currentUser(r), today, req.Mood, req.Emoji); err != nil {
		h.fail(w, r, "save mood", err)
		return
	}
	writeMessage(w, http.StatusOK, "Mood saved successfully")
}

func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.store.ListMoods(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, "list moods", err)
		return
	}
	writeJSON(w, http.StatusOK, moods)
}

func (h *Handler) AddGratitude(w http.ResponseWriter, r *http.Request) {
	var req AddGratitudeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "add gratitude", err)
		return
	}
	if blank(req.Text) {
		h.fail(w, r, "add gratitude", validationError("Text is required"))
		return
	}
	if _, err := h.store.AddGratitude(r.Context(), currentUser(r), req.Text); err != nil {
		h.fail(w, r, "add gratitude", err)
		return
	}
	writeMessage(w, http.StatusOK, "Gratitude saved successfully")
}

// ListGratitude returns the most recent entries only.
func (h *Handler) ListGratitude(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListGratitude(r.Context(), currentUser(r), store.GratitudeListLimit)
	if err != nil {
		h.fail(w, r, "list gratitude", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
