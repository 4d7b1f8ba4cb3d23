package handlers

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

type CreateJournalRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsPublic bool   `json:"is_public"`
}

type CreateJournalResponse struct {
	Message string              `json:"message"`
	Entry   models.JournalEntry `json:"entry"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type AddCommentResponse struct {
	Message string                `json:"message"`
	Comment models.JournalComment `json:"comment"`
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "create journal entry", err)
		return
	}
	if blank(req.Content) {
		h.fail(w, r, "create journal entry", validationError("Content is required"))
		return
	}

	entry := &models.JournalEntry{
		UserID:   currentUser(r), // from session only
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Category: strings.TrimSpace(req.Category),
		IsPublic: req.IsPublic,
	}
	if entry.Category == "" {
		entry.Category = models.DefaultJournalCategory
	}
	if e := lengthError(
		lengthCheck{"Title", entry.Title, models.MaxTitleLength},
		lengthCheck{"Category", entry.Category, models.MaxCategoryLength},
	); e != nil {
		h.fail(w, r, "create journal entry", e)
		return
	}

	if err := h.store.CreateJournalEntry(r.Context(), entry); err != nil {
		h.fail(w, r, "create journal entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateJournalResponse{
		Message: "Journal entry saved successfully",
		Entry:   *entry,
	})
}

func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	entries, err := h.store.ListJournalEntries(r.Context(), currentUser(r), category)
	if err != nil {
		h.fail(w, r, "list journal entries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteJournalEntry only removes entries owned by the caller; anything else
// is reported as not found.
func (h *Handler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "delete journal entry", err)
		return
	}
	err = h.store.DeleteJournalEntry(r.Context(), id, currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "delete journal entry", notFound("Journal entry not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "delete journal entry", err)
		return
	}
	writeMessage(w, http.StatusOK, "Journal entry deleted successfully")
}

func (h *Handler) ListPublicJournal(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	entries, err := h.store.ListPublicJournal(r.Context(), category)
	if err != nil {
		h.fail(w, r, "list public journal", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// visibleEntry loads the entry addressed by the {id} path param if the caller
// may interact with it: public entries and the caller's own.
func (h *Handler) visibleEntry(r *http.Request) (*models.JournalEntry, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	entry, err := h.store.GetJournalEntry(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Journal entry not found")
	}
	if err != nil {
		return nil, err
	}
	if !entry.IsPublic && entry.UserID != currentUser(r) {
		return nil, notFound("Journal entry not found")
	}
	return entry, nil
}

// LikeJournalEntry is idempotent: liking twice leaves one like.
func (h *Handler) LikeJournalEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.visibleEntry(r)
	if err != nil {
		h.fail(w, r, "like journal entry", err)
		return
	}
	err = h.store.LikeJournalEntry(r.Context(), entry.ID, currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "like journal entry", notFound("Journal entry not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "like journal entry", err)
		return
	}
	writeMessage(w, http.StatusOK, "Entry liked successfully")
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	entry, err := h.visibleEntry(r)
	if err != nil {
		h.fail(w, r, "list comments", err)
		return
	}
	comments, err := h.store.ListComments(r.Context(), entry.ID)
	if err != nil {
		h.fail(w, r, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	entry, err := h.visibleEntry(r)
	if err != nil {
		h.fail(w, r, "add comment", err)
		return
	}
	var req AddCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "add comment", err)
		return
	}
	if blank(req.Content) {
		h.fail(w, r, "add comment", validationError("Content is required"))
		return
	}

	comment, err := h.store.AddComment(r.Context(), entry.ID, currentUser(r), req.Content)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "add comment", notFound("Journal entry not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "add comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, AddCommentResponse{
		Message: "Comment added successfully",
		Comment: *comment,
	})
}
