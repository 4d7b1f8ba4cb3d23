package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

// flexID accepts an id sent either as a JSON number or a numeric string.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

var _ json.Unmarshaler = (*flexID)(nil)

type ConnectionRequestBody struct {
	ReceiverID flexID `json:"receiver_id"`
}

// ListCandidates lists users the caller can still send a request to.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListCandidates(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, "list candidates", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) SendConnectionRequest(w http.ResponseWriter, r *http.Request) {
	var req ConnectionRequestBody
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, "send connection request", err)
		return
	}
	receiverID := int64(req.ReceiverID)
	senderID := currentUser(r)
	if receiverID <= 0 {
		h.fail(w, r, "send connection request", validationError("Receiver is required"))
		return
	}
	if receiverID == senderID {
		h.fail(w, r, "send connection request", validationError("Cannot send a connection request to yourself"))
		return
	}

	if _, err := h.store.GetUserByID(r.Context(), receiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = notFound("User not found")
		}
		h.fail(w, r, "send connection request", err)
		return
	}

	connected, err := h.store.AreConnected(r.Context(), senderID, receiverID)
	if err != nil {
		h.fail(w, r, "send connection request", err)
		return
	}
	if connected {
		h.fail(w, r, "send connection request", conflict("Already connected"))
		return
	}

	_, err = h.store.CreateConnectionRequest(r.Context(), senderID, receiverID)
	switch {
	case errors.Is(err, store.ErrConflict):
		h.fail(w, r, "send connection request", conflict("Connection request already sent"))
		return
	case errors.Is(err, store.ErrNotFound):
		h.fail(w, r, "send connection request", notFound("User not found"))
		return
	case err != nil:
		h.fail(w, r, "send connection request", err)
		return
	}
	writeMessage(w, http.StatusOK, "Connection request sent successfully")
}

func (h *Handler) ListConnectionRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.store.ListIncomingRequests(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, "list connection requests", err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *Handler) AcceptConnectionRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "accept connection request", err)
		return
	}
	_, err = h.store.AcceptConnectionRequest(r.Context(), id, currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "accept connection request", notFound("Connection request not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "accept connection request", err)
		return
	}
	writeMessage(w, http.StatusOK, "Connection request accepted")
}

func (h *Handler) RejectConnectionRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "reject connection request", err)
		return
	}
	err = h.store.RejectConnectionRequest(r.Context(), id, currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "reject connection request", notFound("Connection request not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "reject connection request", err)
		return
	}
	writeMessage(w, http.StatusOK, "Connection request rejected")
}

func (h *Handler) ListConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.store.ListConnections(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, "list connections", err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

// RemoveConnection takes the other user's id in the path.
func (h *Handler) RemoveConnection(w http.ResponseWriter, r *http.Request) {
	otherID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "remove connection", err)
		return
	}
	err = h.store.RemoveConnection(r.Context(), currentUser(r), otherID)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "remove connection", notFound("Connection not found"))
		return
	}
	if err != nil {
		h.fail(w, r, "remove connection", err)
		return
	}
	writeMessage(w, http.StatusOK, "Connection removed successfully")
}
