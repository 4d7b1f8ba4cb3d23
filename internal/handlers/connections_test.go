package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/mindfulspace-backend/internal/models"
	"github.com/AnshRaj112/mindfulspace-backend/internal/testutil"
)

func incoming(t *testing.T, srv *testutil.Server, c *http.Cookie) []models.ConnectionRequest {
	t.Helper()
	var reqs []models.ConnectionRequest
	rec := srv.Do(t, "GET", "/api/connection-requests", nil, c)
	require.Equal(t, http.StatusOK, rec.Code)
	testutil.DecodeJSON(t, rec, &reqs)
	return reqs
}

func TestSendConnectionRequestValidation(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	a, aID := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")
	_, bID := srv.SignupAndLogin(t, "Ben", "b@x.com", "pw")

	rec := srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{}, a)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": aID}, a)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": 9999}, a)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// ids sent as strings are accepted
	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": fmt.Sprint(bID)}, a)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Connection request sent successfully"}`, rec.Body.String())

	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": bID}, a)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Connection request already sent"}`, rec.Body.String())
}

func TestAcceptConnectionRequest(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	a, aID := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")
	b, bID := srv.SignupAndLogin(t, "Ben", "b@x.com", "pw")

	// higher id sends to lower id so the stored pair must be reordered
	rec := srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": aID}, b)
	require.Equal(t, http.StatusOK, rec.Code)

	reqs := incoming(t, srv, a)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Ben", reqs[0].SenderName)
	assert.Equal(t, models.RequestStatusPending, reqs[0].Status)
	path := fmt.Sprintf("/api/connection-request/%d/accept", reqs[0].ID)

	// only the receiver can accept
	rec = srv.Do(t, "POST", path, nil, b)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.Do(t, "POST", path, nil, a)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Connection request accepted"}`, rec.Body.String())

	rec = srv.Do(t, "POST", path, nil, a)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, srv.Store.ConnectionCount())
	assert.Empty(t, incoming(t, srv, a))

	var conns []models.ConnectedUser
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/connections", nil, a), &conns)
	require.Len(t, conns, 1)
	assert.Equal(t, bID, conns[0].ID)
	assert.Equal(t, "Ben", conns[0].Name)

	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/connections", nil, b), &conns)
	require.Len(t, conns, 1)
	assert.Equal(t, aID, conns[0].ID)

	// connected users cannot request each other again
	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": bID}, a)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Already connected"}`, rec.Body.String())
}

func TestRejectConnectionRequest(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	a, aID := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")
	b, _ := srv.SignupAndLogin(t, "Ben", "b@x.com", "pw")

	srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": aID}, b)
	reqs := incoming(t, srv, a)
	require.Len(t, reqs, 1)
	path := fmt.Sprintf("/api/connection-request/%d/reject", reqs[0].ID)

	rec := srv.Do(t, "POST", path, nil, a)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Connection request rejected"}`, rec.Body.String())
	assert.Equal(t, 0, srv.Store.ConnectionCount())

	rec = srv.Do(t, "POST", path, nil, a)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// a rejected request cannot be accepted afterwards
	rec = srv.Do(t, "POST", fmt.Sprintf("/api/connection-request/%d/accept", reqs[0].ID), nil, a)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, srv.Store.ConnectionCount())

	// the rejected sender is no longer offered the receiver; the receiver
	// may still reach out the other way
	var candidates []models.Candidate
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/users", nil, b), &candidates)
	assert.Empty(t, candidates)
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/users", nil, a), &candidates)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Ben", candidates[0].Name)
}

func TestCandidatesAndRemoveConnection(t *testing.T) {
	srv := testutil.SetupTestServer(t, "")
	a, aID := srv.SignupAndLogin(t, "Ana", "a@x.com", "pw")
	b, bID := srv.SignupAndLogin(t, "Ben", "b@x.com", "pw")
	_, cID := srv.SignupAndLogin(t, "Cat", "c@x.com", "pw")

	var candidates []models.Candidate
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/users", nil, a), &candidates)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Ben", candidates[0].Name)
	assert.Equal(t, "Cat", candidates[1].Name)

	// pending outgoing requests hide the receiver
	srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": cID}, a)
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/users", nil, a), &candidates)
	require.Len(t, candidates, 1)
	assert.Equal(t, bID, candidates[0].ID)

	srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": bID}, a)
	reqs := incoming(t, srv, b)
	require.Len(t, reqs, 1)
	srv.Do(t, "POST", fmt.Sprintf("/api/connection-request/%d/accept", reqs[0].ID), nil, b)

	rec := srv.Do(t, "GET", "/api/user/stats", nil, b)
	var stats models.UserStats
	testutil.DecodeJSON(t, rec, &stats)
	assert.Equal(t, int64(1), stats.TotalConnections)

	rec = srv.Do(t, "DELETE", fmt.Sprintf("/api/connection/%d", aID), nil, b)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Connection removed successfully"}`, rec.Body.String())

	rec = srv.Do(t, "DELETE", fmt.Sprintf("/api/connection/%d", bID), nil, a)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// after removal the pair can connect again
	testutil.DecodeJSON(t, srv.Do(t, "GET", "/api/users", nil, a), &candidates)
	require.Len(t, candidates, 1)
	assert.Equal(t, bID, candidates[0].ID)
	rec = srv.Do(t, "POST", "/api/connection-request", map[string]interface{}{"receiver_id": bID}, a)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, incoming(t, srv, b), 1)
}
