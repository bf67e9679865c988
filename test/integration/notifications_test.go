//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/gambit/admin-api/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Notification CRUD ──────────────────────────────────────────────────────

func TestNotifications_Create(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("notifier", "secret123", "NOTIFICATION")

	resp := env.AuthPOST("/api/notifications", map[string]string{
		"title":       "Game tonight",
		"message":     "Tune in at 7pm",
		"target_type": "all",
	}, token)

	testutil.AssertStatus(t, resp, http.StatusCreated)

	var n struct {
		ID   int64 `json:"id"`
		Sent bool  `json:"sent"`
	}
	testutil.DecodeData(t, resp, &n)
	assert.NotZero(t, n.ID)
	assert.False(t, n.Sent)
}

func TestNotifications_CreateUserTargetRequiresExistingUser(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("targeted", "secret123", "NOTIFICATION")

	resp := env.AuthPOST("/api/notifications", map[string]interface{}{
		"title":          "Personal",
		"message":        "Just for you",
		"target_type":    "user",
		"target_user_id": 999999,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	userID := env.SeedUser("recipient@test.com", "recipient")
	resp = env.AuthPOST("/api/notifications", map[string]interface{}{
		"title":          "Personal",
		"message":        "Just for you",
		"target_type":    "user",
		"target_user_id": userID,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// ─── Send ───────────────────────────────────────────────────────────────────

func TestNotifications_SendMarksSentAndQueuesOutbox(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("sender", "secret123", "NOTIFICATION")
	id := env.SeedNotification("Send me", "all")

	resp := env.AuthPOST("/api/notifications/"+itoa(id)+"/send", nil, token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var n struct {
		Sent bool `json:"sent"`
	}
	testutil.DecodeData(t, resp, &n)
	assert.True(t, n.Sent)

	// The sent flag and the outbox row land together.
	var sent bool
	var outboxCount int
	require.NoError(t, env.Pool.QueryRow(t.Context(),
		"SELECT sent FROM notifications WHERE id = $1", id).Scan(&sent))
	require.NoError(t, env.Pool.QueryRow(t.Context(),
		"SELECT COUNT(*) FROM notification_outbox WHERE notification_id = $1", id).Scan(&outboxCount))
	assert.True(t, sent)
	assert.Equal(t, 1, outboxCount)
}

func TestNotifications_SendTwiceRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("resender", "secret123", "NOTIFICATION")
	id := env.SeedNotification("Once only", "all")

	first := env.AuthPOST("/api/notifications/"+itoa(id)+"/send", nil, token)
	first.Body.Close()

	resp := env.AuthPOST("/api/notifications/"+itoa(id)+"/send", nil, token)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, resp, "Notification has already been sent")

	// No second outbox row.
	var outboxCount int
	env.Pool.QueryRow(t.Context(),
		"SELECT COUNT(*) FROM notification_outbox WHERE notification_id = $1", id).Scan(&outboxCount)
	assert.Equal(t, 1, outboxCount)
}

func TestNotifications_SentIsFrozen(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("freezer", "secret123", "NOTIFICATION")
	id := env.SeedNotification("Frozen", "all")

	send := env.AuthPOST("/api/notifications/"+itoa(id)+"/send", nil, token)
	send.Body.Close()

	resp := env.AuthPUT("/api/notifications/"+itoa(id), map[string]string{
		"title": "Rewritten history",
	}, token)

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorMessage(t, resp, "Cannot update a sent notification")
}

func TestNotifications_ListFilterBySent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("lister", "secret123", "NOTIFICATION")
	sentID := env.SeedNotification("Already out", "all")
	env.SeedNotification("Still pending", "all")

	send := env.AuthPOST("/api/notifications/"+itoa(sentID)+"/send", nil, token)
	send.Body.Close()

	resp := env.AuthGET("/api/notifications?sent=false", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var list []struct {
		Title string `json:"title"`
		Sent  bool   `json:"sent"`
	}
	testutil.DecodeData(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Still pending", list[0].Title)
}

func TestNotifications_ListBadSentParam(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.CreateAdmin("badparam", "secret123", "NOTIFICATION")

	resp := env.AuthGET("/api/notifications?sent=maybe", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
