package infra

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *PushHub {
	return NewPushHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(id string) *PushClient {
	return &PushClient{ID: id, Send: make(chan []byte, 4)}
}

func TestPushHubBroadcast(t *testing.T) {
	hub := newTestHub()
	client := newTestClient("c1")
	hub.Join("all", client)

	hub.Broadcast("all", "notification", map[string]any{"title": "Game tonight"})

	payload := <-client.Send
	var evt PushEvent
	require.NoError(t, json.Unmarshal(payload, &evt))
	assert.Equal(t, "notification", evt.Event)
	assert.Equal(t, "Game tonight", evt.Data.(map[string]any)["title"])
}

func TestPushHubUserRoomIsIsolated(t *testing.T) {
	hub := newTestHub()
	target := newTestClient("target")
	other := newTestClient("other")
	hub.Join(UserRoom(7), target)
	hub.Join(UserRoom(8), other)

	hub.BroadcastToUser(7, "notification", "hi")

	assert.Len(t, target.Send, 1)
	assert.Len(t, other.Send, 0)
}

func TestPushHubFullBufferDropsNotBlocks(t *testing.T) {
	hub := newTestHub()
	client := &PushClient{ID: "slow", Send: make(chan []byte, 1)}
	hub.Join("all", client)

	hub.Broadcast("all", "notification", 1)
	hub.Broadcast("all", "notification", 2)

	assert.Len(t, client.Send, 1)
}

func TestPushHubLeaveEmptiesRoom(t *testing.T) {
	hub := newTestHub()
	client := newTestClient("c1")
	hub.Join("subscribers", client)
	require.Equal(t, 1, hub.RoomCount())

	hub.Leave("subscribers", "c1")

	assert.Equal(t, 0, hub.RoomCount())
	assert.Equal(t, 0, hub.ClientCount())
}

func TestPushHubShutdownClosesClients(t *testing.T) {
	hub := newTestHub()
	client := newTestClient("c1")
	hub.Join("all", client)

	hub.Shutdown(context.Background())

	_, open := <-client.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.RoomCount())
}
