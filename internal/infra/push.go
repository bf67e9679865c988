package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
)

// PushHub fans delivered notifications out to connected delivery clients.
// Rooms are target-scoped: "all", "subscribers", or "user:{id}" for a single
// recipient. In a multi-instance deployment this would sit behind a shared
// broker; one notifier instance only needs the in-process hub.
type PushHub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]*PushClient
	logger *slog.Logger
}

// PushClient is one connected delivery endpoint. Send is buffered by the
// owner; a full buffer drops the event rather than blocking the hub.
type PushClient struct {
	ID   string
	Send chan []byte
}

// PushEvent is the payload written to clients.
type PushEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NewPushHub creates an empty hub.
func NewPushHub(logger *slog.Logger) *PushHub {
	return &PushHub{
		rooms:  make(map[string]map[string]*PushClient),
		logger: logger,
	}
}

// UserRoom returns the room name scoped to a single user.
func UserRoom(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// Join adds a client to a room.
func (h *PushHub) Join(room string, client *PushClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*PushClient)
	}
	h.rooms[room][client.ID] = client
}

// Leave removes a client from a room, dropping the room when it empties.
func (h *PushHub) Leave(room, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[room]; ok {
		delete(clients, clientID)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends an event to every client in a room.
func (h *PushHub) Broadcast(room, event string, data interface{}) {
	payload, err := json.Marshal(PushEvent{Event: event, Data: data})
	if err != nil {
		h.logger.Error("push marshal error", "error", err, "room", room, "event", event)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[room] {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("push buffer full, dropping event", "client_id", client.ID, "room", room)
		}
	}
}

// BroadcastToUser sends an event to the user-scoped room.
func (h *PushHub) BroadcastToUser(userID int64, event string, data interface{}) {
	h.Broadcast(UserRoom(userID), event, data)
}

// ClientCount returns the total number of connected clients.
func (h *PushHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, clients := range h.rooms {
		count += len(clients)
	}
	return count
}

// RoomCount returns the number of active rooms.
func (h *PushHub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Shutdown closes every client channel and empties the hub.
func (h *PushHub) Shutdown(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for _, client := range clients {
			close(client.Send)
		}
		delete(h.rooms, room)
	}
}
