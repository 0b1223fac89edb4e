// internal/realtime/hub.go
//
// Room registry for the broadcast port. A room is the set of websocket
// clients watching one game id; Broadcast fans a JSON payload out to all
// of them. The hub knows nothing about game rules: it is the transport
// the engine's events ride on.

package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.GameID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[c.GameID] = room
	}
	room[c] = true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.GameID]
	if room == nil {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.GameID)
	}
}

// Broadcast sends v to every client in the game's room. Slow clients are
// dropped rather than allowed to stall the fan-out.
func (h *Hub) Broadcast(gameID string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("gameId", gameID).Msg("marshal broadcast")
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[gameID]))
	for c := range h.rooms[gameID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(payload)
	}
}

// GameIDs lists rooms with at least one connected client. The turn
// timeout sweeper polls this instead of scanning the whole store.
func (h *Hub) GameIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.rooms))
	for id := range h.rooms {
		out = append(out, id)
	}
	return out
}

// RoomSize reports how many clients watch a game.
func (h *Hub) RoomSize(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gameID])
}
