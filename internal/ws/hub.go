package ws

import (
	"encoding/json"
	"sync"

	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/logger"
)

// Hub fans leaderboard updates out to subscribed clients. Clients
// subscribe per period; a recompute pushes the fresh standings to every
// subscriber of that period.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

type leaderboardUpdate struct {
	Type    string                    `json:"type"`
	Period  domain.Period             `json:"period"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// BroadcastLeaderboard pushes a recomputed leaderboard to every client
// subscribed to its period. Slow clients are dropped rather than blocking
// the broadcast.
func (h *Hub) BroadcastLeaderboard(period domain.Period, entries []domain.LeaderboardEntry) {
	msg, err := json.Marshal(leaderboardUpdate{
		Type:    "leaderboard",
		Period:  period,
		Entries: entries,
	})
	if err != nil {
		logger.Error("marshal leaderboard update", "error", err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for c := range h.clients {
		if !c.subscribed(period) {
			continue
		}
		select {
		case c.Send <- msg:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		logger.Warn("dropping slow websocket client", "user_id", c.UserID)
		h.unregister(c)
	}
}

// ClientCount is used by tests and the readiness probe.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
