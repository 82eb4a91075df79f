// Package ws pushes reward toasts to a user's connected clients. The feed is
// one-way and best-effort: entity state always travels over the REST API.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/questlog/backend/internal/model"
	"github.com/questlog/backend/internal/service"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Hub tracks connected clients per user and implements service.Notifier.
type Hub struct {
	mu       sync.RWMutex
	clients  map[uint]map[*client]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*client]bool),
		upgrader: websocket.Upgrader{
			// Same-origin browser clients only; the bearer token is the gate.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and keeps the connection registered until
// the peer goes away. The caller has already authenticated userID.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	c := newClient(conn)
	h.add(userID, c)

	go func() {
		defer h.remove(userID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) add(userID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]bool)
	}
	h.clients[userID][c] = true
}

func (h *Hub) remove(userID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[userID]; ok && set[c] {
		delete(set, c)
		c.close()
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
}

// RewardGranted implements service.Notifier.
func (h *Hub) RewardGranted(userID uint, outcome service.RewardOutcome) {
	h.send(userID, WSMessage{
		Type: MsgRewardGranted,
		Payload: RewardPayload{
			XPChange:   outcome.XPChange,
			GoldChange: outcome.GoldChange,
		},
	})
	if outcome.NewLevel != nil {
		h.send(userID, WSMessage{
			Type:    MsgLevelUp,
			Payload: LevelUpPayload{NewLevel: *outcome.NewLevel},
		})
	}
}

// AchievementUnlocked implements service.Notifier.
func (h *Hub) AchievementUnlocked(userID uint, achievement model.Achievement) {
	h.send(userID, WSMessage{
		Type: MsgAchievementUnlocked,
		Payload: AchievementPayload{
			DefinitionID: achievement.DefinitionID,
			Name:         achievement.Name,
			Description:  achievement.Description,
			Tier:         achievement.Tier,
			XPReward:     achievement.XPReward,
		},
	})
}

func (h *Hub) send(userID uint, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}

	// Sends happen under the read lock: close(c.send) only runs inside
	// remove, which holds the write lock, so a send can never hit a closed
	// channel. The select never blocks, so holding the lock is safe.
	h.mu.RLock()
	var slow []*client
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		// Client can't keep up, disconnect it
		log.Printf("ws client too slow, disconnecting")
		h.remove(userID, c)
	}
}

// ClientCount reports connected clients across all users.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
