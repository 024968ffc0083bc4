package handler

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"tradegate/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The webhook token already gates writes; the feed itself is read-only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient pairs a connection with its write lock. gorilla/websocket permits
// only one concurrent writer per connection, and NotifyDecision runs on
// whatever goroutine handled the webhook.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(v)
}

// DecisionHub fans accepted decisions out to connected websocket clients. It
// implements service.DecisionNotifier.
type DecisionHub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewDecisionHub() *DecisionHub {
	return &DecisionHub{clients: make(map[*wsClient]struct{})}
}

func (hub *DecisionHub) add(conn *websocket.Conn) *wsClient {
	client := &wsClient{conn: conn}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.clients[client] = struct{}{}
	return client
}

func (hub *DecisionHub) remove(client *wsClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.clients[client]; ok {
		delete(hub.clients, client)
		_ = client.conn.Close()
	}
}

func (hub *DecisionHub) ClientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

// NotifyDecision writes the decision to every connected client, dropping
// clients whose writes fail. Safe for concurrent use.
func (hub *DecisionHub) NotifyDecision(ctx context.Context, decision domain.Decision) error {
	if hub == nil {
		return nil
	}

	hub.mu.Lock()
	clients := make([]*wsClient, 0, len(hub.clients))
	for client := range hub.clients {
		clients = append(clients, client)
	}
	hub.mu.Unlock()

	for _, client := range clients {
		if err := client.writeJSON(decision); err != nil {
			log.Printf("websocket client dropped: %v", err)
			hub.remove(client)
		}
	}
	return nil
}

// StreamDecisions godoc
// @Summary      Live feed of accepted decisions
// @Description  Upgrades to a websocket that streams each accepted decision as JSON
// @Tags         decisions
// @Router       /ws/decisions [get]
func (h *Handler) StreamDecisions(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "decision feed unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := h.hub.add(conn)

	// Reader loop only detects disconnects; the feed is write-only.
	go func() {
		defer h.hub.remove(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
