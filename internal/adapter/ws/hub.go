// Package ws pushes feed refresh results to connected websocket clients.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/golgrax/bayanihan-alerts/internal/observability"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 8
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected stream clients and fans refresh payloads out to
// them. Slow clients are disconnected rather than allowed to block a
// broadcast.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu      sync.Mutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger:  logger,
		metrics: metrics,
		clients: make(map[string]*client),
	}
}

// HandleStream upgrades the request to a websocket and streams broadcast
// payloads until the client disconnects.
func (h *Hub) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	h.metrics.StreamClients.Inc()
	h.logger.Info("stream client connected", "client_id", id)

	go h.writePump(id, c)

	// Inbound messages are ignored; the read loop exists to observe the
	// close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(id)
}

// Broadcast serializes v once and sends it to every connected client.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("broadcast payload not serializable", "error", err)
		return
	}

	h.mu.Lock()
	var dropped []string
	for id, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			dropped = append(dropped, id)
		}
	}
	h.mu.Unlock()

	for _, id := range dropped {
		h.logger.Warn("dropping slow stream client", "client_id", id)
		h.remove(id)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.remove(id)
	}
}

func (h *Hub) writePump(id string, c *client) {
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(id)
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	close(c.send)
	c.conn.Close() //nolint:errcheck
	h.metrics.StreamClients.Dec()
	h.logger.Info("stream client disconnected", "client_id", id)
}
