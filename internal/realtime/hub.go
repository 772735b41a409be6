// Package realtime delivers broadcast and targeted events to connected
// websocket clients. Delivery is fire-and-forget: there is no ack, no retry
// and no queue for offline recipients.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gigboard/gigboard/internal/presence"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 32
)

// Envelope is the wire format for every event, inbound and outbound.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// inboundRegister is the only client-to-server message the hub understands.
type inboundRegister struct {
	Event  string `json:"event"`
	UserID int64  `json:"user_id"`
}

// EventRegisterUser binds the sending connection to a user identity.
const EventRegisterUser = "register-user"

type Hub struct {
	registry *presence.Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(registry *presence.Registry, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// identity comes from the register-user message, not the origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Envelope
}

// HandleWS upgrades the request and services the connection until the peer
// goes away. Runs on the request goroutine.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade", slog.Any("err", err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Envelope, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	go c.writePump()
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.drop(c)

	c.conn.SetReadLimit(maxMessageSize)
	for {
		var msg inboundRegister
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Event == EventRegisterUser && msg.UserID > 0 {
			h.registry.Register(msg.UserID, c.id)
			h.logger.Info("user registered",
				slog.Int64("user_id", msg.UserID),
				slog.String("handle", c.id),
			)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for env := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(env); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// drop removes the client and releases its presence entry. Safe to call once
// per client; the presence registry ignores handles it no longer knows.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	h.registry.Unregister(c.id)
	c.conn.Close()
}

// Broadcast delivers the event to every connected client. Clients that
// cannot keep up have the event dropped rather than blocking the caller.
func (h *Hub) Broadcast(event string, payload any) {
	env := Envelope{Event: event, Data: payload}

	// sends stay under the read lock so drop cannot close a channel
	// mid-send; they never block, so the lock is held only briefly
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- env:
		default:
			h.logger.Warn("dropping broadcast for slow client", slog.String("handle", c.id))
		}
	}
}

// SendTo delivers the event to the user's current connection. A user who is
// not connected simply does not receive the event.
func (h *Hub) SendTo(userID int64, event string, payload any) {
	handle, ok := h.registry.Resolve(userID)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[handle]
	if !ok {
		return
	}

	select {
	case c.send <- Envelope{Event: event, Data: payload}:
	default:
		h.logger.Warn("dropping event for slow client",
			slog.Int64("user_id", userID),
			slog.String("event", event),
		)
	}
}
