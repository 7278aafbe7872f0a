// Package notify fans transition outcomes out to connected admin clients over websockets.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

const (
	broadcastBuffer = 64
	clientBuffer    = 16

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Hub keeps the set of connected clients and broadcasts notifications to them.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan envelope
	register   chan *client
	unregister chan *client
	done       chan struct{}
	connected  atomic.Int64
	logger     *slog.Logger
	origins    []string
}

type envelope struct {
	entity  string
	payload []byte
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	caps model.CapabilitySet
}

// wants reports whether the client may see notifications about entity.
func (c *client) wants(entity string) bool {
	switch entity {
	case model.EntityOrder:
		return c.caps.Has(model.CapOrders)
	case model.EntityPipeline:
		return c.caps.Has(model.CapPipelines)
	default:
		return false
	}
}

// NewHub creates Hub. Empty origins accept websocket upgrades from any origin.
func NewHub(logger *slog.Logger, origins ...string) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan envelope, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
		origins:    origins,
	}
}

// Publish queues n for the clients allowed to see its entity. It never
// blocks; when the queue is full the notification is dropped.
func (h *Hub) Publish(n model.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("failed to encode notification", slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- envelope{entity: n.Entity, payload: payload}:
	default:
		h.logger.Warn("notification dropped",
			slog.String("entity", n.Entity),
			slog.String("id", n.ID),
			slog.String("outcome", string(n.Outcome)),
		)
	}
}

// Connected returns the number of registered clients.
func (h *Hub) Connected() int {
	return int(h.connected.Load())
}

// Run dispatches registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.connected.Add(1)
			h.logger.Debug("websocket client connected", slog.String("remote", c.conn.RemoteAddr().String()))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug("websocket client disconnected", slog.String("remote", c.conn.RemoteAddr().String()))
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				if !c.wants(message.entity) {
					continue
				}
				select {
				case c.send <- message.payload:
				default:
					h.logger.Warn("slow websocket client dropped", slog.String("remote", c.conn.RemoteAddr().String()))
					h.drop(c)
				}
			}
		}
	}
}

// Done is closed once Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.connected.Add(-1)
}

func (h *Hub) attach(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; clients never send data.
func (c *client) readPump() {
	defer func() {
		c.hub.detach(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
	}
}
