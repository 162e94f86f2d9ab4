// Package ws fans trigger lifecycle events out to connected dashboards.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	models "TriggerLab/internal/domain/models"
	xlogger "TriggerLab/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeTimeout = 5 * time.Second

	// sendBuffer absorbs publish bursts; a client that falls this far
	// behind its writer is dropped.
	sendBuffer = 64
)

// client pairs a socket with its outbound queue. All writes to the socket
// happen on the client's writeLoop goroutine; gorilla allows only one
// concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected dashboard sockets and broadcasts trigger events to
// them. It implements the Publisher interface so the synchronizer can treat
// it like any other event sink.
type Hub struct {
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(logger *xlogger.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboards are served from other origins in development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the connection and holds it until the peer closes. Inbound
// messages are discarded; the feed is one-way.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", xlogger.Int("clients", n))

	go h.writeLoop(cl)
	go h.readLoop(cl)
	return nil
}

func (h *Hub) readLoop(cl *client) {
	defer h.drop(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop is the connection's only writer. It drains the send queue until
// drop or Close closes it, then writes a close frame.
func (h *Hub) writeLoop(cl *client) {
	defer cl.conn.Close()
	for payload := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(cl)
			return
		}
	}
	cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = cl.conn.WriteMessage(websocket.CloseMessage, nil)
}

// Publish enqueues the event for every connected client. A client whose
// queue is full is dropped rather than blocking the rest.
func (h *Hub) Publish(_ context.Context, ev models.TriggerEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	var stalled []*client
	h.mu.Lock()
	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			stalled = append(stalled, cl)
		}
	}
	for _, cl := range stalled {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()

	if len(stalled) > 0 {
		h.logger.Warn("dropped stalled websocket clients", xlogger.Int("count", len(stalled)))
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	return nil
}

// drop unregisters the client and closes its queue exactly once. The send
// channel is only ever closed with the lock held, so Publish can never hit
// a closed channel.
func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	_ = cl.conn.Close()
}
