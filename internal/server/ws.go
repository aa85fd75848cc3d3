package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 10 << 20
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS allows any origin
	},
}

// wsRequest is a frame sent by a client. CameraType defaults to local.
type wsRequest struct {
	Image      string `json:"image"`
	CameraType string `json:"camera_type"`
}

type wsMessage struct {
	Caption string `json:"caption,omitempty"`
	Error   string `json:"error,omitempty"`
}

// wsClient serializes writes to one connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub recognizes frames sent over WebSocket and broadcasts every caption to
// all connected clients. Errors go back to the sender only.
type Hub struct {
	app *app.App
	log *logrus.Logger

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	closed  bool
}

// NewHub creates a Hub backed by a.
func NewHub(a *app.App, log *logrus.Logger) *Hub {
	return &Hub{
		app:     a,
		log:     log,
		clients: make(map[*wsClient]struct{}),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &wsClient{conn: conn}
	if !h.add(c) {
		conn.Close()
		return
	}
	defer h.remove(c)

	connID := middleware.GetReqID(r.Context())
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req wsRequest
		if err := jsoniter.Unmarshal(data, &req); err != nil {
			h.reply(c, wsMessage{Error: app.StatusOf(app.ErrInvalidData).Message})
			continue
		}
		if req.CameraType == "" {
			req.CameraType = string(capture.CameraLocal)
		}

		result, err := h.app.Recognize(r.Context(), app.Request{
			Image:      req.Image,
			CameraType: req.CameraType,
		})
		if err != nil {
			h.reply(c, wsMessage{Error: app.StatusOf(err).Message})
			continue
		}

		h.log.WithFields(logrus.Fields{
			"conn_id": connID,
			"caption": result.Caption,
		}).Debug("broadcasting caption")
		h.Broadcast(result.Caption)
	}
}

// Broadcast sends a caption to every connected client.
func (h *Hub) Broadcast(caption string) {
	data, err := jsoniter.Marshal(wsMessage{Caption: caption})
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.log.WithError(err).Debug("dropping websocket client")
			h.remove(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*wsClient]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		c.conn.Close()
	}
}

func (h *Hub) reply(c *wsClient, msg wsMessage) {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.send(data); err != nil {
		h.remove(c)
	}
}

func (h *Hub) add(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}
