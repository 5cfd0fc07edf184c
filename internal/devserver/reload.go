package devserver

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type MessageType string

const (
	MsgTypeReload MessageType = "reload"
	MsgTypeError  MessageType = "error"
)

// Message is one live reload notification pushed to connected browsers.
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"`
}

// Hub fans live reload messages out to every connected browser.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan Message
	mu        sync.RWMutex
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Start begins delivering broadcasts in the background.
func (h *Hub) Start() {
	go h.handleBroadcasts()
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the browser goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) handleBroadcasts() {
	for msg := range h.broadcast {
		h.mu.RLock()
		conns := make([]*websocket.Conn, 0, len(h.clients))
		for conn := range h.clients {
			conns = append(conns, conn)
		}
		h.mu.RUnlock()

		for _, conn := range conns {
			if err := conn.WriteJSON(msg); err != nil {
				conn.Close()
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
			}
		}
	}
}

// BroadcastReload tells every connected browser to reload the page.
func (h *Hub) BroadcastReload() {
	h.broadcast <- Message{Type: MsgTypeReload}
}

// BroadcastError surfaces a failed rebuild to connected browsers.
func (h *Hub) BroadcastError(text string) {
	h.broadcast <- Message{Type: MsgTypeError, Text: text}
}
