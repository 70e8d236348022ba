package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

// Event is the message pushed to every connected client after a change.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const broadcastBuffer = 64

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		log:        log,
	}
}

// Publish queues e for broadcast. It never blocks; when the queue is full
// the event is dropped and logged.
func (h *Hub) Publish(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.log.Error().Err(err).Str("action", e.Action).Msg("ws: encode event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn().Str("action", e.Action).Msg("ws: broadcast queue full, event dropped")
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug().Msg("ws: client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
