package ws

import (
	"context"
	"encoding/json"
	"sync"

	"ads-inventory-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

// broadcastBuffer bounds the events waiting for the Run loop. Publish keeps their order.
const broadcastBuffer = 256

// Event is the envelope pushed to every connected dashboard.
type Event struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	Data    any    `json:"data,omitempty"`
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        *logger.Logger
	done       chan struct{}
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Publish queues an event for broadcast without blocking the caller. A full queue drops the event.
// A nil hub drops the event, which keeps services usable without realtime.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error(context.Background(), "ws: marshal event", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	case <-h.done:
	default:
		h.log.Warn(h.log.WithField(context.Background(), "type", ev.Type), "ws: broadcast queue full, event dropped")
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Run serves register/unregister/broadcast until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Info(ctx, "ws client connected")

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

// Handler registers the connection and blocks reading until the peer goes away.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		select {
		case h.Register <- c:
		case <-h.done:
			return
		}
		defer func() {
			select {
			case h.Unregister <- c:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
