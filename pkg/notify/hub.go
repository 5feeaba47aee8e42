package notify

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans broadcast messages out to connected websocket clients.
// Each connection gets a buffered write channel drained by its own
// writer goroutine; slow clients drop messages instead of blocking
// the broadcaster.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]chan []byte
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]chan []byte)}
}

// Register adds a connection and starts its writer. The returned
// function detaches the connection and must be called exactly once.
func (h *Hub) Register(conn *websocket.Conn) func() {
	writeChan := make(chan []byte, 100)

	h.mu.Lock()
	h.conns[conn] = writeChan
	h.mu.Unlock()

	go func() {
		defer conn.Close()
		for msg := range writeChan {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	return func() {
		h.mu.Lock()
		if ch, ok := h.conns[conn]; ok {
			delete(h.conns, conn)
			close(ch)
		}
		h.mu.Unlock()
	}
}

// Broadcast queues msg to every connected client, best-effort.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.conns {
		select {
		case ch <- msg:
		default:
		}
	}
}
