// Package hub fans broadcast messages out to websocket clients using
// the channel-based register/unregister/broadcast pattern. The rover
// runs one hub per feed: mission status, camera frames, and events.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/gni-robotics/fieldrover/internal/log"
)

// MessageType tells the client pump which websocket frame to write.
type MessageType int

const (
	// TextMessage carries JSON payloads.
	TextMessage MessageType = iota
	// BinaryMessage carries raw bytes, JPEG frames in practice.
	BinaryMessage
)

// Message is one broadcast unit.
type Message struct {
	Type MessageType
	Data []byte
}

// Hub owns the set of connected clients for one feed.
type Hub struct {
	name string

	// replay greets each new client with the latest broadcast, so a
	// freshly opened dashboard shows current state without waiting
	// for the next publish.
	replay bool

	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client

	mu sync.RWMutex
}

// New creates a hub for the given feed name.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// NewReplay creates a hub that resends the most recent message to
// every client that connects.
func NewReplay(name string) *Hub {
	h := New(name)
	h.replay = true
	return h
}

// Run drives the hub loop. Call it in a goroutine before serving any
// clients.
func (h *Hub) Run() {
	var last *Message

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()

			if h.replay && last != nil {
				select {
				case c.send <- *last:
				default:
				}
			}
			log.Debug("ws client connected", "feed", h.name, "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("ws client disconnected", "feed", h.name, "total", count)

		case msg := <-h.broadcast:
			if h.replay {
				last = &msg
			}
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Buffer full, the client cannot keep up.
					close(c.send)
					delete(h.clients, c)
					log.Warn("dropped slow ws client", "feed", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a message for every connected client. When the
// hub itself is saturated the message is dropped; feeds carry live
// state, not a durable stream.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Warn("broadcast queue full", "feed", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it as a text message.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(Message{Type: TextMessage, Data: data})
	return nil
}

// BroadcastFrame broadcasts one JPEG frame.
func (h *Hub) BroadcastFrame(frame []byte) {
	h.Broadcast(Message{Type: BinaryMessage, Data: frame})
}

// ClientCount reports connected clients. The camera pump uses it to
// skip frame grabs nobody is watching.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
