package ws

import (
	"encoding/json"
	"sync"
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Screen  string          `json:"screen,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// screenEvent is an internal struct for routing events to specific screens
type screenEvent struct {
	Screen string
	Event  Event
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Registered clients by screen name
	rooms map[string]map[*Client]bool

	// Inbound messages from clients (register/unregister)
	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan *screenEvent

	// Mutex for thread-safe room access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *screenEvent, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.screen] == nil {
				h.rooms[client.screen] = make(map[*Client]bool)
			}
			h.rooms[client.screen][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.screen]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					// Clean up empty rooms
					if len(clients) == 0 {
						delete(h.rooms, client.screen)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.Screen]

			// Marshal event to JSON once
			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			// Send to all clients on this screen
			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.rooms[event.Screen], client)
					if len(h.rooms[event.Screen]) == 0 {
						delete(h.rooms, event.Screen)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToScreen sends an event to all clients subscribed to a screen.
// This is the public API for the floor publisher to push updates.
func (h *Hub) BroadcastToScreen(screen string, event Event) {
	h.broadcast <- &screenEvent{
		Screen: screen,
		Event:  event,
	}
}

// Screens returns the screen names that currently have at least one client.
func (h *Hub) Screens() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.rooms))
	for screen := range h.rooms {
		out = append(out, screen)
	}
	return out
}
