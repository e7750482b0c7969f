// Package network is the UI collaborator boundary: websocket clients send
// action intents in, and receive vitals snapshots and state transitions
// out. No game logic lives here.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/engine"
	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/platform/logger"
	"github.com/petcrossing/server/internal/platform/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The desktop shell serves the page; same-origin is fine here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of active clients and broadcasts messages to them.
// Incoming intents are forwarded to the publish func (the coordinator's
// serialized entry point).
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	publish    func(events.Kind)
}

// NewHub initializes a new WebSocket Hub.
func NewHub(log *logger.Logger, publish func(events.Kind)) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		publish:    publish,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// envelope is the wire shape of an outgoing message.
type envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func (h *Hub) send(msgType string, payload interface{}) {
	data, err := json.Marshal(envelope{Type: msgType, Payload: payload})
	if err != nil {
		metrics.Get().RecordWSError()
		h.logger.Error("Failed to serialize broadcast message: " + err.Error())
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// A full broadcast queue means nobody is draining; drop rather
		// than stall the tick that produced this snapshot.
		metrics.Get().RecordWSError()
	}
}

// OnVitals implements engine.StatusListener: every tick's snapshot goes
// out to all clients.
func (h *Hub) OnVitals(s engine.Snapshot) {
	h.send("vitals", s)
}

// StateTransition is the payload announcing a discrete state change, used
// by the front end for sprite and animation swaps.
type StateTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// OnStateChange implements engine.StatusListener.
func (h *Hub) OnStateChange(from, to pet.State) {
	h.send("state_change", StateTransition{From: string(from), To: string(to)})
}

// ServeWS upgrades an HTTP request to a websocket client connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.Get().RecordWSError()
		h.logger.Error("WebSocket upgrade failed: " + err.Error())
		return
	}
	client := NewClient(h, conn)
	client.Register()
	go client.WritePump()
	go client.ReadPump()
}
