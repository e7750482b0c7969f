package network

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// intentKinds whitelists the event kinds a client may publish. Navigation
// and action intents both come through here; everything else is refused.
var intentKinds = map[events.Kind]bool{
	events.KindMenu:          true,
	events.KindInGame:        true,
	events.KindMinigame:      true,
	events.KindLeaveMinigame: true,
	events.KindTutorial:      true,
	events.KindParental:      true,
	events.KindQuit:          true,
	events.KindFeedApple:     true,
	events.KindFeedBanana:    true,
	events.KindGiftPurple:    true,
	events.KindGiftGreen:     true,
	events.KindPlay:          true,
	events.KindWalk:          true,
	events.KindVet:           true,
	events.KindHeal:          true,
	events.KindSleep:         true,
}

// Intent is an incoming command from the frontend.
type Intent struct {
	Action string `json:"action"`
}

// Client holds one websocket connection and its outbound queue.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps intents from the websocket connection into the engine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.Get().RecordWSError()
				c.hub.logger.Error("WebSocket read error: " + err.Error())
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var intent Intent
		if err := json.Unmarshal(message, &intent); err != nil {
			c.hub.logger.Error("Failed to parse intent from WebSocket: " + err.Error())
			continue
		}
		c.handleIntent(intent)
	}
}

func (c *Client) handleIntent(intent Intent) {
	kind := events.Kind(intent.Action)
	if !intentKinds[kind] {
		c.hub.logger.Warn("Refused unknown intent: " + intent.Action)
		return
	}
	// Publish marshals onto the coordinator's serialized context; the
	// reader goroutine never touches the pet directly.
	c.hub.publish(kind)
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
