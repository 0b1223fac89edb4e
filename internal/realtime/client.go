// internal/realtime/client.go
//
// One websocket connection bound to a (gameId, userId) pair. Writes go
// through a buffered channel and a single writer goroutine; reads are
// handed to the caller's intent handler. Ping/pong keepalive follows the
// usual gorilla deadlines.

package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

type Client struct {
	GameID string
	UserID string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewClient registers the connection with the hub's room for gameID.
func NewClient(hub *Hub, conn *websocket.Conn, gameID, userID string) *Client {
	c := &Client{
		GameID: gameID,
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	hub.add(c)
	return c
}

// Send marshals v and queues it for this client only. Used for error
// replies and the initial snapshot.
func (c *Client) Send(v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("userId", c.UserID).Msg("marshal send")
		return
	}
	c.enqueue(payload)
}

func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		// Full buffer means a stuck reader; cut it loose.
		c.Close()
	}
}

// Close unregisters from the hub and tears the connection down. Safe to
// call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		c.hub.remove(c)
		close(c.send)
		_ = c.conn.Close()
	})
}

// Run pumps the connection. onMsg is invoked for every text frame read;
// the call blocks until the connection drops, then runs onLeave once.
func (c *Client) Run(onMsg func(data []byte), onLeave func()) {
	go c.writePump()
	c.readPump(onMsg)
	c.Close()
	if onLeave != nil {
		onLeave()
	}
}

func (c *Client) readPump(onMsg func(data []byte)) {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("userId", c.UserID).Msg("ws read")
			}
			return
		}
		onMsg(data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
