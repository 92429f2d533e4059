package hub

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pkjoshua/boltstheover/internal/jobs"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound updates
	sendBufferSize = 16
)

// Client is one dashboard WebSocket connection watching a single job.
type Client struct {
	ID    string
	JobID string
	Send  chan jobs.Update

	conn *websocket.Conn
	hub  *Hub
}

// NewClient creates a client watching the given job ID
func NewClient(id, jobID string, conn *websocket.Conn, h *Hub) *Client {
	return &Client{
		ID:    id,
		JobID: jobID,
		Send:  make(chan jobs.Update, sendBufferSize),
		conn:  conn,
		hub:   h,
	}
}

// ReadPump drains the connection to keep pong handling alive and detects
// disconnects. Dashboard clients never send meaningful messages.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump pushes job updates and pings to the peer
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case update, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(update); err != nil {
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
