package websocket

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/ping-game/game/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Time the peer has to answer our close frame.
	closeGracePeriod = time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBufferSize = 64
)

var errSendBufferFull = errors.New("send buffer full")

type outbound struct {
	data   []byte
	close  bool
	code   int
	reason string
}

// Client is one WebSocket connection. It implements session.Conn.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	remote string
	player *session.Player

	send chan outbound
	done chan struct{}

	mu      sync.Mutex
	closing bool
}

func newClient(hub *Hub, conn *websocket.Conn, remote string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		remote: remote,
		send:   make(chan outbound, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues a text frame.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return session.ErrConnClosed
	}
	select {
	case c.send <- outbound{data: data}:
		return nil
	default:
		c.closing = true
		c.conn.Close()
		return errSendBufferFull
	}
}

// Close queues a close frame behind any pending messages. Later sends fail.
func (c *Client) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return session.ErrConnClosed
	}
	c.closing = true
	select {
	case c.send <- outbound{close: true, code: code, reason: reason}:
	default:
		c.conn.Close()
	}
	return nil
}

func (c *Client) markClosed() {
	c.mu.Lock()
	c.closing = true
	c.mu.Unlock()
}

// readPump delivers inbound frames to the player until the connection ends.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.markClosed()
		close(c.done)
		c.hub.remove(c)
		c.conn.Close()
		c.player.OnClose()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error from %s: %v", c.remote, err)
			}
			return
		}
		c.player.OnMessage(ctx, data, messageType == websocket.TextMessage)
	}
}

// writePump drains the outbound queue and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if msg.close {
				frame := websocket.FormatCloseMessage(msg.code, msg.reason)
				if err := c.conn.WriteMessage(websocket.CloseMessage, frame); err != nil {
					c.conn.Close()
					return
				}
				// The read pump ends when the peer answers or the grace period runs out.
				c.conn.SetReadDeadline(time.Now().Add(closeGracePeriod))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				c.conn.Close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}

		case <-c.done:
			return
		}
	}
}
