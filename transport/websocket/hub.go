package websocket

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/wricardo/ping-game/game/session"
)

// Hub tracks live connections and hands each one to the session layer.
type Hub struct {
	registry *session.Registry
	upgrader websocket.Upgrader

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
}

// NewHub creates a hub serving players into registry. allowOrigin decides
// whether a handshake's Origin header is accepted; nil accepts all.
func NewHub(registry *session.Registry, allowOrigin func(origin string) bool) *Hub {
	h := &Hub{
		registry:   registry,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowOrigin == nil {
				return true
			}
			return allowOrigin(r.Header.Get("Origin"))
		},
	}
	return h
}

// Run starts the hub's event loop. When ctx is cancelled every client is
// closed with 1001 (going away) and Run returns.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Printf("[WS] client connected from %s (total clients: %d)", client.remote, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.count.Store(int64(len(h.clients)))
				log.Printf("[WS] client disconnected from %s (remaining clients: %d)", client.remote, len(h.clients))
			}

		case <-ctx.Done():
			for client := range h.clients {
				client.Close(websocket.CloseGoingAway, "server shutdown")
			}
			log.Printf("[WS] hub stopped, closed %d clients", len(h.clients))
			return
		}
	}
}

// Clients returns the number of live connections.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// ServeWS upgrades the request and starts the connection pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn, r.RemoteAddr)
	select {
	case h.register <- client:
	case <-h.done:
		client.Close(websocket.CloseGoingAway, "server shutdown")
	}

	client.player = session.NewPlayer(client, h.registry)
	client.player.OnOpen()

	// The request context ends when this handler returns; keep its values only.
	ctx := context.WithoutCancel(r.Context())
	go client.writePump()
	go client.readPump(ctx)
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
