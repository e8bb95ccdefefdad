package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/wricardo/ping-game/game/engine"
)

// fakeConn records everything the session layer writes to a connection.
type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
	code   int
	reason string
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	c.sent = append(c.sent, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	c.closed = true
	c.code = code
	c.reason = reason
	return nil
}

func (c *fakeConn) closeInfo() (bool, int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.code, c.reason
}

// wireMessage is the union of every outbound message.
type wireMessage struct {
	Type            string               `json:"type"`
	Result          string               `json:"result"`
	Reason          string               `json:"reason"`
	Turn            string               `json:"turn"`
	TurnNumber      int                  `json:"turn_number"`
	MovesRemaining  int                  `json:"moves_remaining"`
	YourColor       string               `json:"your_color"`
	Opponent        string               `json:"opponent"`
	PingSawOpponent bool                 `json:"ping_saw_opponent"`
	Board           engine.BoardSnapshot `json:"board"`
	BoardWidth      int                  `json:"board_width"`
	MovesPerTurn    int                  `json:"moves_per_turn"`
	Shapes          [][]engine.Location  `json:"shapes"`
}

func (c *fakeConn) messages(t *testing.T) []wireMessage {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := make([]wireMessage, 0, len(c.sent))
	for _, data := range c.sent {
		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to decode %s: %v", data, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *fakeConn) last(t *testing.T) wireMessage {
	t.Helper()
	msgs := c.messages(t)
	if len(msgs) == 0 {
		t.Fatal("Expected at least one message")
	}
	return msgs[len(msgs)-1]
}

type testClient struct {
	player *Player
	conn   *fakeConn
}

func newTestClient(r *Registry) *testClient {
	conn := &fakeConn{}
	player := NewPlayer(conn, r)
	player.OnOpen()
	return &testClient{player: player, conn: conn}
}

func (c *testClient) send(msg string) {
	c.player.OnMessage(context.Background(), []byte(msg), true)
}

func (c *testClient) join(name string) {
	c.send(`{"type":"join","name":"` + name + `"}`)
}

// pairClients joins "A" then "B" so that A plays white and B plays black.
func pairClients(t *testing.T) (*Registry, *testClient, *testClient) {
	t.Helper()
	r := NewRegistry()
	white := newTestClient(r)
	black := newTestClient(r)
	white.join("A")
	black.join("B")

	if _, _, ok := white.player.Match(); !ok {
		t.Fatal("Expected white to be paired")
	}
	return r, white, black
}

func assertEnded(t *testing.T, c *testClient, result, reason string) {
	t.Helper()
	msg := c.conn.last(t)
	if msg.Type != TypeEnd {
		t.Fatalf("Expected end message, got %q", msg.Type)
	}
	if msg.Result != result || msg.Reason != reason {
		t.Errorf("Expected %s/%q, got %s/%q", result, reason, msg.Result, msg.Reason)
	}
	closed, code, why := c.conn.closeInfo()
	if !closed || code != CloseNormal || why != ReasonGameOver {
		t.Errorf("Expected close %d %q, got closed=%v %d %q", CloseNormal, ReasonGameOver, closed, code, why)
	}
}
