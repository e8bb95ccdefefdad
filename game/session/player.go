package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/wricardo/ping-game/game/engine"
)

// Conn is the outbound half of a client connection, implemented by the
// transport. Both methods must be safe for concurrent use.
type Conn interface {
	Send(data []byte) error
	Close(code int, reason string) error
}

type playerState int

const (
	stateJoining playerState = iota
	stateWaiting
	statePlaying
	stateClosed
)

// Player handles the lifecycle of one connection: join, wait, play.
type Player struct {
	conn     Conn
	registry *Registry

	mu    sync.Mutex
	state playerState
	name  string
	match *Match
	side  engine.Side
}

// NewPlayer creates the handler for a freshly accepted connection.
func NewPlayer(conn Conn, registry *Registry) *Player {
	return &Player{conn: conn, registry: registry}
}

// Name returns the name declared at join, or "" before that.
func (p *Player) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Match returns the match the player is in and its side, if paired.
func (p *Player) Match() (*Match, engine.Side, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.match, p.side, p.match != nil
}

// OnOpen is called by the transport once the connection is established.
func (p *Player) OnOpen() {
	log.Printf("[PLAYER] connection opened")
}

// OnMessage is called by the transport for every inbound frame. Binary
// frames are never valid.
func (p *Player) OnMessage(ctx context.Context, data []byte, isText bool) {
	p.mu.Lock()
	state, m, side := p.state, p.match, p.side
	p.mu.Unlock()

	if !isText {
		data = nil
	}

	switch state {
	case stateJoining:
		p.join(data)
	case stateWaiting:
		p.registry.Leave(p)
		p.reject(ReasonAlreadyWaiting)
	case statePlaying:
		m.Handle(ctx, side, data)
	}
}

// OnClose is called by the transport once the connection is gone. A waiting
// player leaves the queue; a playing one forfeits.
func (p *Player) OnClose() {
	p.registry.Leave(p)

	p.mu.Lock()
	m, side := p.match, p.side
	p.state = stateClosed
	p.mu.Unlock()

	if m != nil {
		m.Disconnect(side)
	}
}

func (p *Player) join(data []byte) {
	name, err := ParseJoin(data)
	if err != nil {
		log.Printf("[PLAYER] join rejected: %v", err)
		p.reject(reasonOf(err))
		return
	}

	p.mu.Lock()
	p.name = name
	p.state = stateWaiting
	p.mu.Unlock()

	p.send(newJoinedMessage())

	m, err := p.registry.Join(p)
	if err != nil {
		log.Printf("[PLAYER] %q join failed: %v", name, err)
		p.reject(ReasonAlreadyWaiting)
		return
	}
	if m != nil {
		m.Start()
	}
}

// attach moves a waiting player into a match.
func (p *Player) attach(m *Match, side engine.Side) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.match = m
	p.side = side
	p.state = statePlaying
}

func (p *Player) reject(reason string) {
	p.close(CloseProtocol, reason)
}

func (p *Player) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[PLAYER] failed to encode message: %v", err)
		return
	}
	if err := p.conn.Send(data); err != nil {
		log.Printf("[PLAYER] %q send failed: %v", p.Name(), err)
	}
}

func (p *Player) close(code int, reason string) {
	if err := p.conn.Close(code, reason); err != nil {
		log.Printf("[PLAYER] %q close failed: %v", p.Name(), err)
	}
}

func reasonOf(err error) string {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Reason
	}
	return ReasonInvalidData
}
