package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wricardo/ping-game/game/engine"
)

const tracerName = "github.com/wricardo/ping-game/game/session"

// Status is the lifecycle state of a match.
type Status int

const (
	StatusAwaitingOpponent Status = iota
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingOpponent:
		return "awaiting_opponent"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	}
	return "unknown"
}

// Result records how a match ended.
type Result struct {
	Winner     engine.Side
	Reason     string
	LossReason string
}

// Match is one game between two paired players. All exported methods are
// safe for concurrent use.
type Match struct {
	ID string

	mu         sync.Mutex
	engine     engine.Engine
	players    [2]*Player
	turn       turnState
	status     Status
	result     *Result
	createdAt  time.Time
	lastAction time.Time
	onEnd      func(*Match)
	tracer     trace.Tracer
	debug      bool
}

// NewMatch creates an active match. onEnd, if set, runs once when the match
// ends, while the match lock is held.
func NewMatch(id string, white, black *Player, eng engine.Engine, onEnd func(*Match)) *Match {
	now := time.Now()
	return &Match{
		ID:         id,
		engine:     eng,
		players:    [2]*Player{engine.White: white, engine.Black: black},
		turn:       newTurnState(),
		status:     StatusActive,
		createdAt:  now,
		lastAction: now,
		onEnd:      onEnd,
		tracer:     otel.Tracer(tracerName),
	}
}

// Start sends the start message to both players.
func (m *Match) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusActive {
		return
	}
	for _, side := range []engine.Side{engine.White, engine.Black} {
		m.players[side].send(StartMessage{
			Type:           TypeStart,
			Turn:           m.turn.current.String(),
			TurnNumber:     m.turn.number,
			MovesRemaining: m.turn.movesRemaining,
			YourColor:      side.String(),
			Opponent:       m.players[side.Opponent()].Name(),
			Board:          m.engine.View(side).Board().Snapshot(),
		})
	}
	log.Printf("[MATCH] id=%s started white=%q black=%q", m.ID, m.players[engine.White].Name(), m.players[engine.Black].Name())
}

// Handle applies one inbound message from side.
func (m *Match) Handle(ctx context.Context, side engine.Side, data []byte) {
	_, span := m.tracer.Start(ctx, "match.action", trace.WithAttributes(
		attribute.String("match.id", m.ID),
		attribute.String("match.side", side.String()),
	))
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusActive {
		return
	}

	if side != m.turn.current {
		span.SetStatus(codes.Error, ReasonNotYourTurn)
		m.finish(side.Opponent(), ReasonOpponentDisconnect, ReasonNotYourTurn)
		return
	}

	action, err := ParseAction(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ReasonInvalidData)
		log.Printf("[MATCH] id=%s side=%s rejected: %v", m.ID, side, err)
		m.finish(side.Opponent(), ReasonOpponentDisconnect, ReasonInvalidData)
		return
	}
	span.SetAttributes(attribute.String("match.action", action.Type))

	var ok, saw bool
	switch action.Type {
	case TypeMove:
		ok = m.engine.MovePlayer(side, action.Direction)
	case TypePlace:
		ok = m.engine.PlaceShape(action.Origin, action.Shape, side)
	case TypePing:
		saw = m.engine.Ping(side)
		ok = true
	case TypeShoot:
		if m.engine.Shoot(side, action.Direction) {
			span.SetAttributes(attribute.Bool("match.hit", true))
			m.finish(side, ReasonDirectHit, ReasonDestroyed)
			return
		}
		ok = true
	}
	m.lastAction = time.Now()
	span.SetAttributes(attribute.Bool("match.ok", ok), attribute.Int("match.turn", m.turn.number))
	log.Printf("[MATCH] id=%s side=%s action=%q ok=%v turn=%d moves=%d", m.ID, side, action, ok, m.turn.number, m.turn.movesRemaining)
	if m.debug {
		if s, isStringer := m.engine.(fmt.Stringer); isStringer {
			log.Printf("[MATCH] id=%s boards:\n%s", m.ID, s)
		}
	}

	if !ok {
		m.sendUpdate(side, saw)
		return
	}
	m.turn.consume()
	m.sendUpdate(engine.White, saw)
	m.sendUpdate(engine.Black, saw)
}

// Disconnect ends the match in favor of the side that is still connected.
// It is a no-op once the match has ended.
func (m *Match) Disconnect(side engine.Side) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusActive {
		return
	}
	log.Printf("[MATCH] id=%s side=%s disconnected", m.ID, side)
	winner := side.Opponent()
	m.end(&Result{Winner: winner, Reason: ReasonOpponentDisconnect})
	p := m.players[winner]
	p.send(EndMessage{Type: TypeEnd, Result: ResultWin, Reason: ReasonOpponentDisconnect})
	p.close(CloseNormal, ReasonGameOver)
}

func (m *Match) sendUpdate(side engine.Side, saw bool) {
	m.players[side].send(UpdateMessage{
		Type:            TypeUpdate,
		Turn:            m.turn.current.String(),
		TurnNumber:      m.turn.number,
		MovesRemaining:  m.turn.movesRemaining,
		PingSawOpponent: saw,
		Board:           m.engine.View(side).Board().Snapshot(),
	})
}

// finish ends the match, tells both sides and closes both connections.
func (m *Match) finish(winner engine.Side, winReason, lossReason string) {
	m.end(&Result{Winner: winner, Reason: winReason, LossReason: lossReason})

	loser := winner.Opponent()
	m.players[winner].send(EndMessage{Type: TypeEnd, Result: ResultWin, Reason: winReason})
	m.players[winner].close(CloseNormal, ReasonGameOver)
	m.players[loser].send(EndMessage{Type: TypeEnd, Result: ResultLoss, Reason: lossReason})
	m.players[loser].close(CloseNormal, ReasonGameOver)
}

func (m *Match) end(result *Result) {
	m.status = StatusEnded
	m.result = result
	m.lastAction = time.Now()
	log.Printf("[MATCH] id=%s ended winner=%s reason=%q", m.ID, result.Winner, result.Reason)
	if m.onEnd != nil {
		m.onEnd(m)
	}
}

// Status returns the current lifecycle state.
func (m *Match) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Result returns the outcome, or nil while the match is running.
func (m *Match) Result() *Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return nil
	}
	r := *m.result
	return &r
}

// MatchInfo is the public metadata of a match. It never carries a board.
type MatchInfo struct {
	ID             string    `json:"id"`
	White          string    `json:"white"`
	Black          string    `json:"black"`
	Status         string    `json:"status"`
	Turn           string    `json:"turn"`
	TurnNumber     int       `json:"turn_number"`
	MovesRemaining int       `json:"moves_remaining"`
	Winner         string    `json:"winner,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LastActionAt   time.Time `json:"last_action_at"`
}

// Snapshot returns the public metadata of the match.
func (m *Match) Snapshot() MatchInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() MatchInfo {
	info := MatchInfo{
		ID:             m.ID,
		White:          m.players[engine.White].Name(),
		Black:          m.players[engine.Black].Name(),
		Status:         m.status.String(),
		Turn:           m.turn.current.String(),
		TurnNumber:     m.turn.number,
		MovesRemaining: m.turn.movesRemaining,
		CreatedAt:      m.createdAt,
		LastActionAt:   m.lastAction,
	}
	if m.result != nil {
		info.Winner = m.result.Winner.String()
		info.Reason = m.result.Reason
	}
	return info
}
