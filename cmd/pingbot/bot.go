package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gorilla/websocket"
)

// ResultAbandoned is reported when a bot gives up after its action budget.
const ResultAbandoned = "abandoned"

var directions = []string{"N", "S", "E", "W"}

// serverMessage is the union of every message the server sends.
type serverMessage struct {
	Type         string    `json:"type"`
	Turn         string    `json:"turn"`
	TurnNumber   int       `json:"turn_number"`
	YourColor    string    `json:"your_color"`
	Opponent     string    `json:"opponent"`
	Result       string    `json:"result"`
	Reason       string    `json:"reason"`
	BoardWidth   int       `json:"board_width"`
	Shapes       [][][]int `json:"shapes"`
	PingSawEnemy bool      `json:"ping_saw_opponent"`
}

// Outcome is how a single game ended for a bot.
type Outcome struct {
	Result  string
	Reason  string
	Actions int
	Turns   int
}

// Bot joins a server and plays random actions whenever it is on turn.
type Bot struct {
	Name       string
	URL        string
	Delay      time.Duration
	MaxActions int

	rng        *rand.Rand
	color      string
	boardWidth int
	shapes     int
}

// NewBot creates a bot with its own random source.
func NewBot(name, url string, seed int64) *Bot {
	return &Bot{
		Name:       name,
		URL:        url,
		rng:        rand.New(rand.NewSource(seed)),
		boardWidth: 13,
		shapes:     3,
	}
}

// Play connects, joins and plays until the game ends, the action budget is
// spent or ctx is cancelled.
func (b *Bot) Play(ctx context.Context) (Outcome, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.URL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("dial %s: %w", b.URL, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	if err := b.send(conn, map[string]interface{}{"type": "join", "name": b.Name}); err != nil {
		return Outcome{}, err
	}

	var outcome Outcome
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return outcome, ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return outcome, fmt.Errorf("closed before end: %d %s", closeErr.Code, closeErr.Text)
			}
			return outcome, fmt.Errorf("read: %w", err)
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return outcome, fmt.Errorf("decode %s: %w", data, err)
		}

		switch msg.Type {
		case "joined":
			if msg.BoardWidth > 0 {
				b.boardWidth = msg.BoardWidth
			}
			if len(msg.Shapes) > 0 {
				b.shapes = len(msg.Shapes)
			}
			log.Printf("[BOT %s] joined, waiting for an opponent", b.Name)
			continue
		case "start":
			b.color = msg.YourColor
			log.Printf("[BOT %s] playing %s against %s", b.Name, b.color, msg.Opponent)
		case "update":
		case "end":
			outcome.Result = msg.Result
			outcome.Reason = msg.Reason
			log.Printf("[BOT %s] %s: %s after %d actions", b.Name, msg.Result, msg.Reason, outcome.Actions)
			return outcome, nil
		default:
			return outcome, fmt.Errorf("unexpected message type %q", msg.Type)
		}

		outcome.Turns = msg.TurnNumber
		if msg.Turn != b.color {
			continue
		}
		if b.MaxActions > 0 && outcome.Actions >= b.MaxActions {
			outcome.Result = ResultAbandoned
			log.Printf("[BOT %s] action budget spent, leaving", b.Name)
			return outcome, nil
		}
		if b.Delay > 0 {
			select {
			case <-time.After(b.Delay):
			case <-ctx.Done():
				return outcome, ctx.Err()
			}
		}
		if err := b.send(conn, b.nextAction()); err != nil {
			return outcome, err
		}
		outcome.Actions++
	}
}

// nextAction picks a random action that is well formed but not necessarily
// legal on the board.
func (b *Bot) nextAction() map[string]interface{} {
	switch n := b.rng.Intn(100); {
	case n < 50:
		return map[string]interface{}{"type": "move", "direction": directions[b.rng.Intn(len(directions))]}
	case n < 70:
		return map[string]interface{}{"type": "shoot", "direction": directions[b.rng.Intn(len(directions))]}
	case n < 85:
		return map[string]interface{}{"type": "ping"}
	default:
		return map[string]interface{}{
			"type":        "place",
			"shape_index": b.rng.Intn(b.shapes),
			"origin":      []int{b.rng.Intn(b.boardWidth), b.rng.Intn(b.boardWidth)},
		}
	}
}

func (b *Bot) send(conn *websocket.Conn, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
