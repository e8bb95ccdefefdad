package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wricardo/ping-game/game/engine"
)

// Inbound message types.
const (
	TypeJoin  = "join"
	TypeMove  = "move"
	TypeShoot = "shoot"
	TypePlace = "place"
	TypePing  = "ping"
)

// Outbound message types.
const (
	TypeJoined = "joined"
	TypeStart  = "start"
	TypeUpdate = "update"
	TypeEnd    = "end"
)

// Results carried by an end message.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// inbound is the union of every field a client may send. The type is kept
// raw so that a non-string type can be told apart from malformed JSON.
type inbound struct {
	RawType    json.RawMessage  `json:"type"`
	Name       *string          `json:"name"`
	Direction  *string          `json:"direction"`
	ShapeIndex *int             `json:"shape_index"`
	Origin     *engine.Location `json:"origin"`

	Type string `json:"-"`
}

func decode(data []byte) (inbound, error) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, protocolError(ReasonInvalidData, err)
	}
	if len(msg.RawType) == 0 || string(msg.RawType) == "null" {
		return msg, protocolError(ReasonInvalidData, fmt.Errorf("missing type"))
	}
	if err := json.Unmarshal(msg.RawType, &msg.Type); err != nil {
		return msg, protocolError(ReasonInvalidType, fmt.Errorf("type %s is not a string", msg.RawType))
	}
	if msg.Type == "" {
		return msg, protocolError(ReasonInvalidData, fmt.Errorf("missing type"))
	}
	return msg, nil
}

// ParseJoin validates the first message of a connection and returns the
// declared name.
func ParseJoin(data []byte) (string, error) {
	msg, err := decode(data)
	if err != nil {
		return "", err
	}
	if msg.Type != TypeJoin {
		return "", protocolError(ReasonInvalidType, fmt.Errorf("got %q before join", msg.Type))
	}
	if msg.Name == nil {
		return "", protocolError(ReasonExpectedName, nil)
	}
	return *msg.Name, nil
}

// Action is a validated in-match request.
type Action struct {
	Type       string
	Direction  engine.Direction
	ShapeIndex int
	Shape      engine.Shape
	Origin     engine.Location
}

func (a Action) String() string {
	switch a.Type {
	case TypeMove, TypeShoot:
		return a.Type + " " + a.Direction.String()
	case TypePlace:
		return fmt.Sprintf("place %d at %s", a.ShapeIndex, a.Origin)
	}
	return a.Type
}

// ParseAction validates an in-match message. Every failure is a
// ProtocolError with reason "invalid data".
func ParseAction(data []byte) (Action, error) {
	msg, err := decode(data)
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) && perr.Reason != ReasonInvalidData {
			return Action{}, protocolError(ReasonInvalidData, perr.Err)
		}
		return Action{}, err
	}
	action := Action{Type: msg.Type}
	switch msg.Type {
	case TypeMove, TypeShoot:
		if msg.Direction == nil {
			return Action{}, protocolError(ReasonInvalidData, fmt.Errorf("%s without direction", msg.Type))
		}
		d, err := engine.ParseDirection(*msg.Direction)
		if err != nil {
			return Action{}, protocolError(ReasonInvalidData, err)
		}
		action.Direction = d
	case TypePlace:
		if msg.ShapeIndex == nil || msg.Origin == nil {
			return Action{}, protocolError(ReasonInvalidData, fmt.Errorf("place needs shape_index and origin"))
		}
		shape, ok := engine.ShapeAt(*msg.ShapeIndex)
		if !ok {
			return Action{}, protocolError(ReasonInvalidData, fmt.Errorf("shape index %d out of range", *msg.ShapeIndex))
		}
		action.ShapeIndex = *msg.ShapeIndex
		action.Shape = shape
		action.Origin = *msg.Origin
	case TypePing:
	default:
		return Action{}, protocolError(ReasonInvalidData, fmt.Errorf("unknown action %q", msg.Type))
	}
	return action, nil
}

// JoinedMessage acknowledges a join and carries the fixed game parameters.
type JoinedMessage struct {
	Type         string         `json:"type"`
	BoardWidth   int            `json:"board_width"`
	MovesPerTurn int            `json:"moves_per_turn"`
	Shapes       []engine.Shape `json:"shapes"`
}

func newJoinedMessage() JoinedMessage {
	return JoinedMessage{
		Type:         TypeJoined,
		BoardWidth:   engine.BoardWidth,
		MovesPerTurn: engine.MovesPerTurn,
		Shapes:       engine.Shapes,
	}
}

// StartMessage is sent to both sides once paired.
type StartMessage struct {
	Type           string               `json:"type"`
	Turn           string               `json:"turn"`
	TurnNumber     int                  `json:"turn_number"`
	MovesRemaining int                  `json:"moves_remaining"`
	YourColor      string               `json:"your_color"`
	Opponent       string               `json:"opponent"`
	Board          engine.BoardSnapshot `json:"board"`
}

// UpdateMessage is sent after every processed action.
type UpdateMessage struct {
	Type            string               `json:"type"`
	Turn            string               `json:"turn"`
	TurnNumber      int                  `json:"turn_number"`
	MovesRemaining  int                  `json:"moves_remaining"`
	PingSawOpponent bool                 `json:"ping_saw_opponent"`
	Board           engine.BoardSnapshot `json:"board"`
}

// EndMessage is the last message a participant receives.
type EndMessage struct {
	Type   string `json:"type"`
	Result string `json:"result"`
	Reason string `json:"reason"`
}
