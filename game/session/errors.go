package session

import (
	"errors"
	"fmt"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrAlreadyWaiting = errors.New("player already waiting")
	ErrConnClosed     = errors.New("connection closed")
)

// Close codes passed to Conn.Close.
const (
	CloseNormal   = 1000
	CloseProtocol = 1002
)

// Reasons sent to clients in end messages and close frames.
const (
	ReasonInvalidData        = "invalid data"
	ReasonInvalidType        = "invalid type"
	ReasonExpectedName       = "expected name"
	ReasonAlreadyWaiting     = "already waiting"
	ReasonNotYourTurn        = "not your turn"
	ReasonOpponentDisconnect = "opponent disconnect"
	ReasonDirectHit          = "direct hit"
	ReasonDestroyed          = "destroyed"
	ReasonGameOver           = "game over"
)

// ProtocolError is a malformed or unexpected inbound message. It is always
// fatal: before a match it closes the connection, during a match it hands
// the win to the opponent.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return "protocol error: " + e.Reason
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protocolError(reason string, err error) *ProtocolError {
	return &ProtocolError{Reason: reason, Err: err}
}
