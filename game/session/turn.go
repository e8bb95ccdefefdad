package session

import "github.com/wricardo/ping-game/game/engine"

// turnState tracks whose turn it is and how much of the budget is left.
type turnState struct {
	current        engine.Side
	number         int
	movesRemaining int
}

func newTurnState() turnState {
	return turnState{current: engine.White, movesRemaining: engine.MovesPerTurn}
}

func (t turnState) next() engine.Side {
	return t.current.Opponent()
}

// consume spends one unit of the budget and reports whether the turn
// passed to the other side.
func (t *turnState) consume() bool {
	t.movesRemaining--
	if t.movesRemaining > 0 {
		return false
	}
	t.number++
	t.movesRemaining = engine.MovesPerTurn
	t.current = t.current.Opponent()
	return true
}
