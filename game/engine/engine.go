package engine

import "strings"

// Engine provides the main interface for game operations
type Engine interface {
	Ping(s Side) bool
	PlaceShape(origin Location, shape Shape, s Side) bool
	MovePlayer(s Side, d Direction) bool
	Shoot(s Side, d Direction) bool

	View(s Side) *PlayerView
}

// GameEngine implements the Engine interface. It owns the master board and
// one PlayerView per side.
type GameEngine struct {
	board *Board
	views [2]*PlayerView
}

// NewEngine creates an engine with both players at their start locations.
// Each view starts as an independent copy of the master board.
func NewEngine() *GameEngine {
	board := NewBoard()
	return &GameEngine{
		board: board,
		views: [2]*PlayerView{
			White: newPlayerView(White, board),
			Black: newPlayerView(Black, board),
		},
	}
}

// Board returns the master board. Callers must treat it as read-only.
func (e *GameEngine) Board() *Board {
	return e.board
}

// View returns the private view of s.
func (e *GameEngine) View(s Side) *PlayerView {
	return e.views[s]
}

// Ping tests the line between both players. When it is clear, each side
// learns where the other is; otherwise s forgets its last sighting of the
// opponent. Deceptive cells that s can now see are resolved either way.
func (e *GameEngine) Ping(s Side) bool {
	opp := s.Opponent()
	me, them := e.views[s], e.views[opp]
	loc := e.board.PlayerLocation(s)
	oppLoc := e.board.PlayerLocation(opp)

	saw := e.board.CastLine(oppLoc, loc) == loc
	if saw {
		me.reveal(opp, oppLoc, e.board.Tile(oppLoc))
		them.reveal(s, loc, e.board.Tile(loc))
	} else {
		me.forget(opp)
	}

	for _, cell := range me.Deceptive() {
		if e.board.CastLine(cell, loc) == loc {
			me.resolve(cell, e.board.Tile(cell))
		}
	}

	return saw
}

// PlaceShape stamps shape at origin for s. Cells off the board are skipped.
// A block stamped over the hidden opponent only appears in the placer's
// view. Returns true if at least one cell of the shape is on the board.
func (e *GameEngine) PlaceShape(origin Location, shape Shape, s Side) bool {
	opp := s.Opponent()
	me, them := e.views[s], e.views[opp]

	placed := false
	for _, off := range shape {
		loc := origin.Add(off)
		if !e.board.Valid(loc) {
			continue
		}
		placed = true

		truth := e.board.Tile(loc)
		switch {
		case truth.IsBlockOf(s), truth.Has(s):
			continue
		case truth.Has(opp):
			if me.board.Tile(loc) == truth {
				// The placer already knows the opponent is here.
				continue
			}
			me.board.SetTile(loc, me.BlockTile())
			me.markDeceptive(loc, truth)
		default:
			e.board.SetTile(loc, me.BlockTile())
			me.board.SetTile(loc, me.BlockTile())
			them.markDeceptive(loc, e.board.Tile(loc))
		}
	}

	return placed
}

// MovePlayer steps s one cell in direction d. A move into an obstruction
// fails, but the mover's view is corrected to show what stopped it.
func (e *GameEngine) MovePlayer(s Side, d Direction) bool {
	me := e.views[s]
	cur := e.board.PlayerLocation(s)
	next := cur.Add(d.Offset())

	if !e.board.Valid(next) {
		return false
	}

	truth := e.board.Tile(next)
	seen := me.board.Tile(next)
	switch {
	case seen.IsBlock() && !truth.IsBlock():
		me.resolve(next, truth)
		return false
	case truth.IsBlockOf(s.Opponent()):
		me.resolve(next, truth)
		return false
	case truth.IsBlockOf(s):
		return false
	}

	e.board.SetPlayerLocation(s, next, e.board.Tile(cur).Without(s))
	me.board.SetPlayerLocation(s, next, me.board.Tile(cur).Without(s))
	return true
}

// Shoot fires ShootRadius cells from s in direction d. Fake blocks on the
// path vanish from the shooter's view. The first real block hit is
// destroyed. Returns true only for a direct hit on a player.
func (e *GameEngine) Shoot(s Side, d Direction) bool {
	me, them := e.views[s], e.views[s.Opponent()]
	from := e.board.PlayerLocation(s)

	end, path := e.board.TraceLine(from, from.Add(d.Offset().Scale(ShootRadius)))

	for _, loc := range path {
		if !e.board.Valid(loc) {
			continue
		}
		if me.board.IsBlock(loc) && !e.board.IsBlock(loc) {
			me.resolve(loc, e.board.Tile(loc))
		}
	}

	if !e.board.Valid(end) {
		return false
	}

	truth := e.board.Tile(end)
	switch {
	case truth.IsPlayer():
		return true
	case truth.IsBlock():
		e.board.SetTile(end, ClearTile())
		me.resolve(end, ClearTile())
		them.markDeceptive(end, ClearTile())
	}
	return false
}

// String dumps the master board and both views.
func (e *GameEngine) String() string {
	var sb strings.Builder
	sb.WriteString("BOARD:\n")
	sb.WriteString(e.board.String())
	sb.WriteString("\nWHITE BOARD:\n")
	sb.WriteString(e.views[White].board.String())
	sb.WriteString("\nBLACK BOARD:\n")
	sb.WriteString(e.views[Black].board.String())
	return sb.String()
}
