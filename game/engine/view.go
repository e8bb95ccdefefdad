package engine

import "sort"

// PlayerView is one side's private knowledge of the board: an independent
// copy of the master board plus the cells where that copy is known to
// disagree with the master board.
type PlayerView struct {
	side      Side
	board     *Board
	deceptive map[Location]struct{}
}

func newPlayerView(s Side, master *Board) *PlayerView {
	return &PlayerView{
		side:      s,
		board:     master.Clone(),
		deceptive: make(map[Location]struct{}),
	}
}

// Side returns the owner of the view.
func (v *PlayerView) Side() Side {
	return v.side
}

// Board returns the view's private board.
func (v *PlayerView) Board() *Board {
	return v.board
}

// PlayerTile is the tile marking the owner's presence.
func (v *PlayerView) PlayerTile() Tile {
	return PlayerTile(v.side)
}

// BlockTile is the tile of a block owned by the owner.
func (v *PlayerView) BlockTile() Tile {
	return BlockTile(v.side)
}

// IsDeceptive reports whether loc is tracked as deceptive.
func (v *PlayerView) IsDeceptive(loc Location) bool {
	_, ok := v.deceptive[loc]
	return ok
}

// Deceptive returns the tracked cells in column then row order.
func (v *PlayerView) Deceptive() []Location {
	locs := make([]Location, 0, len(v.deceptive))
	for loc := range v.deceptive {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].X != locs[j].X {
			return locs[i].X < locs[j].X
		}
		return locs[i].Y < locs[j].Y
	})
	return locs
}

// markDeceptive tracks loc while the view disagrees with truth there.
func (v *PlayerView) markDeceptive(loc Location, truth Tile) {
	if v.board.Tile(loc) != truth {
		v.deceptive[loc] = struct{}{}
	} else {
		delete(v.deceptive, loc)
	}
}

// resolve writes truth into the view and stops tracking loc. An opponent
// found at loc replaces the view's older sighting of it.
func (v *PlayerView) resolve(loc Location, truth Tile) {
	if opp := v.side.Opponent(); truth.Has(opp) {
		v.reveal(opp, loc, truth)
	}
	v.board.SetTile(loc, truth)
	delete(v.deceptive, loc)
}

// reveal shows s at loc, dropping any older sighting of s.
func (v *PlayerView) reveal(s Side, loc Location, truth Tile) {
	old := v.board.PlayerLocation(s)
	v.board.SetPlayerLocation(s, loc, v.board.Tile(old).Without(s))
	if v.board.Tile(loc) == truth {
		delete(v.deceptive, loc)
	}
}

// forget removes the last sighting of s from the view.
func (v *PlayerView) forget(s Side) {
	if loc, ok := v.board.Locate(s); ok {
		v.board.SetTile(loc, v.board.Tile(loc).Without(s))
	}
}
