package engine

import (
	"fmt"
	"strings"
)

// Board is a BoardWidth x BoardWidth grid of tiles plus the cached location
// of each side. Tiles are indexed [x][y].
//
// Board has value semantics: copying a Board copies every tile.
type Board struct {
	tiles   [BoardWidth][BoardWidth]Tile
	players [2]Location
}

// BoardSnapshot is the serialized form of a board sent to clients.
// A player key is present only when that side is visible on the board.
type BoardSnapshot struct {
	WhitePlayer *Location  `json:"white_player,omitempty"`
	BlackPlayer *Location  `json:"black_player,omitempty"`
	WhiteBlock  []Location `json:"white_block"`
	BlackBlock  []Location `json:"black_block"`
}

// StartLocation returns where a side begins the match: black on the top
// row, white on the bottom row, both in the middle column.
func StartLocation(s Side) Location {
	middle := BoardWidth / 2
	if s == White {
		return Location{X: middle, Y: BoardWidth - 1}
	}
	return Location{X: middle, Y: 0}
}

// NewBoard creates a board with both players at their start locations.
func NewBoard() *Board {
	b := &Board{}
	for _, s := range []Side{White, Black} {
		loc := StartLocation(s)
		b.players[s] = loc
		b.SetTile(loc, PlayerTile(s))
	}
	return b
}

// Clone returns an independent deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Valid reports whether loc lies on the board.
func (b *Board) Valid(loc Location) bool {
	return loc.X >= 0 && loc.X < BoardWidth && loc.Y >= 0 && loc.Y < BoardWidth
}

// Tile returns the tile at loc. Off-board locations read as clear.
func (b *Board) Tile(loc Location) Tile {
	if !b.Valid(loc) {
		return ClearTile()
	}
	return b.tiles[loc.X][loc.Y]
}

// SetTile overwrites the tile at loc. Off-board writes are ignored.
func (b *Board) SetTile(loc Location, t Tile) {
	if !b.Valid(loc) {
		return
	}
	b.tiles[loc.X][loc.Y] = t
}

// IsBlock reports whether loc holds a block.
func (b *Board) IsBlock(loc Location) bool {
	return b.Tile(loc).IsBlock()
}

// IsPlayer reports whether any side stands on loc.
func (b *Board) IsPlayer(loc Location) bool {
	return b.Tile(loc).IsPlayer()
}

// PlayerLocation returns the cached location of s.
func (b *Board) PlayerLocation(s Side) Location {
	return b.players[s]
}

// Locate returns the cached location of s only if the tile there still
// shows s. On a private view the cache can outlive the knowledge.
func (b *Board) Locate(s Side) (Location, bool) {
	loc := b.players[s]
	return loc, b.Tile(loc).Has(s)
}

// SetPlayerLocation moves s to newLoc. The old cell receives vacated, which
// the caller computes because it depends on who else stands there. The new
// cell keeps any side already shown on it.
func (b *Board) SetPlayerLocation(s Side, newLoc Location, vacated Tile) {
	b.SetTile(b.players[s], vacated)
	b.SetTile(newLoc, b.Tile(newLoc).With(s))
	b.players[s] = newLoc
}

// Snapshot serializes the board for a client.
func (b *Board) Snapshot() BoardSnapshot {
	snap := BoardSnapshot{
		WhiteBlock: []Location{},
		BlackBlock: []Location{},
	}
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardWidth; y++ {
			loc := Location{X: x, Y: y}
			t := b.tiles[x][y]
			switch {
			case t.IsBlockOf(White):
				snap.WhiteBlock = append(snap.WhiteBlock, loc)
			case t.IsBlockOf(Black):
				snap.BlackBlock = append(snap.BlackBlock, loc)
			}
			if t.Has(White) {
				l := loc
				snap.WhitePlayer = &l
			}
			if t.Has(Black) {
				l := loc
				snap.BlackPlayer = &l
			}
		}
	}
	return snap
}

// String renders the board with lettered columns and numbered rows.
func (b *Board) String() string {
	var sb strings.Builder
	width := len(fmt.Sprint(BoardWidth))

	sb.WriteString(strings.Repeat(" ", width+1))
	for x := 0; x < BoardWidth; x++ {
		sb.WriteRune(rune('A' + x))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for y := 0; y < BoardWidth; y++ {
		fmt.Fprintf(&sb, "%*d ", width, y+1)
		for x := 0; x < BoardWidth; x++ {
			sb.WriteRune(b.tiles[x][y].Rune())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
