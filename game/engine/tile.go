package engine

// occupants is the set of sides standing on a cell.
type occupants uint8

func occupantOf(s Side) occupants {
	return 1 << uint(s)
}

// Tile is the content of a single cell: clear, a block owned by one side,
// or one or both players. The zero value is a clear tile.
//
// Tiles are comparable with ==.
type Tile struct {
	block bool
	owner Side
	occ   occupants
}

// TileKind enumerates every renderable tile value.
type TileKind int

const (
	TileClear TileKind = iota
	TileBlockWhite
	TileBlockBlack
	TilePlayerWhite
	TilePlayerBlack
	TilePlayerBoth
)

// ClearTile returns an empty tile.
func ClearTile() Tile {
	return Tile{}
}

// BlockTile returns a block owned by s.
func BlockTile(s Side) Tile {
	return Tile{block: true, owner: s}
}

// PlayerTile returns a tile occupied by the given sides.
func PlayerTile(sides ...Side) Tile {
	var t Tile
	for _, s := range sides {
		t.occ |= occupantOf(s)
	}
	return t
}

// IsClear reports whether the tile holds neither a block nor a player.
func (t Tile) IsClear() bool {
	return !t.block && t.occ == 0
}

// IsBlock reports whether the tile holds a block of either side.
func (t Tile) IsBlock() bool {
	return t.block
}

// IsBlockOf reports whether the tile holds a block owned by s.
func (t Tile) IsBlockOf(s Side) bool {
	return t.block && t.owner == s
}

// IsPlayer reports whether at least one side stands on the tile.
func (t Tile) IsPlayer() bool {
	return t.occ != 0
}

// Has reports whether s stands on the tile.
func (t Tile) Has(s Side) bool {
	return t.occ&occupantOf(s) != 0
}

// Both reports whether both sides stand on the tile.
func (t Tile) Both() bool {
	return t.Has(White) && t.Has(Black)
}

// With returns the tile with s added to its occupants. Any block is dropped.
func (t Tile) With(s Side) Tile {
	return Tile{occ: t.occ | occupantOf(s)}
}

// Without returns the tile with s removed from its occupants.
func (t Tile) Without(s Side) Tile {
	if t.block {
		return t
	}
	return Tile{occ: t.occ &^ occupantOf(s)}
}

// Kind classifies the tile.
func (t Tile) Kind() TileKind {
	switch {
	case t.block && t.owner == White:
		return TileBlockWhite
	case t.block:
		return TileBlockBlack
	case t.Both():
		return TilePlayerBoth
	case t.Has(White):
		return TilePlayerWhite
	case t.Has(Black):
		return TilePlayerBlack
	}
	return TileClear
}

// Rune returns the debug glyph used by Board.String.
func (t Tile) Rune() rune {
	switch t.Kind() {
	case TileBlockWhite:
		return 'B'
	case TileBlockBlack:
		return 'b'
	case TilePlayerWhite:
		return 'P'
	case TilePlayerBlack:
		return 'p'
	case TilePlayerBoth:
		return 'Q'
	}
	return '.'
}

func (t Tile) String() string {
	switch t.Kind() {
	case TileBlockWhite:
		return "white block"
	case TileBlockBlack:
		return "black block"
	case TilePlayerWhite:
		return "white player"
	case TilePlayerBlack:
		return "black player"
	case TilePlayerBoth:
		return "both players"
	}
	return "clear"
}
