package engine

import (
	"encoding/json"
	"testing"
)

func TestSide(t *testing.T) {
	if White.Opponent() != Black || Black.Opponent() != White {
		t.Error("Opponent should swap sides")
	}
	if White.String() != "white" || Black.String() != "black" {
		t.Errorf("Unexpected side names %q, %q", White, Black)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		offset   Offset
	}{
		{"N", North, Offset{0, -1}},
		{"S", South, Offset{0, 1}},
		{"E", East, Offset{1, 0}},
		{"W", West, Offset{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDirection(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, d)
			}
			if d.Offset() != tt.offset {
				t.Errorf("Expected offset %v, got %v", tt.offset, d.Offset())
			}
			if d.String() != tt.input {
				t.Errorf("Expected String() %q, got %q", tt.input, d.String())
			}
		})
	}

	for _, bad := range []string{"", "n", "north", "NE", "up"} {
		if _, err := ParseDirection(bad); err == nil {
			t.Errorf("Expected error for direction %q", bad)
		}
	}
}

func TestLocationJSON(t *testing.T) {
	data, err := json.Marshal(Location{3, 7})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[3,7]" {
		t.Errorf("Expected [3,7], got %s", data)
	}

	var loc Location
	if err := json.Unmarshal([]byte("[4, 9]"), &loc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if loc != (Location{4, 9}) {
		t.Errorf("Expected (4, 9), got %v", loc)
	}

	for _, bad := range []string{`[1]`, `[1,2,3]`, `{"x":1}`, `"a"`} {
		if err := json.Unmarshal([]byte(bad), &loc); err == nil {
			t.Errorf("Expected error decoding %s", bad)
		}
	}
}

func TestShapes(t *testing.T) {
	if len(Shapes) != 3 {
		t.Fatalf("Expected 3 shapes, got %d", len(Shapes))
	}
	for i, shape := range Shapes {
		if len(shape) != 4 {
			t.Errorf("Shape %d: expected 4 offsets, got %d", i, len(shape))
		}
	}

	if _, ok := ShapeAt(2); !ok {
		t.Error("Expected shape 2 to exist")
	}
	for _, idx := range []int{-1, 3, 100} {
		if _, ok := ShapeAt(idx); ok {
			t.Errorf("Expected ShapeAt(%d) to fail", idx)
		}
	}
}

func TestTile(t *testing.T) {
	tests := []struct {
		name   string
		tile   Tile
		kind   TileKind
		glyph  rune
		block  bool
		player bool
	}{
		{"clear", ClearTile(), TileClear, '.', false, false},
		{"white block", BlockTile(White), TileBlockWhite, 'B', true, false},
		{"black block", BlockTile(Black), TileBlockBlack, 'b', true, false},
		{"white player", PlayerTile(White), TilePlayerWhite, 'P', false, true},
		{"black player", PlayerTile(Black), TilePlayerBlack, 'p', false, true},
		{"both", PlayerTile(White, Black), TilePlayerBoth, 'Q', false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tile.Kind() != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, tt.tile.Kind())
			}
			if tt.tile.Rune() != tt.glyph {
				t.Errorf("Expected glyph %c, got %c", tt.glyph, tt.tile.Rune())
			}
			if tt.tile.IsBlock() != tt.block {
				t.Errorf("IsBlock() = %v", tt.tile.IsBlock())
			}
			if tt.tile.IsPlayer() != tt.player {
				t.Errorf("IsPlayer() = %v", tt.tile.IsPlayer())
			}
			if tt.tile.String() != tt.name && tt.name != "both" {
				t.Errorf("Expected String() %q, got %q", tt.name, tt.tile.String())
			}
		})
	}
}

func TestTileOccupancy(t *testing.T) {
	tile := ClearTile().With(White).With(Black)
	if tile != PlayerTile(Black, White) {
		t.Errorf("Expected both players, got %v", tile)
	}
	if tile.Without(White) != PlayerTile(Black) {
		t.Errorf("Expected black alone, got %v", tile.Without(White))
	}
	if tile.Without(White).Without(Black) != ClearTile() {
		t.Error("Expected clear after both sides leave")
	}
	if BlockTile(Black).Without(White) != BlockTile(Black) {
		t.Error("Without should not touch blocks")
	}
	if BlockTile(Black).With(White) != PlayerTile(White) {
		t.Error("With should replace a block with the player")
	}
	if BlockTile(White) == BlockTile(Black) {
		t.Error("Blocks of different owners must differ")
	}
}
