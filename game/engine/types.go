package engine

import (
	"encoding/json"
	"fmt"
)

// Fixed game parameters. None of these are configurable at runtime.
const (
	BoardWidth   = 13
	MovesPerTurn = 2
	ShootRadius  = 3
)

// Side identifies one of the two players.
type Side int

const (
	White Side = iota
	Black
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// String returns the wire name of the side ("white" or "black").
func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Location represents x,y board coordinates. X is the column, Y the row.
type Location struct {
	X int
	Y int
}

// Offset is a displacement between two locations.
type Offset = Location

// Add returns l displaced by o.
func (l Location) Add(o Offset) Location {
	return Location{X: l.X + o.X, Y: l.Y + o.Y}
}

// Scale multiplies both components by n.
func (l Location) Scale(n int) Location {
	return Location{X: l.X * n, Y: l.Y * n}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// MarshalJSON encodes a location as a two element array [x, y].
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{l.X, l.Y})
}

// UnmarshalJSON decodes a location from a two element array [x, y].
func (l *Location) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("location: expected 2 coordinates, got %d", len(pair))
	}
	l.X, l.Y = pair[0], pair[1]
	return nil
}

// Direction is one of the four compass directions.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

var directionOffsets = [...]Offset{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

var directionNames = [...]string{
	North: "N",
	South: "S",
	East:  "E",
	West:  "W",
}

// Offset returns the unit displacement for the direction.
func (d Direction) Offset() Offset {
	return directionOffsets[d]
}

func (d Direction) String() string {
	if d < North || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a wire direction ("N", "S", "E", "W").
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

// Directions lists all four directions in wire order.
func Directions() []Direction {
	return []Direction{North, South, East, West}
}

// Shape is an ordered set of offsets stamped relative to an origin.
type Shape []Offset

// Shapes available to both sides, indexed by the place action's shape_index.
//
//	      (1)
//	       1   (2)
//	(0)    X   2X
//	0XXX   X   XX
//	       X
var Shapes = []Shape{
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}},
}

// ShapeAt returns the shape for an index, or false when out of range.
func ShapeAt(index int) (Shape, bool) {
	if index < 0 || index >= len(Shapes) {
		return nil, false
	}
	return Shapes[index], true
}
