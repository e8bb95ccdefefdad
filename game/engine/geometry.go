package engine

// opaque reports whether a cast line stops at loc: off the board, a block,
// or a player.
func (b *Board) opaque(loc Location) bool {
	return !b.Valid(loc) || b.IsBlock(loc) || b.IsPlayer(loc)
}

// CastLine walks a Bresenham line from origin toward target and returns the
// first opaque cell after origin, or target when nothing is in the way.
// An origin shared by both players returns immediately.
func (b *Board) CastLine(origin, target Location) Location {
	end, _ := b.cast(origin, target, false)
	return end
}

// TraceLine is CastLine that also returns every visited cell, origin and
// end included, in visiting order.
func (b *Board) TraceLine(origin, target Location) (Location, []Location) {
	return b.cast(origin, target, true)
}

func (b *Board) cast(origin, target Location, record bool) (Location, []Location) {
	dx := target.X - origin.X
	dy := target.Y - origin.Y

	xDir := 1
	if dx < 0 {
		xDir = -1
		dx = -dx
	}
	yDir := 1
	if dy < 0 {
		yDir = -1
		dy = -dy
	}

	var path []Location
	if record {
		path = append(path, origin)
	}

	// Overlap grants mutual visibility. Only the origin is checked.
	if b.Tile(origin).Both() {
		return origin, path
	}

	// Step along the dominant axis; the error term decides when to step
	// along the minor one.
	major, minor := dx, dy
	if dx <= dy {
		major, minor = dy, dx
	}
	errTerm := 2*minor - major

	cur := origin
	for n := major; n > 0; n-- {
		if errTerm >= 0 {
			if dx > dy {
				cur.Y += yDir
			} else {
				cur.X += xDir
			}
			errTerm += 2*minor - 2*major
		} else {
			errTerm += 2 * minor
		}
		if dx > dy {
			cur.X += xDir
		} else {
			cur.Y += yDir
		}

		if record {
			path = append(path, cur)
		}
		if b.opaque(cur) {
			return cur, path
		}
	}

	return cur, path
}
