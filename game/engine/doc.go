// Package engine provides the core rules of the ping board game.
//
// The engine package implements:
//   - Deterministic grid line casting for visibility and ranged attacks
//   - The authoritative master board with cached player locations
//   - One private, possibly stale or deceived, view of the board per side
//   - Rule validation for move, shoot, place and ping actions
//
// Core Types:
//
// Board is a fixed 13x13 grid of Tile values. A Tile holds either a block
// owned by one side or the set of sides currently standing on the cell.
// PlayerView wraps an independent copy of a Board together with the set of
// cells the owning side is known to be wrong about. GameEngine owns the
// master Board plus both views and applies actions to them.
//
// Usage:
//
//	eng := engine.NewEngine()
//
//	if eng.MovePlayer(engine.White, engine.North) {
//		// white advanced one cell
//	}
//	saw := eng.Ping(engine.Black)
//	hit := eng.Shoot(engine.White, engine.North)
//
//	snapshot := eng.View(engine.White).Board().Snapshot()
//
// Game Rules:
//
// Each side only learns about the board through its own actions. Pinging
// reveals both sides to each other when there is a clear line between them.
// Placing a shape stamps blocks onto the board; a block stamped over the
// hidden opponent only exists in the placer's own view. Moving into an
// unknown obstruction fails but reveals it. A shot travels up to three
// cells, dissolves fake blocks along its path, destroys the first real
// block it meets and ends the match when it reaches a player.
//
// The engine never returns errors: malformed input is rejected by the
// session layer before it reaches these operations, and every operation
// either applies a consistent transition or leaves the master board alone.
package engine
