// Package api provides the HTTP surface of the ping game server.
//
// The api package implements:
//   - The WebSocket endpoint players connect to
//   - Read-only observer endpoints over the match registry
//   - A health check
//
// Endpoints:
//
// Players:
//   - GET /ws - Upgrade to the game protocol
//
// Observers:
//   - GET /api - List available endpoints
//   - GET /api/rules - Board width, move budget, shoot radius, shapes
//   - GET /api/matches - Live matches (?recent=true adds finished ones, ?limit=N)
//   - GET /api/matches/{id} - One live or recently finished match
//   - GET /api/stats - Queue, match and connection counters
//
// Operations:
//   - GET /health - Liveness probe
//
// Observer responses only carry public metadata (names, turn, budget,
// status, result). Boards are never exposed, since any board would leak
// one side's private view.
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{"error": "match not found"}
package api
