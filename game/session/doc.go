// Package session provides matchmaking and match control for the ping game.
//
// The session package implements:
//   - The logical wire protocol (join, move, shoot, place, ping in;
//     joined, start, update, end out)
//   - FIFO matchmaking of two participants into a new match
//   - Turn order and the per-turn move budget
//   - Win, loss and disconnect resolution
//
// Core Types:
//
// Registry is the process-wide server state: the waiting queue plus the
// live matches. Player is the handler for one connection; the transport
// drives it with OnOpen, OnMessage and OnClose. Match owns one engine
// instance and the turn counters for a single game.
//
// Transport Contract:
//
// The transport implements Conn, which only needs Send(text) and
// Close(code, reason). Everything about encoding and framing beyond that
// stays in the transport package.
//
// Usage:
//
//	registry := session.NewRegistry()
//
//	// for every accepted connection
//	player := session.NewPlayer(conn, registry)
//	player.OnOpen()
//	player.OnMessage(ctx, data, true)
//	player.OnClose()
//
// Concurrency:
//
// Every match serializes the messages of its two players behind its own
// mutex, so actions are applied one at a time in arrival order. Matches
// never share state; the registry lock is only held while pairing or
// listing and is never held while a match lock is being acquired.
package session
