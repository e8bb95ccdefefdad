// Package websocket provides the WebSocket transport for the ping game.
//
// The websocket package implements:
//   - Upgrading HTTP requests and tracking live connections in a Hub
//   - One read pump and one write pump per connection
//   - Delivering open, message and close events to a session.Player
//   - The session.Conn contract: Send(text) and Close(code, reason)
//
// Architecture:
//
// The Hub owns the set of connected clients and runs a small event loop
// for registration. Each Client has a buffered outbound queue drained by
// its write pump, so the session layer never blocks on a slow peer. A
// Close queues a close frame behind any pending messages, which lets an
// end message reach the client before the connection is torn down.
//
// Message Protocol:
//
// Every frame is a single JSON text message. Binary frames are passed to
// the session layer flagged as non-text and are rejected there.
//
// Usage:
//
//	hub := websocket.NewHub(registry, cfg.OriginAllowed)
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", hub.ServeWS)
package websocket
