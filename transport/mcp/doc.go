// Package mcp provides a Model Context Protocol server for observing the
// ping game.
//
// The mcp package implements:
//   - MCP tool definitions for read-only observation
//   - A thin client that proxies every tool call to the REST API
//   - Text formatting of matches and counters for AI agents
//
// MCP Tools:
//   - game_rules: Board width, move budget, shoot radius, shapes
//   - list_matches: Live matches, optionally with recently finished ones
//   - match_status: Public metadata of one match
//   - server_stats: Queue, match and connection counters
//
// Playing happens over the WebSocket protocol only; no tool can act in a
// match or see a board.
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp forwarding to GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
