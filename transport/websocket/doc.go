// Package websocket provides WebSocket transport for the Charge-Arm server.
//
// The websocket package implements:
//   - Real-time scene state streaming
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded and carry the complete SceneState after
// each state change, plus an event name ("state_update" for scene pushes).
// Incoming client messages are currently ignored; mutations go through the
// REST API.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a mutating operation
//	hub.BroadcastToSession(sessionID, engine.GetState())
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
