// Package service implements the business logic layer for the Charge-Arm
// simulation server.
//
// The service package orchestrates between the engine, session management,
// and configuration systems. It provides:
//   - GameService: the main service interface for all simulation operations
//   - Session management: creating, retrieving, and deleting sessions
//   - Arm operations: aiming, charge exchange, levitation, and stepping
//   - Scene state queries and paginated event history
//   - Configuration listing, loading, and saving
//
// Architecture:
//
// The service layer sits between the transport layers (REST, WebSocket, MCP)
// and the pure simulation engine:
//
//	Transports -> GameService -> SessionManager -> GameEngine
//	                          -> ConfigManager
//
// Each session owns one engine instance plus the held state of the levitate
// button, which is level-triggered and must persist between calls. All
// mutating operations auto-save the session through the session manager.
//
// Usage:
//
//	svc := service.NewGameService(sessionManager, configManager)
//
//	session, err := svc.CreateSession(ctx, "default")
//	svc.Aim(ctx, session.ID, "crystal-1")
//	result, err := svc.Exchange(ctx, session.ID)
package service
