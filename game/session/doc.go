// Package session manages simulation session lifecycle and persistence for
// the Charge-Arm server.
//
// Sessions are identified by short 4-character hex IDs and looked up
// case-insensitively. Each session wraps one engine instance; sessions are
// fully isolated from each other.
//
// Persistence:
//
// The Manager can run purely in memory or with a SessionPersistence backend.
// FilePersistence stores each session as a JSON file containing the config
// ID, timestamps, the held levitate state, and the full scene state snapshot.
// On restart, LoadPersistedSessions restores every saved session by
// rebuilding its engine from the named config and replaying the snapshot
// through SetState.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", sceneConfig) // auto-generates an ID
package session
