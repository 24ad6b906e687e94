// Package api provides the REST API server for the Charge-Arm simulation.
//
// The API exposes session management, arm operations, scene state queries,
// and configuration endpoints over HTTP using gorilla/mux routing.
//
// Endpoints:
//
//	POST   /api/sessions                          - Create a new session
//	GET    /api/sessions                          - List sessions (sortable)
//	GET    /api/sessions/unified                  - Multi-session dashboard view
//	GET    /api/sessions/{id}                     - Get session details
//	DELETE /api/sessions/{id}                     - Delete a session
//
//	GET    /api/sessions/{id}/state               - Current scene state
//	POST   /api/sessions/{id}/aim                 - Aim the arm at an object
//	DELETE /api/sessions/{id}/aim                 - Clear the current aim
//	POST   /api/sessions/{id}/exchange            - Press the exchange trigger
//	POST   /api/sessions/{id}/levitate            - Hold or release levitation
//	POST   /api/sessions/{id}/step                - Advance the simulation
//	POST   /api/sessions/{id}/reset               - Reset scene to initial state
//	GET    /api/sessions/{id}/history             - Paginated event history
//	GET    /api/sessions/{id}/objects/{objectId}  - Describe a single object
//
//	GET    /api/configs                           - List scene configurations
//	POST   /api/configs                           - Save a scene configuration
//	GET    /api/configs/{name}                    - Get a configuration
//	GET    /api/health                            - Health check
//
//	GET    /ws?session={id}                       - WebSocket state stream
//
// Mutating operations broadcast the resulting scene state to every WebSocket
// client watching the session, so UIs stay in sync without polling.
//
// Responses are JSON. Errors use the shape {"error": "message"} with an
// appropriate HTTP status code.
package api
