// Package mcp provides a Model Context Protocol interface for the Charge-Arm
// simulation.
//
// The Client here is deliberately thin: every tool call is proxied to the
// REST API server over HTTP, so the MCP transport and the web UI always see
// identical state. Running the MCP server against a remote base URL works the
// same as running it against a local one.
//
// Tools:
//
//	create_session, get_session, list_sessions  - session lifecycle
//	scene_state, describe_object                - state inspection
//	aim, clear_aim                              - target selection
//	exchange                                    - single charge exchange press
//	levitate                                    - hold/release levitation intent
//	step                                        - advance the simulation
//	reset_scene                                 - reset to initial state
//	event_history                               - paginated event log
//	list_configs                                - available scene configs
//	simulation_instructions                     - rules reference for agents
//
// Tool results are formatted as human-readable text summaries rather than raw
// JSON, so language-model agents can reason about outcomes directly.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
