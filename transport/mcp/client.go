package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chargearm-server/game/engine"
	"chargearm-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Charge-Arm Simulation",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Charge-Arm Simulation - MCP Interface

This is a thin client that proxies all requests to the REST API server.

SIMULATION OVERVIEW:
You control a charge arm in a 3D scene. The arm holds a bounded counter of
charges and can exchange single charges with chargeable objects, or levitate
moveable objects while the levitate intent is held. Some objects ride patrol
platforms or a rotating carousel, so positions change every tick.

AVAILABLE TOOLS:
- scene_state: Get current scene state
- aim: Aim the arm at an object by ID - requires intent explanation
- clear_aim: Clear the current aim (back to no_target mode)
- exchange: Press the exchange trigger once - requires intent explanation
- levitate: Hold or release the levitate intent
- step: Advance the simulation by N ticks
- reset_scene: Reset scene to its initial state
- event_history: View past exchange/levitate events
- describe_object: Detailed info about one object (charged? afloat? carried?)
- create_session: Create new simulation session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available scene configurations
- simulation_instructions: Get comprehensive rules and strategy notes

NOTE: The 'intent' parameter on aim/exchange tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new simulation session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the scene config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active simulation sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Arm operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scene_state",
		Description: "Get the current scene state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSceneState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "aim",
		Description: "Aim the charge arm at an object. The object must be within target range for the arm to enter targeting mode.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"object_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the object to aim at",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this aim (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "object_id"},
		},
	}, c.handleAim)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_aim",
		Description: "Clear the current aim, returning the arm to no_target mode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleClearAim)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "exchange",
		Description: "Press the exchange trigger once. Outcome depends on the aimed target: absorb a charge from a charged object, or deposit a charge into an uncharged one.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this exchange (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleExchange)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "levitate",
		Description: "Hold or release the levitate intent. While held with a moveable target aimed, the object floats and follows the arm; releasing drops it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"held": map[string]interface{}{
					"type":        "boolean",
					"description": "true to hold the levitate intent, false to release it",
				},
			},
			Required: []string{"session_id", "held"},
		},
	}, c.handleLevitate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the simulation by a number of ticks. Platforms patrol, the carousel rotates, and held levitation keeps applying.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": "Number of ticks to advance (default 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_scene",
		Description: "Reset the scene to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "event_history",
		Description: "Get exchange and levitation event history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEventHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_object",
		Description: "Get detailed information about a single scene object, including whether it is charged, afloat, or carried. Useful for verifying exchange outcomes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"object_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the object to describe",
				},
			},
			Required: []string{"session_id", "object_id"},
		},
	}, c.handleDescribeObject)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available scene configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulation_instructions",
		Description: "Get comprehensive simulation rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSimulationInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSceneState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.SceneState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSceneState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAim(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	objectID, _ := args["object_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"object_id": objectID,
	}

	var result service.AimResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/aim", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatAimResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleClearAim(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.AimResult
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s/aim", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatAimResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleExchange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var result service.ExchangeResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/exchange", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatExchangeResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleLevitate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	held, _ := args["held"].(bool)

	body := map[string]interface{}{
		"held": held,
	}

	var result service.StepResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/levitate", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verb := "released"
	if held {
		verb = "held"
	}
	response := fmt.Sprintf("Levitate intent %s\n\n%s", verb, formatStepResult(&result))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	ticks := 1
	if t, ok := args["ticks"].(float64); ok {
		ticks = int(t)
	}

	body := map[string]interface{}{
		"ticks": ticks,
	}

	var result service.StepResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/step", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatStepResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.SceneState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSceneState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleEventHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeObject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	objectID, _ := args["object_id"].(string)

	var obj engine.ObjectState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/objects/%s", sessionID, objectID), nil, &obj)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatObjectState(&obj)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		carousel := ""
		if config.HasCarousel {
			carousel = ", carousel"
		}
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Max charges: %d, Objects: %d, Platforms: %d%s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.MaxCharges, config.ObjectCount, config.Platforms, carousel)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSimulationInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Charge-Arm Simulation - Complete Instructions

OVERVIEW:
You control a charge arm in a 3D scene. The arm holds between 0 and
max_charges charges. Objects in the scene may be chargeable (hold at most one
charge), moveable (can be levitated), both, or neither.

EXCHANGE RULES (one press = one outcome):
• Target charged, arm below max  -> ABSORB: target loses its charge, arm +1
• Target uncharged, arm above 0  -> CHARGE: arm -1, target gains its charge
• Target charged, arm full       -> arm_full: nothing changes
• Target uncharged, arm empty    -> arm_empty: nothing changes
• Target not chargeable          -> not_chargeable: nothing changes
• No target aimed                -> no_target: nothing changes
A visual effect fires only when a charge actually moves, and it fires before
the counters change.

LEVITATION RULES:
• Levitate is level-triggered: hold it and every tick re-applies the intent
• Holding with a moveable object aimed lifts it; it follows the arm while held
• Releasing (or losing aim) drops the object back to the ground
• Non-moveable objects ignore the levitate intent entirely

SCENE DYNAMICS:
• Platforms patrol waypoint paths (loop or ping-pong), pausing at waypoints
• Objects listed in a platform's "carries" ride along with it
• The carousel is a rotating ring of platforms; its angle advances every tick
• Aim is by object ID but requires the object within target_range of the arm;
  moving platforms can carry a target out of range

STRATEGY NOTES FOR AI AGENTS:
1. Check scene_state before acting: charges, mode, and object positions all
   matter for the next exchange outcome.
2. Use describe_object to verify charged/afloat flags instead of assuming an
   exchange worked.
3. When a target rides a platform, step the simulation until the platform is
   near the arm before aiming.
4. The arm's counter is bounded: plan absorb/deposit sequences so you never
   press exchange while full (absorbing) or empty (depositing).
5. event_history shows exactly which presses moved a charge (effect_fired).

TOOL FLOW:
1. create_session (optionally with config_id)
2. scene_state to survey the scene
3. aim at an object, then exchange or levitate
4. step to let platforms and the carousel move
5. reset_scene for a fresh start

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSceneState(session.SceneState))
}

func formatSceneState(state *engine.SceneState) string {
	if state == nil {
		return "No scene state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Tick: %d | Charges: %d/%d | Mode: %s | Effect fires: %d\n",
		state.Tick, state.Charges, state.MaxCharges, state.Mode, state.EffectFires))

	if state.AimedObjectID != "" {
		result.WriteString(fmt.Sprintf("Aimed at: %s\n", state.AimedObjectID))
	}

	result.WriteString(fmt.Sprintf("Arm position: (%.1f, %.1f, %.1f)\n",
		state.ArmPosition.X, state.ArmPosition.Y, state.ArmPosition.Z))

	if len(state.Objects) > 0 {
		result.WriteString("\nObjects:\n")
		for _, obj := range state.Objects {
			result.WriteString(formatObjectLine(&obj))
		}
	}

	if len(state.Platforms) > 0 {
		result.WriteString("\nPlatforms:\n")
		for i, p := range state.Platforms {
			result.WriteString(fmt.Sprintf("- #%d at (%.1f, %.1f, %.1f), next waypoint %d\n",
				i, p.Position.X, p.Position.Y, p.Position.Z, p.NextWaypoint))
		}
	}

	if state.CarouselAngle != 0 {
		result.WriteString(fmt.Sprintf("\nCarousel angle: %.3f rad\n", state.CarouselAngle))
	}

	return result.String()
}

// formatObjectLine renders one object as a compact single line
func formatObjectLine(obj *engine.ObjectState) string {
	var flags []string
	if obj.Charged != nil {
		if *obj.Charged {
			flags = append(flags, "charged")
		} else {
			flags = append(flags, "uncharged")
		}
	}
	if obj.Afloat != nil && *obj.Afloat {
		flags = append(flags, "afloat")
	}
	if obj.CarriedBy != "" {
		flags = append(flags, "carried by "+obj.CarriedBy)
	}

	flagStr := ""
	if len(flags) > 0 {
		flagStr = " [" + strings.Join(flags, ", ") + "]"
	}

	return fmt.Sprintf("- %s (%.1f, %.1f, %.1f)%s\n",
		obj.ID, obj.Position.X, obj.Position.Y, obj.Position.Z, flagStr)
}

func formatObjectState(obj *engine.ObjectState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Object: %s\n", obj.ID))
	if obj.Name != "" {
		b.WriteString(fmt.Sprintf("Name: %s\n", obj.Name))
	}
	b.WriteString(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)\n",
		obj.Position.X, obj.Position.Y, obj.Position.Z))

	if obj.Charged != nil {
		b.WriteString(fmt.Sprintf("Charged: %v\n", *obj.Charged))
	} else {
		b.WriteString("Charged: n/a (not chargeable)\n")
	}

	if obj.Afloat != nil {
		b.WriteString(fmt.Sprintf("Afloat: %v\n", *obj.Afloat))
	} else {
		b.WriteString("Afloat: n/a (not moveable)\n")
	}

	if obj.CarriedBy != "" {
		b.WriteString(fmt.Sprintf("Carried by: %s\n", obj.CarriedBy))
	}

	return b.String()
}

func formatAimResult(result *service.AimResult) string {
	var b strings.Builder
	if result.AimedObjectID != "" {
		b.WriteString(fmt.Sprintf("Aiming at %s (mode: %s)\n", result.AimedObjectID, result.Mode))
	} else {
		b.WriteString(fmt.Sprintf("Aim cleared (mode: %s)\n", result.Mode))
	}
	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}
	b.WriteString("\n")
	b.WriteString(formatSceneState(result.SceneState))
	return b.String()
}

func formatExchangeResult(result *service.ExchangeResult) string {
	var b strings.Builder

	status := "✗ No charge moved"
	if result.Exchanged {
		status = "✓ Charge moved"
	}
	b.WriteString(fmt.Sprintf("%s (outcome: %s)\n", status, result.Outcome))

	if result.TargetID != "" {
		b.WriteString(fmt.Sprintf("Target: %s\n", result.TargetID))
	}
	b.WriteString(fmt.Sprintf("Arm charges: %d -> %d\n", result.ChargesBefore, result.ChargesAfter))
	if result.EffectFired {
		b.WriteString("Effect fired\n")
	}
	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatSceneState(result.SceneState))
	return b.String()
}

func formatStepResult(result *service.StepResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Advanced %d tick(s): tick %d -> %d\n",
		result.TicksExecuted, result.StartTick, result.EndTick))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated: requested %d ticks, limit is %d per call\n",
			result.TicksRequested, result.Limit))
	}
	if result.StartCharges != result.EndCharges {
		b.WriteString(fmt.Sprintf("Charges: %d -> %d\n", result.StartCharges, result.EndCharges))
	}
	if result.LevitateHeld {
		b.WriteString("Levitate intent: held\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatSceneState(result.SceneState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Event History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalEvents)

	for i, event := range history.Events {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✗"
		if event.EffectFired {
			status = "✓"
		}
		line := fmt.Sprintf("%d. tick %d %s", num, event.Tick, event.Action)
		if event.ObjectID != "" {
			line += " " + event.ObjectID
		}
		if event.Outcome != "" {
			line += fmt.Sprintf(" (%s)", event.Outcome)
		}
		if event.Action == "exchange" {
			line += fmt.Sprintf(" [charges %d->%d] %s", event.ChargesBefore, event.ChargesAfter, status)
		}
		result += line + "\n"
	}

	return result
}
