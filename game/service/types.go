package service

import (
	"time"

	"chargearm-server/game/engine"
)

// SessionInfo provides information about a simulation session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	SceneState     *engine.SceneState  `json:"scene_state"`
	SceneConfig    *engine.SceneConfig `json:"scene_config"`
}

// AimResult contains the result of an aim or clear-aim operation
type AimResult struct {
	AimedObjectID string             `json:"aimed_object_id"`
	Mode          string             `json:"mode"`
	SceneState    *engine.SceneState `json:"scene_state"`
	Message       string             `json:"message,omitempty"`
}

// ExchangeResult contains the result of a single exchange attempt
type ExchangeResult struct {
	Outcome       string             `json:"outcome"`
	Exchanged     bool               `json:"exchanged"`
	EffectFired   bool               `json:"effect_fired"`
	TargetID      string             `json:"target_id,omitempty"`
	ChargesBefore int                `json:"charges_before"`
	ChargesAfter  int                `json:"charges_after"`
	SceneState    *engine.SceneState `json:"scene_state"`
	Events        []GameEvent        `json:"events,omitempty"`
	Message       string             `json:"message,omitempty"`
}

// StepResult contains the result of advancing the simulation
type StepResult struct {
	// Summary
	TicksRequested int  `json:"ticks_requested"`
	TicksExecuted  int  `json:"ticks_executed"`
	Truncated      bool `json:"truncated,omitempty"`
	Limit          int  `json:"limit,omitempty"`

	// Start/end snapshot
	StartTick    int `json:"start_tick"`
	EndTick      int `json:"end_tick"`
	StartCharges int `json:"start_charges"`
	EndCharges   int `json:"end_charges"`

	LevitateHeld bool               `json:"levitate_held"`
	SceneState   *engine.SceneState `json:"scene_state"`
	Events       []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during simulation
type GameEvent struct {
	Type      string    `json:"type"` // "exchange", "levitate", "release", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Tick      int       `json:"tick,omitempty"`
	ObjectID  string    `json:"object_id,omitempty"`
}

// HistoryOptions configures event history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated event history
type HistoryResponse struct {
	Events      []engine.EventEntry `json:"events"`
	TotalEvents int                 `json:"total_events"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a scene configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	MaxCharges  int    `json:"max_charges"`
	ObjectCount int    `json:"object_count"`
	Platforms   int    `json:"platforms"`
	HasCarousel bool   `json:"has_carousel"`
}
