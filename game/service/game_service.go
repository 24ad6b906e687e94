package service

import (
	"context"
	"time"

	"chargearm-server/game/engine"
)

// GameService defines all simulation-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Arm Operations
	Aim(ctx context.Context, sessionID, objectID string) (*AimResult, error)
	ClearAim(ctx context.Context, sessionID string) (*AimResult, error)
	Exchange(ctx context.Context, sessionID string) (*ExchangeResult, error)
	Levitate(ctx context.Context, sessionID string, held bool) (*StepResult, error)
	Step(ctx context.Context, sessionID string, ticks int) (*StepResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.SceneState, error)

	// Scene State
	GetSceneState(ctx context.Context, sessionID string) (*engine.SceneState, error)
	DescribeObject(ctx context.Context, sessionID, objectID string) (*engine.ObjectState, error)
	GetEventHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.SceneConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.SceneConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.SceneConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.SceneConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles scene configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.SceneConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.SceneConfig
	SaveConfig(name string, config *engine.SceneConfig) error
}

// Session represents an active simulation session.
// LevitateHeld mirrors the client's button state between calls so the
// level-triggered intent survives across ticks.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.SceneConfig
	LevitateHeld   bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
