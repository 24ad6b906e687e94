package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chargearm-server/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new simulation session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.SceneConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		SceneState:     session.Engine.GetState(),
		SceneConfig:    session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		SceneState:     session.Engine.GetState(),
		SceneConfig:    session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			SceneState:     sess.Engine.GetState(),
			SceneConfig:    sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Aim points the arm at an object by id
func (s *gameServiceImpl) Aim(ctx context.Context, sessionID, objectID string) (*AimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.Aim(objectID); err != nil {
		return nil, err
	}

	s.persist(sessionID, "aim")

	state := sess.Engine.GetState()
	return &AimResult{
		AimedObjectID: sess.Engine.AimedObjectID(),
		Mode:          state.Mode,
		SceneState:    state,
		Message:       fmt.Sprintf("Aiming at %s", objectID),
	}, nil
}

// ClearAim removes the current aim
func (s *gameServiceImpl) ClearAim(ctx context.Context, sessionID string) (*AimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Engine.ClearAim()
	s.persist(sessionID, "clear aim")

	state := sess.Engine.GetState()
	return &AimResult{
		AimedObjectID: "",
		Mode:          state.Mode,
		SceneState:    state,
		Message:       "Aim cleared",
	}, nil
}

// Exchange presses the exchange button for exactly one tick
func (s *gameServiceImpl) Exchange(ctx context.Context, sessionID string) (*ExchangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	chargesBefore := sess.Engine.GetCharges()
	rec := sess.Engine.Step(engine.FrameInput{
		ExchangePressed: true,
		LevitateHeld:    sess.LevitateHeld,
	})
	chargesAfter := sess.Engine.GetCharges()

	s.persist(sessionID, "exchange")

	outcome := rec.Outcome
	return &ExchangeResult{
		Outcome:       string(outcome),
		Exchanged:     outcome.Exchanged(),
		EffectFired:   rec.EffectFired,
		TargetID:      rec.TargetID,
		ChargesBefore: chargesBefore,
		ChargesAfter:  chargesAfter,
		SceneState:    sess.Engine.GetState(),
		Events:        eventsFromEntries(rec.Events),
		Message:       outcomeMessage(outcome, rec.TargetID, chargesBefore, chargesAfter),
	}, nil
}

// Levitate updates the held state of the levitate button and advances one
// tick so the change takes effect immediately
func (s *gameServiceImpl) Levitate(ctx context.Context, sessionID string, held bool) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.LevitateHeld = held
	result := s.advance(sess, 1)
	s.persist(sessionID, "levitate")
	return result, nil
}

// Step advances the simulation by the given number of ticks
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string, ticks int) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if ticks < 1 {
		ticks = 1
	}
	result := s.advance(sess, ticks)
	s.persist(sessionID, "step")
	return result, nil
}

// advance runs the simulation forward, holding the session's levitate state
func (s *gameServiceImpl) advance(sess *Session, ticks int) *StepResult {
	result := &StepResult{
		TicksRequested: ticks,
		StartTick:      sess.Engine.GetTick(),
		StartCharges:   sess.Engine.GetCharges(),
		LevitateHeld:   sess.LevitateHeld,
		Events:         make([]GameEvent, 0),
	}

	// Limit ticks per call to prevent abuse
	if ticks > engine.MaxStepTicks {
		result.Truncated = true
		result.Limit = engine.MaxStepTicks
		ticks = engine.MaxStepTicks
	}

	for i := 0; i < ticks; i++ {
		rec := sess.Engine.Step(engine.FrameInput{LevitateHeld: sess.LevitateHeld})
		result.TicksExecuted++
		result.Events = append(result.Events, eventsFromEntries(rec.Events)...)
	}

	result.EndTick = sess.Engine.GetTick()
	result.EndCharges = sess.Engine.GetCharges()
	result.SceneState = sess.Engine.GetState()
	return result
}

// Reset resets a session's scene to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.SceneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.LevitateHeld = false
	state := sess.Engine.Reset()

	s.persist(sessionID, "reset")

	return state, nil
}

// GetSceneState retrieves the current scene state
func (s *gameServiceImpl) GetSceneState(ctx context.Context, sessionID string) (*engine.SceneState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// DescribeObject returns the state of a single scene object
func (s *gameServiceImpl) DescribeObject(ctx context.Context, sessionID, objectID string) (*engine.ObjectState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.DescribeObject(objectID)
}

// GetEventHistory returns paginated event history
func (s *gameServiceImpl) GetEventHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of events
	var events []engine.EventEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			events = append(events, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			events = history[start:end]
		}
	}

	// Ensure events is not nil
	if events == nil {
		events = []engine.EventEntry{}
	}

	return &HistoryResponse{
		Events:      events,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available scene configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific scene configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.SceneConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a scene configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.SceneConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// persist auto-saves a session after a mutating operation
func (s *gameServiceImpl) persist(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		logrus.WithFields(logrus.Fields{
			"session":   sessionID,
			"operation": op,
		}).Warnf("Failed to persist session: %v", err)
	}
}

// eventsFromEntries converts engine event entries to API events
func eventsFromEntries(entries []engine.EventEntry) []GameEvent {
	events := make([]GameEvent, 0, len(entries))
	for _, entry := range entries {
		var msg string
		switch entry.Action {
		case "exchange":
			msg = outcomeMessage(entry.Outcome, entry.ObjectID, entry.ChargesBefore, entry.ChargesAfter)
		case "levitate":
			msg = fmt.Sprintf("Levitating %s", entry.ObjectID)
		case "release":
			msg = fmt.Sprintf("Released %s", entry.ObjectID)
		default:
			msg = entry.Action
		}
		events = append(events, GameEvent{
			Type:      entry.Action,
			Message:   msg,
			Timestamp: time.Now(),
			Tick:      entry.Tick,
			ObjectID:  entry.ObjectID,
		})
	}
	return events
}

// outcomeMessage builds a human-readable summary of an exchange outcome
func outcomeMessage(outcome engine.Outcome, targetID string, before, after int) string {
	switch outcome {
	case engine.OutcomeAbsorbed:
		return fmt.Sprintf("Absorbed charge from %s (%d -> %d)", targetID, before, after)
	case engine.OutcomeCharged:
		return fmt.Sprintf("Transferred charge to %s (%d -> %d)", targetID, before, after)
	case engine.OutcomeArmFull:
		return "Arm is already at capacity"
	case engine.OutcomeArmEmpty:
		return "Arm has no charge to give"
	case engine.OutcomeNotChargeable:
		return fmt.Sprintf("%s cannot hold charge", targetID)
	case engine.OutcomeNoTarget:
		return "No target in range"
	default:
		return string(outcome)
	}
}
