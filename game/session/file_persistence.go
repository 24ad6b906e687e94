package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chargearm-server/game/engine"
	"chargearm-server/game/service"
)

// FilePersistence stores sessions as one JSON file per session ID. A session
// is restored by rebuilding the engine from its config and replaying the
// persisted scene state through SetState.
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates the sessions directory if needed and returns a
// file-backed persistence layer.
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save writes the session's metadata, levitation intent, and full scene
// state to its JSON file. The config is stored by ID so Load can find the
// file even if the display name changes.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	configID, err := fp.configIDFor(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		LevitateHeld:   session.LevitateHeld,
		SceneState:     session.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.filePath(session.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load restores a session from its JSON file: load the config, build a fresh
// engine, then overwrite the engine's state with the persisted snapshot.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	jsonData, err := os.ReadFile(fp.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	sceneConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	eng, err := engine.NewEngine(sceneConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	// SceneState round-trips through the generic any field, so re-marshal
	// into the typed struct before handing it to the engine
	stateJSON, err := json.Marshal(data.SceneState)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene state: %w", err)
	}

	var sceneState engine.SceneState
	if err := json.Unmarshal(stateJSON, &sceneState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene state: %w", err)
	}

	if err := eng.SetState(&sceneState); err != nil {
		return nil, fmt.Errorf("failed to set scene state: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         eng,
		Config:         sceneConfig,
		LevitateHeld:   data.LevitateHeld,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session's file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.filePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns the IDs of every persisted session.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		sessionIDs = append(sessionIDs, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return sessionIDs, nil
}

// Exists reports whether a session file is on disk.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.filePath(id))
	return err == nil
}

func (fp *FilePersistence) filePath(id string) string {
	return filepath.Join(fp.sessionsDir, id+".json")
}

// configIDFor resolves a config display name back to its file-based ID. A
// name with no matching config is assumed to already be an ID.
func (fp *FilePersistence) configIDFor(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	return displayName, nil
}
