package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"chargearm-server/game/engine"
	"chargearm-server/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager loads scene configurations from a directory and caches parsed
// results. Config IDs are filenames without the .json extension.
type Manager struct {
	configDir     string
	defaultConfig *engine.SceneConfig
	configs       map[string]*engine.SceneConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.SceneConfig),
	}

	// Load default config
	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// pathFor maps a config name or filename to its path in the config dir.
func (m *Manager) pathFor(name string) string {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(m.configDir, name)
}

// LoadConfig loads and validates a configuration by name, serving repeat
// requests from the cache.
func (m *Manager) LoadConfig(name string) (*engine.SceneConfig, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another loader may have won the race for the write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	data, err := os.ReadFile(m.pathFor(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateSceneConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &config
	return &config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for config name
		name := strings.TrimSuffix(entry.Name(), ".json")

		// Try to load the config to get details
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			MaxCharges:  config.MaxCharges,
			ObjectCount: len(config.Objects),
			Platforms:   len(config.Platforms),
			HasCarousel: config.Carousel != nil,
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.SceneConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Clear cache
	m.configs = make(map[string]*engine.SceneConfig)

	// Reload default config
	return m.loadDefaultConfig()
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	// Try to load default.json as default
	config, err := m.LoadConfig("default")
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			// Create a minimal default config
			m.defaultConfig = m.createMinimalConfig()
			return nil
		}

		// Use the first available config
		config, err = m.LoadConfig(strings.TrimSuffix(configs[0].Filename, ".json"))
		if err != nil {
			m.defaultConfig = m.createMinimalConfig()
			return nil
		}
	}

	m.defaultConfig = config
	return nil
}

// SaveConfig validates a configuration and writes it to disk, updating the
// cache on success.
func (m *Manager) SaveConfig(name string, config *engine.SceneConfig) error {
	if err := engine.ValidateSceneConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.pathFor(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// createMinimalConfig creates a minimal valid configuration
func (m *Manager) createMinimalConfig() *engine.SceneConfig {
	return &engine.SceneConfig{
		Name:            "default",
		Description:     "Default minimal scene",
		MaxCharges:      3,
		StartingCharges: 1,
		TargetRange:     engine.DefaultTargetRange,
		ArmPosition:     engine.Vec3{},
		Objects: []engine.ObjectConfig{
			{
				ID:         "crystal-1",
				Name:       "Charged Crystal",
				Position:   engine.Vec3{X: 2},
				Chargeable: &engine.ChargeableConfig{Charged: true},
			},
			{
				ID:         "crate-1",
				Name:       "Hover Crate",
				Position:   engine.Vec3{X: 3},
				Chargeable: &engine.ChargeableConfig{},
				Moveable:   &engine.MoveableConfig{},
			},
		},
	}
}
