// Package config provides scene configuration management for the Charge-Arm
// simulation server.
//
// The config package handles:
//   - Loading scene configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Scene configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - The arm's charge capacity, starting charges, and targeting range
//   - World objects with optional chargeable and moveable facets
//   - Waypoint platforms (speed, pause ticks, patrol mode, carried objects)
//   - An optional rotating carousel of generated platforms
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	sceneConfig, err := manager.LoadConfig("default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Charge and targeting range constraints
//   - Unique, non-reserved object IDs
//   - Platform waypoint, speed, and patrol mode consistency
//   - Carousel parameters
//   - Reachability of every chargeable object from the arm
package config
