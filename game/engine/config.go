package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateSceneConfig validates a scene configuration for correctness and
// playability
func ValidateSceneConfig(config *SceneConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate charge settings
	if config.MaxCharges < MinMaxCharges || config.MaxCharges > MaxMaxCharges {
		return fmt.Errorf("config validation: max_charges must be between %d and %d, got %d", MinMaxCharges, MaxMaxCharges, config.MaxCharges)
	}
	if config.StartingCharges < 0 || config.StartingCharges > config.MaxCharges {
		return fmt.Errorf("config validation: starting_charges must be between 0 and max_charges (%d), got %d",
			config.MaxCharges, config.StartingCharges)
	}

	// Validate targeting range (0 means use the default)
	if config.TargetRange != 0 && (config.TargetRange < MinTargetRange || config.TargetRange > MaxTargetRange) {
		return fmt.Errorf("config validation: target_range must be between %.1f and %.1f, got %.1f",
			MinTargetRange, MaxTargetRange, config.TargetRange)
	}

	// Validate objects
	if len(config.Objects) == 0 {
		return fmt.Errorf("config validation: at least one object is required")
	}
	if len(config.Objects) > MaxSceneObjects {
		return fmt.Errorf("config validation: too many objects (%d), limit is %d", len(config.Objects), MaxSceneObjects)
	}

	seen := make(map[string]bool)
	chargeableCount := 0
	for i, oc := range config.Objects {
		if oc.ID == "" {
			return fmt.Errorf("config validation: object %d has no id", i+1)
		}
		if strings.HasPrefix(oc.ID, "carousel-") {
			return fmt.Errorf("config validation: object id '%s' uses the reserved carousel- prefix", oc.ID)
		}
		if seen[oc.ID] {
			return fmt.Errorf("config validation: duplicate object id '%s'", oc.ID)
		}
		seen[oc.ID] = true
		if oc.Chargeable != nil {
			chargeableCount++
		}
	}
	if chargeableCount == 0 {
		return fmt.Errorf("config validation: at least one object must be chargeable")
	}

	// Validate platforms
	carried := make(map[string]bool)
	for i, pc := range config.Platforms {
		if len(pc.Waypoints) < 2 {
			return fmt.Errorf("config validation: platform %d needs at least 2 waypoints, got %d", i+1, len(pc.Waypoints))
		}
		if pc.Speed <= 0 {
			return fmt.Errorf("config validation: platform %d speed must be positive, got %.2f", i+1, pc.Speed)
		}
		if pc.PauseTicks < 0 {
			return fmt.Errorf("config validation: platform %d pause_ticks must not be negative, got %d", i+1, pc.PauseTicks)
		}
		switch pc.Mode {
		case "", PatrolLoop, PatrolPingPong:
		default:
			return fmt.Errorf("config validation: platform %d has unknown mode '%s'", i+1, pc.Mode)
		}
		for _, id := range pc.Carries {
			if !seen[id] {
				return fmt.Errorf("config validation: platform %d carries unknown object '%s'", i+1, id)
			}
			if carried[id] {
				return fmt.Errorf("config validation: object '%s' is carried by more than one platform", id)
			}
			carried[id] = true
		}
	}

	// Validate carousel
	if config.Carousel != nil {
		if config.Carousel.Count < 1 {
			return fmt.Errorf("config validation: carousel count must be at least 1, got %d", config.Carousel.Count)
		}
		if len(config.Objects)+config.Carousel.Count > MaxSceneObjects {
			return fmt.Errorf("config validation: objects plus carousel platforms exceed the limit of %d", MaxSceneObjects)
		}
		if config.Carousel.Radius <= 0 {
			return fmt.Errorf("config validation: carousel radius must be positive, got %.2f", config.Carousel.Radius)
		}
	}

	// Validate reachability - every chargeable object must be able to come
	// within targeting range of the arm, either where it sits or somewhere
	// along the platform path that carries it
	targetRange := config.TargetRange
	if targetRange <= 0 {
		targetRange = DefaultTargetRange
	}
	for _, oc := range config.Objects {
		if oc.Chargeable == nil {
			continue
		}
		minDist := config.ArmPosition.DistanceTo(oc.Position)
		for _, pc := range config.Platforms {
			if !containsString(pc.Carries, oc.ID) {
				continue
			}
			// The rider keeps its offset from the first waypoint while riding
			offset := oc.Position.Sub(pc.Waypoints[0])
			for _, wp := range pc.Waypoints {
				dist := config.ArmPosition.DistanceTo(wp.Add(offset))
				if dist < minDist {
					minDist = dist
				}
			}
		}
		if minDist > targetRange {
			return fmt.Errorf("config validation: chargeable object '%s' is unreachable - closest approach is %.1f but target range is %.1f",
				oc.ID, minDist, targetRange)
		}
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadSceneConfig loads a scene configuration from a JSON file
func LoadSceneConfig(filename string) (*SceneConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateSceneConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a scene configuration by name from the configs
// directory
func LoadConfigByName(configName string) (*SceneConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	return LoadSceneConfig(configPath)
}
