// Command validate provides a small CLI that validates scene configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Charge constraints (starting <= max, both within limits)
//   - Object identity rules (unique IDs, no reserved carousel- prefix)
//   - Platform patrol settings (waypoints, speed, mode, carried objects)
//   - Reachability: every chargeable object must come within targeting range
//     of the arm, at rest or along the path of the platform carrying it
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chargearm-server/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single scene configuration JSON file.
// It runs the engine's structural validation and adds a per-object
// reachability report.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateSceneConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	// Reachability detail - the engine already rejects unreachable chargeables,
	// so on valid configs this only contributes informational lines
	if result.Valid {
		reachability := validateReachability(&config)
		if !reachability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachability.Errors...)
	}

	// Add informational data
	if result.Valid {
		chargeableCount := 0
		moveableCount := 0
		for _, oc := range config.Objects {
			if oc.Chargeable != nil {
				chargeableCount++
			}
			if oc.Moveable != nil {
				moveableCount++
			}
		}

		targetRange := config.TargetRange
		if targetRange <= 0 {
			targetRange = engine.DefaultTargetRange
		}

		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Objects: %d (%d chargeable, %d moveable)", len(config.Objects), chargeableCount, moveableCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Charges: %d/%d", config.StartingCharges, config.MaxCharges))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Target range: %.1f", targetRange))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Platforms: %d", len(config.Platforms)))
		if config.Carousel != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Carousel: %d platforms, radius %.1f", config.Carousel.Count, config.Carousel.Radius))
		}
	}

	return result
}

// validateReachability reports the closest approach of every chargeable
// object to the arm, taking carrying platform paths into account. A rider
// keeps its offset from the platform's first waypoint while riding.
func validateReachability(config *engine.SceneConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(config.Objects) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate reachability: no objects")
		return result
	}

	targetRange := config.TargetRange
	if targetRange <= 0 {
		targetRange = engine.DefaultTargetRange
	}

	reachable := 0
	unreachable := []string{}
	for _, oc := range config.Objects {
		if oc.Chargeable == nil {
			continue
		}

		minDist := config.ArmPosition.DistanceTo(oc.Position)
		for _, pc := range config.Platforms {
			carries := false
			for _, id := range pc.Carries {
				if id == oc.ID {
					carries = true
					break
				}
			}
			if !carries || len(pc.Waypoints) == 0 {
				continue
			}

			offset := oc.Position.Sub(pc.Waypoints[0])
			for _, wp := range pc.Waypoints {
				dist := config.ArmPosition.DistanceTo(wp.Add(offset))
				if dist < minDist {
					minDist = dist
				}
			}
		}

		if minDist > targetRange {
			unreachable = append(unreachable, fmt.Sprintf("'%s' (closest approach %.1f, range %.1f)", oc.ID, minDist, targetRange))
		} else {
			reachable++
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: %d chargeable object(s) never enter targeting range", len(unreachable)))
		for _, obj := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", obj))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: All %d chargeable objects enter targeting range", reachable))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
