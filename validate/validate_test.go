package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chargearm-server/game/engine"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	return tmpfile.Name()
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Scene",
		"description": "Test configuration",
		"max_charges": 3,
		"starting_charges": 1,
		"target_range": 6.0,
		"arm_position": {"x": 0, "y": 1, "z": 0},
		"objects": [
			{"id": "crystal-1", "name": "Crystal", "position": {"x": 2, "y": 0, "z": 0}, "chargeable": {"charged": true}},
			{"id": "crate-1", "name": "Crate", "position": {"x": 3, "y": 0, "z": 1}, "chargeable": {"charged": false}, "moveable": {}}
		]
	}`

	path := writeTempConfig(t, validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to bad JSON")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Invalid JSON") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConfig_NoObjects(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"max_charges": 3,
		"starting_charges": 1,
		"objects": []
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to no objects")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "at least one object is required") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'at least one object is required' error")
	}
}

func TestValidateConfig_NoChargeable(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"max_charges": 3,
		"starting_charges": 1,
		"objects": [
			{"id": "rock-1", "name": "Rock", "position": {"x": 2, "y": 0, "z": 0}}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to no chargeable objects")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "at least one object must be chargeable") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'at least one object must be chargeable' error")
	}
}

func TestValidateConfig_InvalidCharges(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"max_charges": -5,
		"starting_charges": 10,
		"objects": [
			{"id": "crystal-1", "name": "Crystal", "position": {"x": 2, "y": 0, "z": 0}, "chargeable": {"charged": true}}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid config due to invalid charge settings")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "max_charges") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'max_charges' error")
	}
}

func TestValidateReachability_StaticObjects(t *testing.T) {
	config := &engine.SceneConfig{
		Name:        "Test",
		Description: "Test",
		MaxCharges:  3,
		TargetRange: 6.0,
		ArmPosition: engine.Vec3{X: 0, Y: 1, Z: 0},
		Objects: []engine.ObjectConfig{
			{ID: "crystal-1", Position: engine.Vec3{X: 2, Y: 0, Z: 0}, Chargeable: &engine.ChargeableConfig{Charged: true}},
		},
	}

	result := validateReachability(config)
	if !result.Valid {
		t.Errorf("Expected valid reachability, but got errors: %v", result.Errors)
	}
}

func TestValidateReachability_UnreachableObject(t *testing.T) {
	config := &engine.SceneConfig{
		Name:        "Test",
		Description: "Test",
		MaxCharges:  3,
		TargetRange: 6.0,
		ArmPosition: engine.Vec3{X: 0, Y: 1, Z: 0},
		Objects: []engine.ObjectConfig{
			{ID: "far-crystal", Position: engine.Vec3{X: 50, Y: 0, Z: 0}, Chargeable: &engine.ChargeableConfig{Charged: true}},
		},
	}

	result := validateReachability(config)
	if result.Valid {
		t.Error("Expected invalid reachability due to unreachable object")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Reachability failure") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Reachability failure' error")
	}
}

func TestValidateReachability_PlatformBringsObjectInRange(t *testing.T) {
	config := &engine.SceneConfig{
		Name:        "Test",
		Description: "Test",
		MaxCharges:  3,
		TargetRange: 6.0,
		ArmPosition: engine.Vec3{X: 0, Y: 1, Z: 0},
		Objects: []engine.ObjectConfig{
			{ID: "cargo-cell", Position: engine.Vec3{X: 50, Y: 0, Z: 0}, Chargeable: &engine.ChargeableConfig{Charged: true}, Moveable: &engine.MoveableConfig{}},
		},
		Platforms: []engine.PlatformConfig{
			{
				Waypoints: []engine.Vec3{{X: 50, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}},
				Speed:     0.2,
				Mode:      engine.PatrolPingPong,
				Carries:   []string{"cargo-cell"},
			},
		},
	}

	result := validateReachability(config)
	if !result.Valid {
		t.Errorf("Expected platform path to bring object into range, but got errors: %v", result.Errors)
	}
}

func TestValidateReachability_NoObjects(t *testing.T) {
	config := &engine.SceneConfig{Name: "Test", Description: "Test"}

	result := validateReachability(config)
	if result.Valid {
		t.Error("Expected invalid result for empty object list")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Cannot validate reachability: no objects") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Cannot validate reachability: no objects' error")
	}
}
