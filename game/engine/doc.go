// Package engine provides the core gameplay logic for the Charge-Arm
// simulation.
//
// The engine package implements the gameplay mechanics including:
//   - The charge-exchange protocol between the mechanical arm and chargeable
//     world objects
//   - Levitation (attach/detach) of moveable objects to the arm
//   - Waypoint-following platforms and a rotating platform carousel
//   - Scene state management and snapshotting for persistence
//   - Scene configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for simulation operations,
// implemented by GameEngine. SceneState represents a full snapshot of the
// running scene, while SceneConfig defines the scene contents loaded from
// JSON files. ChargeHandler is the per-tick orchestrator that reads the aim
// target and drives the exchange decision table.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Aim at an object and press the exchange action
//	gameEngine.Aim("crystal-1")
//	result := gameEngine.Step(engine.FrameInput{ExchangePressed: true})
//	state := gameEngine.GetState()
//
// Simulation Rules:
//
// The player controls a stationary mechanical arm that exchanges charges with
// world objects. The arm holds a bounded number of charges; each chargeable
// object holds a single boolean charge. Pressing the exchange action while
// aiming either absorbs the target's charge into the arm or spends one arm
// charge into the target, depending on both sides' capacity. Holding the
// levitate action floats the target and parents it to the arm. Platforms and
// the carousel ferry objects in and out of the arm's targeting range. All
// logic advances one tick at a time on a single logical thread.
package engine
