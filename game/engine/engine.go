package engine

import "fmt"

// Engine provides the main interface for simulation operations
type Engine interface {
	// Scene state management
	GetState() *SceneState
	SetState(state *SceneState) error
	Reset() *SceneState
	GetCharges() int
	GetMaxCharges() int
	GetTick() int

	// Targeting
	Aim(objectID string) error
	ClearAim()
	AimedObjectID() string

	// Simulation
	Step(in FrameInput) StepRecord

	// Configuration
	GetConfig() *SceneConfig
	SetConfig(config *SceneConfig) error

	// History
	GetHistory() []EventEntry
	GetLastEvent() *EventEntry

	// World inspection
	DescribeObject(objectID string) (*ObjectState, error)
	ListObjects() []ObjectState
}

// GameEngine implements the Engine interface
type GameEngine struct {
	scene  *Scene
	config *SceneConfig
}

// NewEngine creates a new simulation engine with the provided configuration
func NewEngine(config *SceneConfig) (*GameEngine, error) {
	if err := ValidateSceneConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config: config,
		scene:  NewScene(config),
	}, nil
}

// Scene exposes the underlying scene for white-box inspection in tests
func (e *GameEngine) Scene() *Scene {
	return e.scene
}

// GetState builds a full snapshot of the current scene
func (e *GameEngine) GetState() *SceneState {
	s := e.scene

	state := &SceneState{
		Tick:        s.Tick(),
		Charges:     s.Tracker().Charges(),
		MaxCharges:  s.Tracker().MaxCharges(),
		ArmPosition: s.Arm().Position(),
		EffectFires: s.Effect().Fires(),
		ConfigName:  e.config.Name,
		History:     s.History(),
		TotalEvents: len(s.History()),
	}

	if aimed := s.Aim().Aimed(); aimed != nil {
		state.AimedObjectID = aimed.ID
	}
	// Targeting is a pure function of the current tick: derive it from the
	// live target query, not from the handler's last update.
	state.Mode = ModeNoTarget.String()
	if s.Aim().CurrentTarget() != nil {
		state.Mode = ModeTargeting.String()
	}

	for _, obj := range s.Objects() {
		state.Objects = append(state.Objects, describeObject(obj))
	}
	for _, platform := range s.Platforms() {
		state.Platforms = append(state.Platforms, platform.State())
	}
	if s.Carousel() != nil {
		state.CarouselAngle = s.Carousel().Angle()
	}

	return state
}

// SetState restores a snapshot (used by session persistence loading). The
// snapshot must come from a scene built with the same configuration.
func (e *GameEngine) SetState(state *SceneState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	s := e.scene
	s.tick = state.Tick
	s.tracker.setCharges(state.Charges)
	s.effect.setFires(state.EffectFires)
	s.history = append([]EventEntry(nil), state.History...)

	for i, st := range state.Platforms {
		if i < len(s.platforms) {
			s.platforms[i].restore(st)
		}
	}
	if s.carousel != nil {
		s.carousel.setAngle(state.CarouselAngle)
	}

	for _, os := range state.Objects {
		obj := s.Object(os.ID)
		if obj == nil {
			return fmt.Errorf("snapshot references unknown object '%s'", os.ID)
		}
		if ch := obj.AsChargeable(); ch != nil && os.Charged != nil {
			if *os.Charged {
				ch.Charge()
			} else {
				ch.ReturnCharge()
			}
		}
		if mv := obj.AsMoveable(); mv != nil && os.Afloat != nil {
			mv.SetAfloat(*os.Afloat)
			if *os.Afloat {
				obj.Transform.AttachTo(s.arm)
			} else {
				obj.Transform.Detach()
			}
		}
		obj.Transform.SetPosition(os.Position)
	}

	s.aim.Clear()
	if state.AimedObjectID != "" {
		if obj := s.Object(state.AimedObjectID); obj != nil {
			s.aim.Aim(obj)
		}
	}

	return nil
}

// Reset rebuilds the scene from its configuration. The event history is
// preserved across resets; only the live scene state starts over.
func (e *GameEngine) Reset() *SceneState {
	prevHistory := e.scene.history
	e.scene = NewScene(e.config)
	e.scene.history = prevHistory
	return e.GetState()
}

// GetCharges returns the arm's current charge count
func (e *GameEngine) GetCharges() int {
	return e.scene.Tracker().Charges()
}

// GetMaxCharges returns the arm's charge capacity
func (e *GameEngine) GetMaxCharges() int {
	return e.scene.Tracker().MaxCharges()
}

// GetTick returns the current simulation tick
func (e *GameEngine) GetTick() int {
	return e.scene.Tick()
}

// Aim points the arm at a world object. The object must exist and currently
// be within targeting range; whether it stays acquired is re-evaluated every
// tick.
func (e *GameEngine) Aim(objectID string) error {
	obj := e.scene.Object(objectID)
	if obj == nil {
		return fmt.Errorf("object '%s' not found", objectID)
	}
	if !e.scene.Aim().InRange(obj) {
		dist := e.scene.Arm().Position().DistanceTo(obj.Transform.Position())
		return fmt.Errorf("object '%s' is out of range: %.1f > %.1f", objectID, dist, e.targetRange())
	}
	e.scene.Aim().Aim(obj)
	return nil
}

// ClearAim drops the current aim target
func (e *GameEngine) ClearAim() {
	e.scene.Aim().Clear()
}

// AimedObjectID returns the ID of the aimed object, or "" when none
func (e *GameEngine) AimedObjectID() string {
	if aimed := e.scene.Aim().Aimed(); aimed != nil {
		return aimed.ID
	}
	return ""
}

// Step advances the simulation by one tick with the given input intents
func (e *GameEngine) Step(in FrameInput) StepRecord {
	return e.scene.Step(in)
}

// GetConfig returns the current scene configuration
func (e *GameEngine) GetConfig() *SceneConfig {
	return e.config
}

// SetConfig swaps in a new configuration and rebuilds the scene
func (e *GameEngine) SetConfig(config *SceneConfig) error {
	if err := ValidateSceneConfig(config); err != nil {
		return err
	}

	e.config = config
	e.scene = NewScene(config)
	return nil
}

// GetHistory returns the cumulative event history
func (e *GameEngine) GetHistory() []EventEntry {
	return e.scene.History()
}

// GetLastEvent returns the most recent event, or nil if none occurred yet
func (e *GameEngine) GetLastEvent() *EventEntry {
	history := e.scene.History()
	if len(history) == 0 {
		return nil
	}
	return &history[len(history)-1]
}

// DescribeObject returns the snapshot of a single world object
func (e *GameEngine) DescribeObject(objectID string) (*ObjectState, error) {
	obj := e.scene.Object(objectID)
	if obj == nil {
		return nil, fmt.Errorf("object '%s' not found", objectID)
	}
	st := describeObject(obj)
	return &st, nil
}

// ListObjects returns snapshots of every world object
func (e *GameEngine) ListObjects() []ObjectState {
	var states []ObjectState
	for _, obj := range e.scene.Objects() {
		states = append(states, describeObject(obj))
	}
	return states
}

func (e *GameEngine) targetRange() float64 {
	if e.config.TargetRange > 0 {
		return e.config.TargetRange
	}
	return DefaultTargetRange
}

// describeObject builds the snapshot view of one object
func describeObject(obj *Object) ObjectState {
	st := ObjectState{
		ID:       obj.ID,
		Name:     obj.Name,
		Position: obj.Transform.Position(),
	}
	if ch := obj.AsChargeable(); ch != nil {
		charged := ch.Charged()
		st.Charged = &charged
	}
	if mv := obj.AsMoveable(); mv != nil {
		afloat := mv.Afloat()
		st.Afloat = &afloat
		if afloat {
			st.CarriedBy = "arm"
		}
	}
	return st
}
