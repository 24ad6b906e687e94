package engine

// Scene owns the live simulation: the arm and its charge tracker, the world
// objects, the platforms and carousel that ferry them around, and the event
// history. All mutation happens inside Step on a single logical thread; the
// scene itself takes no locks.
type Scene struct {
	config *SceneConfig

	tick    int
	arm     *Transform
	tracker *ChargeTracker
	effect  *BeamEffect
	aim     *AimSelector
	handler *ChargeHandler

	objects []*Object
	byID    map[string]*Object

	platforms []*Platform
	carousel  *Carousel

	history []EventEntry
}

// NewScene builds a scene from an already validated configuration
func NewScene(config *SceneConfig) *Scene {
	s := &Scene{
		config:  config,
		arm:     NewTransform(config.ArmPosition),
		tracker: NewChargeTracker(config.StartingCharges, config.MaxCharges),
		effect:  NewBeamEffect(),
		byID:    make(map[string]*Object),
	}

	targetRange := config.TargetRange
	if targetRange <= 0 {
		targetRange = DefaultTargetRange
	}
	s.aim = NewAimSelector(s.arm, targetRange)
	s.handler = NewChargeHandler(s.tracker, s.arm, s.aim, s.effect)

	for _, oc := range config.Objects {
		obj := &Object{
			ID:        oc.ID,
			Name:      oc.Name,
			Transform: NewTransform(oc.Position),
		}
		if oc.Chargeable != nil {
			obj.Chargeable = NewChargeable(oc.Chargeable.Charged)
		}
		if oc.Moveable != nil {
			obj.Moveable = NewMoveable()
		}
		s.addObject(obj)
	}

	for _, pc := range config.Platforms {
		platform := NewPlatform(pc)
		s.platforms = append(s.platforms, platform)
		// Riders board at scene init and follow the platform's transform
		for _, id := range pc.Carries {
			if rider, ok := s.byID[id]; ok {
				rider.Transform.AttachTo(platform.Transform())
			}
		}
	}

	if config.Carousel != nil {
		s.carousel = NewCarousel(*config.Carousel)
		for _, obj := range s.carousel.Platforms() {
			s.addObject(obj)
		}
	}

	return s
}

func (s *Scene) addObject(obj *Object) {
	s.objects = append(s.objects, obj)
	s.byID[obj.ID] = obj
}

// Tick returns the number of simulation ticks executed so far
func (s *Scene) Tick() int {
	return s.tick
}

// Arm returns the arm's transform
func (s *Scene) Arm() *Transform {
	return s.arm
}

// Tracker returns the arm's charge tracker
func (s *Scene) Tracker() *ChargeTracker {
	return s.tracker
}

// Effect returns the scene's beam effect trigger
func (s *Scene) Effect() *BeamEffect {
	return s.effect
}

// Aim returns the scene's player-driven target selector
func (s *Scene) Aim() *AimSelector {
	return s.aim
}

// Handler returns the charge-exchange orchestrator
func (s *Scene) Handler() *ChargeHandler {
	return s.handler
}

// Object looks up a world object by ID, returning nil when unknown
func (s *Scene) Object(id string) *Object {
	return s.byID[id]
}

// Objects returns all world objects in deterministic order
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Platforms returns the scene's waypoint platforms
func (s *Scene) Platforms() []*Platform {
	return s.platforms
}

// Carousel returns the carousel, or nil if the scene has none
func (s *Scene) Carousel() *Carousel {
	return s.carousel
}

// History returns the cumulative event log
func (s *Scene) History() []EventEntry {
	return s.history
}

// StepRecord summarizes what a single tick did
type StepRecord struct {
	Tick        int          `json:"tick"`
	Outcome     Outcome      `json:"outcome,omitempty"`
	TargetID    string       `json:"target_id,omitempty"`
	EffectFired bool         `json:"effect_fired"`
	Events      []EventEntry `json:"events,omitempty"`
}

// Step advances the whole scene by exactly one tick: platforms move, the
// carousel rotates, then the charge handler consumes this tick's input.
func (s *Scene) Step(in FrameInput) StepRecord {
	s.tick++

	for _, platform := range s.platforms {
		platform.Step()
	}
	if s.carousel != nil {
		s.carousel.Step()
	}

	chargesBefore := s.tracker.Charges()
	firesBefore := s.effect.Fires()
	afloatBefore := s.afloatTargets()

	outcome, target := s.handler.Update(in)

	rec := StepRecord{
		Tick:        s.tick,
		Outcome:     outcome,
		EffectFired: s.effect.Fires() > firesBefore,
	}
	if target != nil {
		rec.TargetID = target.ID
	}

	if in.ExchangePressed {
		entry := EventEntry{
			Tick:          s.tick,
			Action:        "exchange",
			Outcome:       outcome,
			ObjectID:      rec.TargetID,
			ChargesBefore: chargesBefore,
			ChargesAfter:  s.tracker.Charges(),
			EffectFired:   rec.EffectFired,
		}
		s.history = append(s.history, entry)
		rec.Events = append(rec.Events, entry)
	}

	rec.Events = append(rec.Events, s.levitationEvents(afloatBefore)...)
	return rec
}

// afloatTargets snapshots which objects are levitating before the handler runs
func (s *Scene) afloatTargets() map[string]bool {
	afloat := make(map[string]bool)
	for _, obj := range s.objects {
		if mv := obj.AsMoveable(); mv != nil && mv.Afloat() {
			afloat[obj.ID] = true
		}
	}
	return afloat
}

// levitationEvents records levitate/release transitions caused by this tick
func (s *Scene) levitationEvents(before map[string]bool) []EventEntry {
	var events []EventEntry
	charges := s.tracker.Charges()
	for _, obj := range s.objects {
		mv := obj.AsMoveable()
		if mv == nil {
			continue
		}
		was := before[obj.ID]
		if mv.Afloat() == was {
			continue
		}
		action := "levitate"
		if was {
			action = "release"
		}
		entry := EventEntry{
			Tick:          s.tick,
			Action:        action,
			ObjectID:      obj.ID,
			ChargesBefore: charges,
			ChargesAfter:  charges,
		}
		s.history = append(s.history, entry)
		events = append(events, entry)
	}
	return events
}
