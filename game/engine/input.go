package engine

// FrameInput carries the logical input intents for a single tick.
// ExchangePressed is edge-triggered: true only on the tick the action was
// pressed. LevitateHeld is level-triggered: true for every tick the action is
// held down.
type FrameInput struct {
	ExchangePressed bool `json:"exchange_pressed"`
	LevitateHeld    bool `json:"levitate_held"`
}

// ButtonState holds the two physical bindings that map to one logical intent.
// The core treats both identically.
type ButtonState struct {
	Primary   bool `json:"primary"`
	Alternate bool `json:"alternate"`
}

// Active reports whether either binding is engaged
func (b ButtonState) Active() bool {
	return b.Primary || b.Alternate
}

// InputFrame is the raw per-tick button sample before intent mapping
type InputFrame struct {
	Exchange ButtonState `json:"exchange"`
	Levitate ButtonState `json:"levitate"`
}

// Intents collapses the dual bindings into logical intents
func (f InputFrame) Intents() FrameInput {
	return FrameInput{
		ExchangePressed: f.Exchange.Active(),
		LevitateHeld:    f.Levitate.Active(),
	}
}

// BindingFor maps a binding name ("primary", "alternate" or empty) to a
// ButtonState with that binding engaged. Unknown names fall back to primary.
func BindingFor(name string) ButtonState {
	if name == "alternate" {
		return ButtonState{Alternate: true}
	}
	return ButtonState{Primary: true}
}
