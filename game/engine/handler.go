package engine

// Mode is the ChargeHandler's targeting state. It is re-derived from the
// target query every tick rather than latched.
type Mode int

const (
	ModeNoTarget Mode = iota
	ModeTargeting
)

// String returns the snapshot name of the mode
func (m Mode) String() string {
	if m == ModeTargeting {
		return "targeting"
	}
	return "no_target"
}

// Outcome classifies the result of one exchange attempt
type Outcome string

const (
	// OutcomeNone means no exchange was attempted this tick
	OutcomeNone Outcome = ""
	// OutcomeAbsorbed means the target's charge moved to the arm
	OutcomeAbsorbed Outcome = "absorbed"
	// OutcomeCharged means one arm charge moved to the target
	OutcomeCharged Outcome = "charged"
	// OutcomeArmFull means the target was charged but the arm had no room
	OutcomeArmFull Outcome = "arm_full"
	// OutcomeArmEmpty means the target was empty and so was the arm
	OutcomeArmEmpty Outcome = "arm_empty"
	// OutcomeNotChargeable means the target has no chargeable facet
	OutcomeNotChargeable Outcome = "not_chargeable"
	// OutcomeNoTarget means the exchange was pressed with nothing aimed at
	OutcomeNoTarget Outcome = "no_target"
)

// Exchanged reports whether the outcome moved a charge (and fired the effect)
func (o Outcome) Exchanged() bool {
	return o == OutcomeAbsorbed || o == OutcomeCharged
}

// ChargeHandler orchestrates the charge-exchange protocol for one arm. Each
// tick it polls the target source, forwards the target to the effect trigger,
// runs the exchange decision table on an exchange press, and drives the
// levitation attach relationship from the levitate hold.
type ChargeHandler struct {
	tracker *ChargeTracker
	arm     *Transform
	targets TargetAcquisition
	effect  EffectTrigger
	mode    Mode
}

// NewChargeHandler wires the orchestrator to its collaborators
func NewChargeHandler(tracker *ChargeTracker, arm *Transform, targets TargetAcquisition, effect EffectTrigger) *ChargeHandler {
	return &ChargeHandler{
		tracker: tracker,
		arm:     arm,
		targets: targets,
		effect:  effect,
	}
}

// Mode returns the targeting state derived on the last Update
func (h *ChargeHandler) Mode() Mode {
	return h.mode
}

// Tracker returns the arm's charge tracker
func (h *ChargeHandler) Tracker() *ChargeTracker {
	return h.tracker
}

// Update advances the handler by one tick and returns the exchange outcome
// (OutcomeNone when the exchange action was not pressed) together with the
// target the tick resolved to.
func (h *ChargeHandler) Update(in FrameInput) (Outcome, *Object) {
	target := h.targets.CurrentTarget()
	h.effect.SetTarget(target)

	if target == nil {
		h.mode = ModeNoTarget
		if in.ExchangePressed {
			return OutcomeNoTarget, nil
		}
		return OutcomeNone, nil
	}
	h.mode = ModeTargeting

	outcome := OutcomeNone
	if in.ExchangePressed {
		outcome = h.exchange(target)
	}
	h.levitate(target, in.LevitateHeld)
	return outcome, target
}

// exchange runs the decision table. The effect fires before either side's
// state is mutated; on absorb the target is cleared before the arm is
// replenished, on charge the arm is depleted before the target is set.
func (h *ChargeHandler) exchange(target *Object) Outcome {
	ch := target.AsChargeable()
	if ch == nil {
		// Objects may support any subset of facets; not an error.
		return OutcomeNotChargeable
	}

	switch {
	case ch.Charged() && h.tracker.CanRecharge():
		h.effect.Fire()
		ch.ReturnCharge()
		h.tracker.Recharge()
		return OutcomeAbsorbed
	case ch.Charged():
		return OutcomeArmFull
	case h.tracker.CanDischarge():
		h.effect.Fire()
		h.tracker.Discharge()
		ch.Charge()
		return OutcomeCharged
	default:
		return OutcomeArmEmpty
	}
}

// levitate synchronizes the target's afloat flag with the held intent and
// mutates the transform attach relationship on transitions. Independent of
// the charge protocol; silently skipped when the target is not moveable.
func (h *ChargeHandler) levitate(target *Object, held bool) {
	mv := target.AsMoveable()
	if mv == nil {
		return
	}

	wasAfloat := mv.Afloat()
	mv.SetAfloat(held)
	if held && !wasAfloat {
		target.Transform.AttachTo(h.arm)
	} else if !held && wasAfloat {
		target.Transform.Detach()
	}
}
