package engine

import (
	"testing"
)

// stubTargets is a fixed-answer target source for handler tests
type stubTargets struct {
	target *Object
}

func (s *stubTargets) CurrentTarget() *Object {
	return s.target
}

// countingEffect records SetTarget calls and fires for assertions
type countingEffect struct {
	target     *Object
	targetSets int
	fires      int
}

func (c *countingEffect) SetTarget(target *Object) {
	c.target = target
	c.targetSets++
}

func (c *countingEffect) Fire() {
	c.fires++
}

func newTestObject(id string, chargeable, moveable bool) *Object {
	obj := &Object{
		ID:        id,
		Name:      id,
		Transform: NewTransform(Vec3{X: 1}),
	}
	if chargeable {
		obj.Chargeable = NewChargeable(false)
	}
	if moveable {
		obj.Moveable = NewMoveable()
	}
	return obj
}

func newTestHandler(target *Object, charges, max int) (*ChargeHandler, *countingEffect) {
	effect := &countingEffect{}
	handler := NewChargeHandler(
		NewChargeTracker(charges, max),
		NewTransform(Vec3{}),
		&stubTargets{target: target},
		effect,
	)
	return handler, effect
}

func TestExchangeAbsorb(t *testing.T) {
	// Scenario: target charged, arm empty -> target charge moves to the arm
	target := newTestObject("crystal", true, false)
	target.Chargeable.Charge()
	handler, effect := newTestHandler(target, 0, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeAbsorbed {
		t.Errorf("expected %q, got %q", OutcomeAbsorbed, outcome)
	}
	if effect.fires != 1 {
		t.Errorf("expected exactly one effect fire, got %d", effect.fires)
	}
	if target.Chargeable.Charged() {
		t.Error("target should have returned its charge")
	}
	if handler.Tracker().Charges() != 1 {
		t.Errorf("expected arm to hold 1 charge, got %d", handler.Tracker().Charges())
	}
}

func TestExchangeAbsorbArmFull(t *testing.T) {
	// Scenario: target charged, arm full -> silent no-op
	target := newTestObject("crystal", true, false)
	target.Chargeable.Charge()
	handler, effect := newTestHandler(target, 3, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeArmFull {
		t.Errorf("expected %q, got %q", OutcomeArmFull, outcome)
	}
	if effect.fires != 0 {
		t.Errorf("expected no effect fire, got %d", effect.fires)
	}
	if !target.Chargeable.Charged() {
		t.Error("target charge should be untouched")
	}
	if handler.Tracker().Charges() != 3 {
		t.Errorf("arm charges should be untouched, got %d", handler.Tracker().Charges())
	}
}

func TestExchangeCharge(t *testing.T) {
	// Scenario: target uncharged, arm has charges -> one arm charge moves out
	target := newTestObject("crystal", true, false)
	handler, effect := newTestHandler(target, 3, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeCharged {
		t.Errorf("expected %q, got %q", OutcomeCharged, outcome)
	}
	if effect.fires != 1 {
		t.Errorf("expected exactly one effect fire, got %d", effect.fires)
	}
	if !target.Chargeable.Charged() {
		t.Error("target should now be charged")
	}
	if handler.Tracker().Charges() != 2 {
		t.Errorf("expected arm to hold 2 charges, got %d", handler.Tracker().Charges())
	}
}

func TestExchangeChargeArmEmpty(t *testing.T) {
	// Scenario: target uncharged, arm empty -> silent no-op
	target := newTestObject("crystal", true, false)
	handler, effect := newTestHandler(target, 0, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeArmEmpty {
		t.Errorf("expected %q, got %q", OutcomeArmEmpty, outcome)
	}
	if effect.fires != 0 {
		t.Errorf("expected no effect fire, got %d", effect.fires)
	}
	if target.Chargeable.Charged() {
		t.Error("target should stay uncharged")
	}
	if handler.Tracker().Charges() != 0 {
		t.Errorf("arm charges should be untouched, got %d", handler.Tracker().Charges())
	}
}

func TestExchangeTargetNotChargeable(t *testing.T) {
	// Scenario: target has no chargeable facet -> intent silently discarded
	target := newTestObject("rock", false, true)
	handler, effect := newTestHandler(target, 2, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeNotChargeable {
		t.Errorf("expected %q, got %q", OutcomeNotChargeable, outcome)
	}
	if effect.fires != 0 {
		t.Errorf("expected no effect fire, got %d", effect.fires)
	}
	if handler.Tracker().Charges() != 2 {
		t.Errorf("arm charges should be untouched, got %d", handler.Tracker().Charges())
	}
}

func TestExchangeNoTarget(t *testing.T) {
	handler, effect := newTestHandler(nil, 2, 3)

	outcome, target := handler.Update(FrameInput{ExchangePressed: true})

	if outcome != OutcomeNoTarget {
		t.Errorf("expected %q, got %q", OutcomeNoTarget, outcome)
	}
	if target != nil {
		t.Error("expected no resolved target")
	}
	if effect.fires != 0 {
		t.Errorf("expected no effect fire, got %d", effect.fires)
	}
	if handler.Mode() != ModeNoTarget {
		t.Errorf("expected ModeNoTarget, got %v", handler.Mode())
	}
}

func TestEffectToldTargetEveryTick(t *testing.T) {
	target := newTestObject("crystal", true, false)
	targets := &stubTargets{}
	effect := &countingEffect{}
	handler := NewChargeHandler(NewChargeTracker(0, 3), NewTransform(Vec3{}), targets, effect)

	// No target: the effect is told nil every tick
	handler.Update(FrameInput{})
	if effect.targetSets != 1 || effect.target != nil {
		t.Errorf("expected effect told nil target, got %v after %d sets", effect.target, effect.targetSets)
	}

	// Target appears: the effect is told the target every tick
	targets.target = target
	handler.Update(FrameInput{})
	handler.Update(FrameInput{})
	if effect.targetSets != 3 {
		t.Errorf("expected 3 SetTarget calls, got %d", effect.targetSets)
	}
	if effect.target != target {
		t.Error("expected effect told the current target")
	}
	if handler.Mode() != ModeTargeting {
		t.Errorf("expected ModeTargeting, got %v", handler.Mode())
	}

	// Target disappears: mode drops back on the very next tick
	targets.target = nil
	handler.Update(FrameInput{})
	if effect.target != nil {
		t.Error("expected effect told nil after target lost")
	}
	if handler.Mode() != ModeNoTarget {
		t.Errorf("expected ModeNoTarget, got %v", handler.Mode())
	}
}

// orderedEffect captures the observable state at the moment the effect fires
type orderedEffect struct {
	tracker       *ChargeTracker
	chargeable    *Chargeable
	armAtFire     int
	chargedAtFire bool
	fires         int
}

func (o *orderedEffect) SetTarget(*Object) {}

func (o *orderedEffect) Fire() {
	o.fires++
	o.armAtFire = o.tracker.Charges()
	o.chargedAtFire = o.chargeable.Charged()
}

func TestEffectFiresBeforeStateMutation(t *testing.T) {
	// Absorb: at fire time the target is still charged and the arm still empty
	target := newTestObject("crystal", true, false)
	target.Chargeable.Charge()
	tracker := NewChargeTracker(0, 3)
	effect := &orderedEffect{tracker: tracker, chargeable: target.Chargeable}
	handler := NewChargeHandler(tracker, NewTransform(Vec3{}), &stubTargets{target: target}, effect)

	handler.Update(FrameInput{ExchangePressed: true})
	if effect.fires != 1 {
		t.Fatalf("expected one fire, got %d", effect.fires)
	}
	if !effect.chargedAtFire || effect.armAtFire != 0 {
		t.Errorf("absorb: effect must fire before mutation (charged=%v arm=%d at fire)",
			effect.chargedAtFire, effect.armAtFire)
	}

	// Charge: at fire time the arm still holds its charge and the target is empty
	target2 := newTestObject("crystal2", true, false)
	tracker2 := NewChargeTracker(1, 3)
	effect2 := &orderedEffect{tracker: tracker2, chargeable: target2.Chargeable}
	handler2 := NewChargeHandler(tracker2, NewTransform(Vec3{}), &stubTargets{target: target2}, effect2)

	handler2.Update(FrameInput{ExchangePressed: true})
	if effect2.fires != 1 {
		t.Fatalf("expected one fire, got %d", effect2.fires)
	}
	if effect2.chargedAtFire || effect2.armAtFire != 1 {
		t.Errorf("charge: effect must fire before mutation (charged=%v arm=%d at fire)",
			effect2.chargedAtFire, effect2.armAtFire)
	}
}

func TestLevitateHeldAndRelease(t *testing.T) {
	// Scenario: levitate held for 3 ticks then released
	arm := NewTransform(Vec3{X: 10})
	target := newTestObject("box", false, true)
	effect := &countingEffect{}
	handler := NewChargeHandler(NewChargeTracker(0, 3), arm, &stubTargets{target: target}, effect)

	for i := 0; i < 3; i++ {
		handler.Update(FrameInput{LevitateHeld: true})
		if !target.Moveable.Afloat() {
			t.Fatalf("tick %d: expected target afloat", i+1)
		}
		if target.Transform.Parent() != arm {
			t.Fatalf("tick %d: expected target attached to the arm", i+1)
		}
	}

	handler.Update(FrameInput{LevitateHeld: false})
	if target.Moveable.Afloat() {
		t.Error("expected target grounded after release")
	}
	if target.Transform.Parent() != nil {
		t.Error("expected target detached after release")
	}
}

func TestLevitatedTargetFollowsArm(t *testing.T) {
	arm := NewTransform(Vec3{})
	target := newTestObject("box", false, true)
	target.Transform.SetPosition(Vec3{X: 2})
	handler := NewChargeHandler(NewChargeTracker(0, 3), arm, &stubTargets{target: target}, &countingEffect{})

	handler.Update(FrameInput{LevitateHeld: true})
	arm.SetPosition(Vec3{X: 5, Y: 1})

	got := target.Transform.Position()
	want := Vec3{X: 7, Y: 1}
	if got != want {
		t.Errorf("expected levitated target at %v, got %v", want, got)
	}

	// Release keeps the world position where the arm left it
	handler.Update(FrameInput{LevitateHeld: false})
	if target.Transform.Position() != want {
		t.Errorf("expected target to stay at %v after release, got %v", want, target.Transform.Position())
	}
}

func TestLevitateTargetNotMoveable(t *testing.T) {
	// Scenario: levitate intent on a non-moveable target is silently ignored
	target := newTestObject("crystal", true, false)
	handler, _ := newTestHandler(target, 0, 3)

	handler.Update(FrameInput{LevitateHeld: true})
	if target.Transform.Parent() != nil {
		t.Error("non-moveable target must never be attached")
	}
}

func TestLevitateIndependentOfCharges(t *testing.T) {
	// Levitation works with an empty arm and alongside an exchange no-op
	target := newTestObject("box", true, true)
	handler, effect := newTestHandler(target, 0, 3)

	outcome, _ := handler.Update(FrameInput{ExchangePressed: true, LevitateHeld: true})

	if outcome != OutcomeArmEmpty {
		t.Errorf("expected %q, got %q", OutcomeArmEmpty, outcome)
	}
	if effect.fires != 0 {
		t.Errorf("expected no effect fire, got %d", effect.fires)
	}
	if !target.Moveable.Afloat() {
		t.Error("levitation must not be gated on charge state")
	}
}
