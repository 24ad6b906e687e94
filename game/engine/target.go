package engine

// TargetAcquisition resolves the object currently aimed at. It is polled
// exactly once per tick by the ChargeHandler; returning nil means no target.
type TargetAcquisition interface {
	CurrentTarget() *Object
}

// AimSelector is the player-driven target source. The player (via the service
// layer) picks an object to aim at; the selector re-validates range every tick
// so the target drops out as soon as a platform carries it away. The
// targeting/no-target transition is therefore a pure function of the current
// tick, with no hysteresis.
type AimSelector struct {
	arm      *Transform
	rangeMax float64
	aimed    *Object
}

// NewAimSelector creates a selector for an arm with the given targeting range
func NewAimSelector(arm *Transform, rangeMax float64) *AimSelector {
	return &AimSelector{arm: arm, rangeMax: rangeMax}
}

// Aim sets the desired target. Whether it is actually acquired each tick
// depends on range.
func (a *AimSelector) Aim(obj *Object) {
	a.aimed = obj
}

// Clear drops the desired target
func (a *AimSelector) Clear() {
	a.aimed = nil
}

// Aimed returns the desired target regardless of range
func (a *AimSelector) Aimed() *Object {
	return a.aimed
}

// InRange reports whether obj is currently within targeting range of the arm
func (a *AimSelector) InRange(obj *Object) bool {
	if obj == nil || obj.Transform == nil {
		return false
	}
	return a.arm.Position().DistanceTo(obj.Transform.Position()) <= a.rangeMax
}

// CurrentTarget implements TargetAcquisition
func (a *AimSelector) CurrentTarget() *Object {
	if a.aimed == nil || !a.InRange(a.aimed) {
		return nil
	}
	return a.aimed
}

// RangeScanner is an automatic target source: each tick it acquires the
// nearest object within range of the arm. Used by scenes configured for
// hands-free targeting and by the analyzer.
type RangeScanner struct {
	arm      *Transform
	rangeMax float64
	objects  func() []*Object
}

// NewRangeScanner creates a scanner over the objects returned by the provider
func NewRangeScanner(arm *Transform, rangeMax float64, objects func() []*Object) *RangeScanner {
	return &RangeScanner{arm: arm, rangeMax: rangeMax, objects: objects}
}

// CurrentTarget implements TargetAcquisition by picking the nearest in-range
// object
func (r *RangeScanner) CurrentTarget() *Object {
	armPos := r.arm.Position()
	var nearest *Object
	nearestDist := r.rangeMax
	for _, obj := range r.objects() {
		if obj == nil || obj.Transform == nil {
			continue
		}
		dist := armPos.DistanceTo(obj.Transform.Position())
		if dist <= nearestDist {
			nearest = obj
			nearestDist = dist
		}
	}
	return nearest
}
