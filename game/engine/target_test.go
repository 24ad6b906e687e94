package engine

import "testing"

func TestAimSelectorRangeGate(t *testing.T) {
	arm := NewTransform(Vec3{})
	sel := NewAimSelector(arm, 5)
	obj := &Object{ID: "a", Transform: NewTransform(Vec3{X: 3})}

	sel.Aim(obj)
	if sel.CurrentTarget() != obj {
		t.Error("expected in-range target acquired")
	}

	// The gate is re-evaluated from current positions, not latched
	obj.Transform.SetPosition(Vec3{X: 8})
	if sel.CurrentTarget() != nil {
		t.Error("expected target dropped once out of range")
	}
	obj.Transform.SetPosition(Vec3{X: 5})
	if sel.CurrentTarget() != obj {
		t.Error("expected target reacquired at the range boundary")
	}

	sel.Clear()
	if sel.CurrentTarget() != nil {
		t.Error("expected no target after clear")
	}
}

func TestRangeScannerPicksNearest(t *testing.T) {
	arm := NewTransform(Vec3{})
	near := &Object{ID: "near", Transform: NewTransform(Vec3{X: 2})}
	far := &Object{ID: "far", Transform: NewTransform(Vec3{X: 4})}
	out := &Object{ID: "out", Transform: NewTransform(Vec3{X: 9})}

	scanner := NewRangeScanner(arm, 5, func() []*Object {
		return []*Object{far, near, out}
	})

	if got := scanner.CurrentTarget(); got != near {
		t.Errorf("expected nearest object, got %v", got)
	}

	near.Transform.SetPosition(Vec3{X: 20})
	if got := scanner.CurrentTarget(); got != far {
		t.Errorf("expected remaining in-range object, got %v", got)
	}

	far.Transform.SetPosition(Vec3{X: 20})
	if got := scanner.CurrentTarget(); got != nil {
		t.Errorf("expected no target, got %v", got)
	}
}
