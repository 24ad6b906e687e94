package engine

import (
	"testing"
)

func TestChargeTrackerBounds(t *testing.T) {
	const max = 3

	// Recharge saturates at capacity from every reachable state
	for start := 0; start <= max; start++ {
		tracker := NewChargeTracker(start, max)
		tracker.Recharge()

		want := start + 1
		if want > max {
			want = max
		}
		if tracker.Charges() != want {
			t.Errorf("Recharge from %d: expected %d charges, got %d", start, want, tracker.Charges())
		}
	}

	// Discharge saturates at zero from every reachable state
	for start := 0; start <= max; start++ {
		tracker := NewChargeTracker(start, max)
		tracker.Discharge()

		want := start - 1
		if want < 0 {
			want = 0
		}
		if tracker.Charges() != want {
			t.Errorf("Discharge from %d: expected %d charges, got %d", start, want, tracker.Charges())
		}
	}
}

func TestChargeTrackerPredicates(t *testing.T) {
	const max = 3

	for charges := 0; charges <= max; charges++ {
		tracker := NewChargeTracker(charges, max)

		if got, want := tracker.CanRecharge(), charges < max; got != want {
			t.Errorf("CanRecharge at %d/%d: expected %v, got %v", charges, max, want, got)
		}
		if got, want := tracker.CanDischarge(), charges > 0; got != want {
			t.Errorf("CanDischarge at %d/%d: expected %v, got %v", charges, max, want, got)
		}
	}
}

func TestChargeTrackerClampsConstruction(t *testing.T) {
	tests := []struct {
		name     string
		starting int
		max      int
		want     int
	}{
		{"within range", 2, 3, 2},
		{"above capacity", 5, 3, 3},
		{"negative starting", -1, 3, 0},
		{"zero capacity", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewChargeTracker(tt.starting, tt.max)
			if tracker.Charges() != tt.want {
				t.Errorf("expected %d charges, got %d", tt.want, tracker.Charges())
			}
		})
	}
}

func TestChargeableRoundTrip(t *testing.T) {
	ch := NewChargeable(false)

	ch.Charge()
	if !ch.Charged() {
		t.Error("expected charged after Charge")
	}
	ch.ReturnCharge()
	if ch.Charged() {
		t.Error("expected uncharged after ReturnCharge")
	}

	// Both mutators are idempotent under repetition
	ch.Charge()
	ch.Charge()
	if !ch.Charged() {
		t.Error("repeated Charge should stay charged")
	}
	ch.ReturnCharge()
	ch.ReturnCharge()
	if ch.Charged() {
		t.Error("repeated ReturnCharge should stay uncharged")
	}
}

func TestMoveableFlag(t *testing.T) {
	mv := NewMoveable()

	if mv.Afloat() {
		t.Error("new moveable should start grounded")
	}
	mv.SetAfloat(true)
	if !mv.Afloat() {
		t.Error("expected afloat after SetAfloat(true)")
	}
	mv.SetAfloat(false)
	if mv.Afloat() {
		t.Error("expected grounded after SetAfloat(false)")
	}
}
