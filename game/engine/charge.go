package engine

// ChargeTracker owns the arm's bounded charge counter. The counter always
// stays within [0, maxCharges]; mutations saturate at the bounds instead of
// returning errors.
type ChargeTracker struct {
	charges    int
	maxCharges int
}

// NewChargeTracker creates a tracker with the given starting count and
// capacity. The starting count is clamped into the valid range.
func NewChargeTracker(starting, max int) *ChargeTracker {
	if max < 0 {
		max = 0
	}
	if starting < 0 {
		starting = 0
	}
	if starting > max {
		starting = max
	}
	return &ChargeTracker{charges: starting, maxCharges: max}
}

// CanRecharge reports whether the tracker has room for another charge
func (t *ChargeTracker) CanRecharge() bool {
	return t.charges < t.maxCharges
}

// CanDischarge reports whether the tracker holds at least one charge
func (t *ChargeTracker) CanDischarge() bool {
	return t.charges > 0
}

// Recharge adds one charge, saturating at capacity
func (t *ChargeTracker) Recharge() {
	if t.charges < t.maxCharges {
		t.charges++
	}
}

// Discharge removes one charge, saturating at zero
func (t *ChargeTracker) Discharge() {
	if t.charges > 0 {
		t.charges--
	}
}

// Charges returns the current charge count
func (t *ChargeTracker) Charges() int {
	return t.charges
}

// MaxCharges returns the tracker capacity
func (t *ChargeTracker) MaxCharges() int {
	return t.maxCharges
}

// setCharges restores the count from a snapshot, clamped into range
func (t *ChargeTracker) setCharges(n int) {
	if n < 0 {
		n = 0
	}
	if n > t.maxCharges {
		n = t.maxCharges
	}
	t.charges = n
}
