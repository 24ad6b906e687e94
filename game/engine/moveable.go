package engine

// Moveable is the facet of a world object that can be levitated by the arm.
// It is a passive flag holder: the ChargeHandler owns the attach/detach of the
// object's transform to the arm, Moveable only records whether the object is
// afloat.
type Moveable struct {
	afloat bool
}

// NewMoveable creates the facet in the grounded state
func NewMoveable() *Moveable {
	return &Moveable{}
}

// Afloat reports whether the object is currently levitating
func (m *Moveable) Afloat() bool {
	return m.afloat
}

// SetAfloat sets the levitation flag. The caller performs the matching
// transform attach or detach.
func (m *Moveable) SetAfloat(state bool) {
	m.afloat = state
}
