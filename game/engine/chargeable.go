package engine

// Chargeable is the facet of a world object that can hold a single boolean
// charge. It performs no capacity checks of its own; the ChargeHandler is
// responsible for consulting the arm's tracker before mutating it.
type Chargeable struct {
	charged bool
}

// NewChargeable creates the facet with an initial charge state
func NewChargeable(charged bool) *Chargeable {
	return &Chargeable{charged: charged}
}

// Charged reports whether the object currently holds a charge
func (c *Chargeable) Charged() bool {
	return c.charged
}

// Charge sets the charge. Idempotent.
func (c *Chargeable) Charge() {
	c.charged = true
}

// ReturnCharge clears the charge. Idempotent.
func (c *Chargeable) ReturnCharge() {
	c.charged = false
}
