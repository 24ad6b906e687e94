package engine

// EffectTrigger is the abstract cast-effect collaborator. SetTarget is called
// every tick with the current aim target (nil while untargeted); Fire is
// called exactly once per successful exchange, before any charge state is
// mutated.
type EffectTrigger interface {
	SetTarget(target *Object)
	Fire()
}

// BeamEffect is the engine's effect implementation. Rendering is out of scope,
// so it records what the effect subsystem would have been told: the current
// target and the cumulative fire count. The snapshot and the transports expose
// both.
type BeamEffect struct {
	target *Object
	fires  int
}

// NewBeamEffect creates an idle effect trigger
func NewBeamEffect() *BeamEffect {
	return &BeamEffect{}
}

// SetTarget implements EffectTrigger
func (b *BeamEffect) SetTarget(target *Object) {
	b.target = target
}

// Fire implements EffectTrigger
func (b *BeamEffect) Fire() {
	b.fires++
}

// Target returns the target most recently announced to the effect subsystem
func (b *BeamEffect) Target() *Object {
	return b.target
}

// Fires returns the cumulative number of cast effects played
func (b *BeamEffect) Fires() int {
	return b.fires
}

// setFires restores the counter from a snapshot
func (b *BeamEffect) setFires(n int) {
	if n < 0 {
		n = 0
	}
	b.fires = n
}
