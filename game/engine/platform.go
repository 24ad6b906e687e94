package engine

// Platform is a waypoint-following mover. Each tick it advances toward its
// next waypoint at a fixed speed; on arrival it waits out a pause realized as
// a tick countdown, so the main loop keeps driving every other object while
// the platform idles. Objects ride a platform by being parented to its
// transform.
type Platform struct {
	transform  *Transform
	waypoints  []Vec3
	speed      float64
	pauseTicks int
	mode       PatrolMode

	next      int
	pauseLeft int
	dir       int
}

// NewPlatform creates a platform at its first waypoint
func NewPlatform(cfg PlatformConfig) *Platform {
	p := &Platform{
		transform:  NewTransform(cfg.Waypoints[0]),
		waypoints:  cfg.Waypoints,
		speed:      cfg.Speed,
		pauseTicks: cfg.PauseTicks,
		mode:       cfg.Mode,
		dir:        1,
	}
	if len(p.waypoints) > 1 {
		p.next = 1
	}
	return p
}

// Transform returns the platform's scene-graph node
func (p *Platform) Transform() *Transform {
	return p.transform
}

// Position returns the platform's current world position
func (p *Platform) Position() Vec3 {
	return p.transform.Position()
}

// Step advances the platform by one tick
func (p *Platform) Step() {
	if len(p.waypoints) < 2 {
		return
	}
	if p.pauseLeft > 0 {
		p.pauseLeft--
		return
	}

	target := p.waypoints[p.next]
	pos := p.transform.Position()
	delta := target.Sub(pos)
	dist := delta.Length()

	if dist <= p.speed {
		// Arrived: snap to the waypoint and start the pause countdown
		p.transform.SetPosition(target)
		p.pauseLeft = p.pauseTicks
		p.advance()
		return
	}

	p.transform.SetPosition(pos.Add(delta.Scale(p.speed / dist)))
}

// advance picks the next waypoint index according to the patrol mode
func (p *Platform) advance() {
	last := len(p.waypoints) - 1
	switch p.mode {
	case PatrolPingPong:
		if p.next == last {
			p.dir = -1
		} else if p.next == 0 {
			p.dir = 1
		}
		p.next += p.dir
	default: // PatrolLoop
		p.next = (p.next + 1) % len(p.waypoints)
	}
}

// State captures the platform's patrol progress for persistence
func (p *Platform) State() PlatformState {
	return PlatformState{
		Position:     p.transform.Position(),
		NextWaypoint: p.next,
		PauseLeft:    p.pauseLeft,
		Direction:    p.dir,
	}
}

// restore applies a persisted patrol state
func (p *Platform) restore(st PlatformState) {
	p.transform.SetPosition(st.Position)
	if st.NextWaypoint >= 0 && st.NextWaypoint < len(p.waypoints) {
		p.next = st.NextWaypoint
	}
	if st.PauseLeft >= 0 {
		p.pauseLeft = st.PauseLeft
	}
	if st.Direction == 1 || st.Direction == -1 {
		p.dir = st.Direction
	}
}

// PathLength returns the total patrol distance, used by config analysis
func (p *Platform) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(p.waypoints); i++ {
		total += p.waypoints[i].DistanceTo(p.waypoints[i-1])
	}
	if p.mode == PatrolLoop && len(p.waypoints) > 2 {
		total += p.waypoints[0].DistanceTo(p.waypoints[len(p.waypoints)-1])
	}
	return total
}
