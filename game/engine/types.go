package engine

import "math"

// PatrolMode selects how a platform traverses its waypoint list
type PatrolMode string

const (
	PatrolLoop     PatrolMode = "loop"
	PatrolPingPong PatrolMode = "pingpong"

	// Validation constants
	MinMaxCharges      = 1
	MaxMaxCharges      = 100
	MinTargetRange     = 0.5
	MaxTargetRange     = 100.0
	MaxSceneObjects    = 256
	MaxStepTicks       = 500
	DefaultTargetRange = 6.0
	WebSocketBufferSize = 256
)

// Vec3 represents a point or displacement in world space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the euclidean magnitude of v
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the euclidean distance between v and o
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}

// Transform is a minimal scene-graph node: a position that may be parented to
// another transform. While parented, the stored position is an offset in the
// parent's space and the world position follows the parent.
type Transform struct {
	local  Vec3
	parent *Transform
}

// NewTransform creates a detached transform at the given world position
func NewTransform(pos Vec3) *Transform {
	return &Transform{local: pos}
}

// Position returns the world position of the transform
func (t *Transform) Position() Vec3 {
	if t.parent == nil {
		return t.local
	}
	return t.parent.Position().Add(t.local)
}

// SetPosition places the transform at a world position, preserving parenting
func (t *Transform) SetPosition(world Vec3) {
	if t.parent == nil {
		t.local = world
		return
	}
	t.local = world.Sub(t.parent.Position())
}

// SetLocal sets the position relative to the parent (or the world position
// when detached)
func (t *Transform) SetLocal(local Vec3) {
	t.local = local
}

// Parent returns the carrier transform, or nil when detached
func (t *Transform) Parent() *Transform {
	return t.parent
}

// AttachTo parents the transform to carrier, preserving its world position
func (t *Transform) AttachTo(carrier *Transform) {
	if carrier == nil || carrier == t {
		return
	}
	world := t.Position()
	t.parent = carrier
	t.local = world.Sub(carrier.Position())
}

// Detach clears the parent, preserving the world position
func (t *Transform) Detach() {
	if t.parent == nil {
		return
	}
	t.local = t.Position()
	t.parent = nil
}

// Object is a world entity with optional gameplay facets. A nil facet pointer
// means the object does not support that capability.
type Object struct {
	ID   string
	Name string

	Transform  *Transform
	Chargeable *Chargeable
	Moveable   *Moveable
}

// AsChargeable returns the object's chargeable facet, or nil if the object
// cannot hold a charge
func (o *Object) AsChargeable() *Chargeable {
	if o == nil {
		return nil
	}
	return o.Chargeable
}

// AsMoveable returns the object's moveable facet, or nil if the object cannot
// be levitated
func (o *Object) AsMoveable() *Moveable {
	if o == nil {
		return nil
	}
	return o.Moveable
}

// SceneConfig represents a scene definition loaded from JSON
type SceneConfig struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	MaxCharges      int              `json:"max_charges"`
	StartingCharges int              `json:"starting_charges"`
	TargetRange     float64          `json:"target_range"`
	ArmPosition     Vec3             `json:"arm_position"`
	Objects         []ObjectConfig   `json:"objects"`
	Platforms       []PlatformConfig `json:"platforms,omitempty"`
	Carousel        *CarouselConfig  `json:"carousel,omitempty"`
}

// ObjectConfig describes a single world object. Facet sections are optional;
// their presence grants the capability.
type ObjectConfig struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Position   Vec3              `json:"position"`
	Chargeable *ChargeableConfig `json:"chargeable,omitempty"`
	Moveable   *MoveableConfig   `json:"moveable,omitempty"`
}

// ChargeableConfig configures the chargeable facet of an object
type ChargeableConfig struct {
	Charged bool `json:"charged"`
}

// MoveableConfig configures the moveable facet of an object. It is currently
// an empty marker section; presence alone grants levitation support.
type MoveableConfig struct{}

// PlatformConfig describes a waypoint-following platform
type PlatformConfig struct {
	Waypoints  []Vec3     `json:"waypoints"`
	Speed      float64    `json:"speed"`
	PauseTicks int        `json:"pause_ticks"`
	Mode       PatrolMode `json:"mode"`
	Carries    []string   `json:"carries,omitempty"` // object IDs riding this platform
}

// CarouselConfig describes the rotating ring of generated platforms
type CarouselConfig struct {
	Count        int     `json:"count"`
	Radius       float64 `json:"radius"`
	Height       float64 `json:"height"`
	AngularSpeed float64 `json:"angular_speed"` // radians per tick
	Center       Vec3    `json:"center"`
}

// ObjectState is the snapshot of a single object. Facet fields are pointers so
// objects without a facet serialize without the field.
type ObjectState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  Vec3   `json:"position"`
	Charged   *bool  `json:"charged,omitempty"`
	Afloat    *bool  `json:"afloat,omitempty"`
	CarriedBy string `json:"carried_by,omitempty"` // "arm" while levitated
}

// PlatformState is the snapshot of a platform's patrol progress
type PlatformState struct {
	Position     Vec3 `json:"position"`
	NextWaypoint int  `json:"next_waypoint"`
	PauseLeft    int  `json:"pause_left"`
	Direction    int  `json:"direction"`
}

// SceneState represents the complete simulation state
type SceneState struct {
	Tick          int             `json:"tick"`
	Charges       int             `json:"charges"`
	MaxCharges    int             `json:"max_charges"`
	ArmPosition   Vec3            `json:"arm_position"`
	AimedObjectID string          `json:"aimed_object_id,omitempty"`
	Mode          string          `json:"mode"` // "no_target" or "targeting"
	EffectFires   int             `json:"effect_fires"`
	Objects       []ObjectState   `json:"objects"`
	Platforms     []PlatformState `json:"platforms,omitempty"`
	CarouselAngle float64         `json:"carousel_angle,omitempty"`
	ConfigName    string          `json:"config_name"`
	History       []EventEntry    `json:"history"`
	TotalEvents   int             `json:"total_events"`
}

// EventEntry records a single gameplay event in the scene history
type EventEntry struct {
	Tick          int     `json:"tick"`
	Action        string  `json:"action"` // "exchange", "levitate", "release"
	Outcome       Outcome `json:"outcome,omitempty"`
	ObjectID      string  `json:"object_id,omitempty"`
	ChargesBefore int     `json:"charges_before"`
	ChargesAfter  int     `json:"charges_after"`
	EffectFired   bool    `json:"effect_fired"`
}
