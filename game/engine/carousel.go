package engine

import (
	"fmt"
	"math"
)

// Carousel is a rotating ring of procedurally generated platforms. The
// platforms are created once at scene init, spaced evenly around the hub, and
// rotate rigidly about it every tick. Carousel platforms are plain scene
// objects: they can be aimed at, but carry no chargeable or moveable facet.
type Carousel struct {
	hub          *Transform
	platforms    []*Object
	radius       float64
	height       float64
	angularSpeed float64
	angle        float64
}

// NewCarousel generates the platform ring from its configuration
func NewCarousel(cfg CarouselConfig) *Carousel {
	c := &Carousel{
		hub:          NewTransform(cfg.Center),
		radius:       cfg.Radius,
		height:       cfg.Height,
		angularSpeed: cfg.AngularSpeed,
	}

	for i := 0; i < cfg.Count; i++ {
		obj := &Object{
			ID:        fmt.Sprintf("carousel-%d", i+1),
			Name:      fmt.Sprintf("Carousel Platform %d", i+1),
			Transform: NewTransform(Vec3{}),
		}
		obj.Transform.AttachTo(c.hub)
		c.platforms = append(c.platforms, obj)
	}
	c.reposition()
	return c
}

// Platforms returns the generated platform objects
func (c *Carousel) Platforms() []*Object {
	return c.platforms
}

// Angle returns the current rotation in radians
func (c *Carousel) Angle() float64 {
	return c.angle
}

// Step rotates the ring by one tick's angular speed
func (c *Carousel) Step() {
	c.angle += c.angularSpeed
	// Keep the angle bounded so long sessions don't lose float precision
	if c.angle > 2*math.Pi {
		c.angle -= 2 * math.Pi
	} else if c.angle < -2*math.Pi {
		c.angle += 2 * math.Pi
	}
	c.reposition()
}

// setAngle restores the rotation from a snapshot
func (c *Carousel) setAngle(angle float64) {
	c.angle = angle
	c.reposition()
}

// reposition lays the platforms out around the hub at the current angle
func (c *Carousel) reposition() {
	n := len(c.platforms)
	if n == 0 {
		return
	}
	spacing := 2 * math.Pi / float64(n)
	for i, obj := range c.platforms {
		theta := c.angle + spacing*float64(i)
		obj.Transform.SetLocal(Vec3{
			X: c.radius * math.Cos(theta),
			Y: c.height,
			Z: c.radius * math.Sin(theta),
		})
	}
}
