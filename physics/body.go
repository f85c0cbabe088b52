package physics

import "github.com/jakecoffman/cp"

// Body is a kinematic AABB actor. Position is the top-left corner of the
// collision box; the box dimensions are fixed per actor.
type Body struct {
	X, Y float64
	W, H float64

	VX, VY float64
}

// Rect returns the body's current bounding box.
func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Center returns the center of the bounding box.
func (b *Body) Center() cp.Vector {
	return cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Velocity returns the body's velocity as a vector.
func (b *Body) Velocity() cp.Vector {
	return cp.Vector{X: b.VX, Y: b.VY}
}

// SetVelocity replaces the body's velocity.
func (b *Body) SetVelocity(v cp.Vector) {
	b.VX = v.X
	b.VY = v.Y
}

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
