package physics

import "math"

const (
	// platformEpsilon is how far the previous bottom edge may sit below a
	// platform's top and still count as "was above it".
	platformEpsilon = 4
	// platformCatch is the band below a platform's top inside which a
	// falling body snaps onto it.
	platformCatch = 10

	wallProbeMargin = 3
	wallProbeInset  = 6

	exitEdgeMargin = 32
)

// Contact reports what one frame of swept movement ran into.
type Contact struct {
	// Landed is true when the Y pass resolved a downward collision.
	Landed bool
	// OnGround is the post-move ground state: landed this frame, foot probe
	// hit, or resting on the room floor.
	OnGround bool
	// HitWall is true when the X pass stopped on a solid.
	HitWall bool
}

// Overlay reports hazard and exit contact for a body's final box.
type Overlay struct {
	Hazard bool
	// ExitDir is the room edge the touched exit sits on, DirNone when no
	// exit was touched.
	ExitDir Direction
}

// Resolver moves bodies through a collision world in bounded sub-steps so
// fast movement can't tunnel through one-tile-thick geometry. Displacement
// is resolved per axis, X then Y; only solids block, platforms catch
// falling bodies from above, and room bounds act as walls on edges with no
// adjacent room.
type Resolver struct {
	tun Tuning
}

// NewResolver returns a resolver using the given tuning.
func NewResolver(tun Tuning) Resolver {
	return Resolver{tun: tun}
}

// Move displaces the body by its velocity over dt, resolving collisions
// against w. A nil w means no collision context: the body moves freely.
// dropThrough disables one-way platform collision for this frame.
func (r Resolver) Move(b *Body, dt float64, w World, dropThrough bool) Contact {
	var c Contact
	if b == nil {
		return c
	}

	prevBottom := b.Y + b.H

	dx := b.VX * dt
	dy := b.VY * dt

	// Always at least one sub-step per axis so the per-frame queries run
	// even with zero displacement.
	stepsX := int(math.Abs(dx)/r.tun.StepSize) + 1
	stepsY := int(math.Abs(dy)/r.tun.StepSize) + 1
	stepDX := dx / float64(stepsX)
	stepDY := dy / float64(stepsY)

	for i := 0; i < stepsX; i++ {
		b.X += stepDX
		collided := false

		if w != nil {
			for _, s := range w.QueryAll(b.Rect()) {
				if s.Kind != SurfaceSolid {
					continue
				}
				if stepDX > 0 {
					b.X = s.Rect.X - b.W
					b.VX = 0
				} else if stepDX < 0 {
					b.X = s.Rect.Right()
					b.VX = 0
				}
				collided = true
				c.HitWall = true
				break
			}

			if bounds, ok := w.Bounds(); ok {
				if b.X < bounds.X {
					if !w.HasAdjacentRoom(DirLeft) {
						b.X = bounds.X
						b.VX = 0
					}
				} else if b.X+b.W > bounds.Right() {
					if !w.HasAdjacentRoom(DirRight) {
						b.X = bounds.Right() - b.W
						b.VX = 0
					}
				}
			}
		}

		if collided {
			break
		}
	}

	for i := 0; i < stepsY; i++ {
		b.Y += stepDY
		collided := false

		if w != nil {
			for _, s := range w.QueryAll(b.Rect()) {
				switch s.Kind {
				case SurfaceSolid:
					if stepDY >= 0 {
						b.Y = s.Rect.Y - b.H
						b.VY = 0
						c.Landed = true
					} else {
						b.Y = s.Rect.Bottom()
						b.VY = 0
					}
					collided = true

				case SurfacePlatform:
					if stepDY < 0 || dropThrough {
						continue
					}
					if prevBottom > s.Rect.Y+platformEpsilon {
						continue
					}
					bottom := b.Y + b.H
					if bottom >= s.Rect.Y && bottom <= s.Rect.Y+platformCatch {
						b.Y = s.Rect.Y - b.H
						b.VY = 0
						c.Landed = true
						collided = true
					}
				}
				if collided {
					break
				}
			}

			if bounds, ok := w.Bounds(); ok {
				if b.Y < bounds.Y {
					if !w.HasAdjacentRoom(DirUp) {
						b.Y = bounds.Y
						b.VY = 0
					}
				} else if b.Y+b.H > bounds.Bottom() {
					if !w.HasAdjacentRoom(DirDown) {
						b.Y = bounds.Bottom() - b.H
						b.VY = 0
						c.Landed = true
					}
				}
			}
		}

		if collided {
			break
		}
	}

	if c.Landed {
		c.OnGround = true
	} else {
		c.OnGround = r.OnGround(b, w, dropThrough)
	}
	return c
}

// OnGround probes a thin rect below the body's feet for solid ground or a
// platform the body isn't dropping through. Resting on the room floor also
// counts.
func (r Resolver) OnGround(b *Body, w World, dropThrough bool) bool {
	if b == nil || w == nil {
		return false
	}

	probe := Rect{X: b.X + 2, Y: b.Y + b.H, W: b.W - 4, H: 3}
	for _, s := range w.QueryAll(probe) {
		if s.Kind == SurfaceSolid {
			return true
		}
		if s.Kind == SurfacePlatform && !dropThrough {
			return true
		}
	}

	if bounds, ok := w.Bounds(); ok {
		if b.Y+b.H >= bounds.Bottom()-2 {
			return true
		}
	}
	return false
}

// TouchingWall probes for a solid wall directly beside the body. dir must
// be DirLeft or DirRight. Platforms never count as walls.
func (r Resolver) TouchingWall(b *Body, w World, dir Direction) bool {
	if b == nil || w == nil {
		return false
	}

	probe := Rect{
		Y: b.Y + wallProbeInset,
		W: wallProbeMargin,
		H: b.H - wallProbeInset*2,
	}
	switch dir {
	case DirLeft:
		probe.X = b.X - wallProbeMargin
	case DirRight:
		probe.X = b.X + b.W
	default:
		return false
	}

	return len(w.QuerySolid(probe)) > 0
}

// Scan checks the body's final box for hazard and exit surfaces. Exit
// direction is derived from which room edge the body is nearest, checked
// right, left, down, up against a fixed margin.
func (r Resolver) Scan(b *Body, w World) Overlay {
	var o Overlay
	if b == nil || w == nil {
		return o
	}

	bounds, hasBounds := w.Bounds()
	for _, s := range w.QueryAll(b.Rect()) {
		switch s.Kind {
		case SurfaceHazard:
			o.Hazard = true

		case SurfaceExit:
			if !hasBounds || o.ExitDir != DirNone {
				continue
			}
			switch {
			case b.X+b.W >= bounds.Right()-exitEdgeMargin:
				o.ExitDir = DirRight
			case b.X <= bounds.X+exitEdgeMargin:
				o.ExitDir = DirLeft
			case b.Y+b.H >= bounds.Bottom()-exitEdgeMargin:
				o.ExitDir = DirDown
			case b.Y <= bounds.Y+exitEdgeMargin:
				o.ExitDir = DirUp
			}
		}
	}
	return o
}
