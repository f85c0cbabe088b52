package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// HookState is the grapple's lifecycle state.
type HookState int

const (
	HookInactive HookState = iota
	HookFiring
	HookAttached
)

func (s HookState) String() string {
	switch s {
	case HookInactive:
		return "inactive"
	case HookFiring:
		return "firing"
	case HookAttached:
		return "attached"
	}
	return "unknown"
}

// HookMode selects the attached behavior.
type HookMode int

const (
	// ModePull accelerates the player straight toward the anchor.
	ModePull HookMode = iota
	// ModeSwing runs pendulum dynamics about the anchor.
	ModeSwing
)

func (m HookMode) String() string {
	if m == ModeSwing {
		return "swing"
	}
	return "pull"
}

// hookTipHalf is half the size of the box swept along the fire direction
// while the hook travels.
const hookTipHalf = 3

// Hook is the grappling hook. Lifecycle:
//
//	Inactive -> Firing -> Attached{Pull|Swing} -> Inactive
//
// A miss, max-range timeout, explicit release or external cancel all return
// it to Inactive. The hook is owned by one player and never retains the
// collision world past a single update.
type Hook struct {
	tun Tuning

	State HookState
	Mode  HookMode

	// Tip is the hook's head while firing; frozen at the anchor once
	// attached.
	Tip    cp.Vector
	Anchor cp.Vector

	fireDir  cp.Vector
	traveled float64

	// Pendulum state, valid while attached. Angle is radians from vertical
	// below the anchor.
	RopeLength float64
	Angle      float64
	AngularVel float64

	// pullVel caches the player's velocity each attached update so a
	// release boost reflects actual instantaneous motion.
	pullVel cp.Vector
}

// NewHook returns an inactive hook using the given tuning.
func NewHook(tun Tuning) *Hook {
	return &Hook{tun: tun}
}

// Fire launches the hook from start toward target. Only valid while
// inactive; near-zero-length shots are rejected to avoid a degenerate
// direction.
func (h *Hook) Fire(start, target cp.Vector) bool {
	if h == nil || h.State != HookInactive {
		return false
	}

	d := target.Sub(start)
	dist := d.Length()
	if dist < h.tun.GrappleMinFireDist {
		return false
	}

	h.State = HookFiring
	h.Mode = ModePull
	h.Tip = start
	h.fireDir = d.Mult(1 / dist)
	h.traveled = 0
	h.pullVel = cp.Vector{}
	return true
}

// Release lets go of the hook and returns the velocity boost to apply to
// the player, scaled from the last cached pull/swing velocity.
func (h *Hook) Release() cp.Vector {
	if h == nil || h.State == HookInactive {
		return cp.Vector{}
	}

	boost := h.pullVel.Mult(h.tun.GrappleReleaseBoost)
	h.State = HookInactive
	h.pullVel = cp.Vector{}
	return boost
}

// Cancel returns the hook to inactive without any boost. Used on room
// transitions, damage, and explicit aborts while firing.
func (h *Hook) Cancel() {
	if h == nil {
		return
	}
	h.State = HookInactive
	h.pullVel = cp.Vector{}
}

// SetMode switches the attached behavior between pull and swing.
func (h *Hook) SetMode(m HookMode) {
	if h == nil {
		return
	}
	if m == ModePull || m == ModeSwing {
		h.Mode = m
	}
}

// Update advances the hook one frame, driving the player while attached.
func (h *Hook) Update(dt float64, p *Player, w World) {
	if h == nil || p == nil {
		return
	}
	switch h.State {
	case HookFiring:
		h.updateFiring(dt, p, w)
	case HookAttached:
		if h.Mode == ModePull {
			h.updatePull(dt, p)
		} else {
			h.updateSwing(dt, p, w)
		}
	}
}

// updateFiring advances the tip in small fixed steps so the hook can't
// tunnel through thin walls, attaching on the first surface that takes a
// hook (solid, grapple anchor, or platform).
func (h *Hook) updateFiring(dt float64, p *Player, w World) {
	remaining := h.tun.GrappleFireSpeed * dt
	pos := h.Tip

	for remaining > 0 {
		step := math.Min(remaining, h.tun.HookStepSize)

		pos = pos.Add(h.fireDir.Mult(step))
		h.traveled += step

		if w != nil {
			tip := Rect{
				X: pos.X - hookTipHalf,
				Y: pos.Y - hookTipHalf,
				W: hookTipHalf * 2,
				H: hookTipHalf * 2,
			}
			for _, s := range w.QueryAll(tip) {
				if s.Kind == SurfaceSolid || s.Kind == SurfaceGrapple || s.Kind == SurfacePlatform {
					h.attach(pos, p)
					return
				}
			}
		}

		h.Tip = pos
		remaining -= step

		if h.traveled > h.tun.GrappleMaxRange {
			h.State = HookInactive
			return
		}
	}
}

// attach fixes the anchor at the contact point and converts the player's
// linear velocity into pendulum state.
func (h *Hook) attach(at cp.Vector, p *Player) {
	h.State = HookAttached
	h.Tip = at
	h.Anchor = at

	c := p.Center()
	h.RopeLength = c.Distance(h.Anchor)

	// Angle measured from vertical below the anchor: x = sin, y = cos.
	dx := c.X - h.Anchor.X
	dy := c.Y - h.Anchor.Y
	h.Angle = math.Atan2(dx, dy)

	if h.RopeLength > 10 {
		tangentX := math.Cos(h.Angle)
		tangentY := -math.Sin(h.Angle)
		tangentVel := p.VX*tangentX + p.VY*tangentY
		h.AngularVel = tangentVel / h.RopeLength
	} else {
		h.AngularVel = 0
	}

	h.pullVel = p.Velocity()
}

// updatePull attracts the player toward the anchor, completing with a
// release boost once within the minimum pull distance.
func (h *Hook) updatePull(dt float64, p *Player) {
	c := p.Center()
	d := h.Anchor.Sub(c)
	dist := d.Length()

	if dist < h.tun.GrappleMinPullDist {
		p.SetVelocity(h.Release())
		return
	}

	dir := d.Mult(1 / dist)

	// Taut rope pulls harder than slack.
	strength := h.tun.GrapplePullForce
	if dist > h.tun.PreferredRopeLength {
		strength *= 1.4
	}

	p.VX += dir.X * strength * dt
	p.VY += dir.Y * strength * dt

	if speed := p.Velocity().Length(); speed > h.tun.GrapplePullMaxSpeed {
		p.SetVelocity(p.Velocity().Mult(h.tun.GrapplePullMaxSpeed / speed))
	}

	h.pullVel = p.Velocity()
}

// updateSwing integrates the pendulum and places the player on the rope.
// A blocked reposition keeps the old position and soft-bounces the angular
// velocity instead.
func (h *Hook) updateSwing(dt float64, p *Player, w World) {
	accel := -h.tun.Gravity / math.Max(h.RopeLength, 50) * math.Sin(h.Angle)

	h.AngularVel += accel * dt
	h.AngularVel *= h.tun.SwingDamping
	h.Angle += h.AngularVel * dt

	newX := h.Anchor.X + math.Sin(h.Angle)*h.RopeLength - p.W/2
	newY := h.Anchor.Y + math.Cos(h.Angle)*h.RopeLength - p.H/2

	blocked := false
	if w != nil {
		test := Rect{X: newX, Y: newY, W: p.W, H: p.H}
		blocked = len(w.QuerySolid(test)) > 0
	}
	if blocked {
		h.AngularVel *= h.tun.SwingBounceDamping
	} else {
		p.X = newX
		p.Y = newY
	}

	// Derive linear velocity from the pendulum so mode switches and
	// releases carry real momentum.
	p.VX = h.AngularVel * h.RopeLength * math.Cos(h.Angle)
	p.VY = -h.AngularVel * h.RopeLength * math.Sin(h.Angle)

	h.pullVel = p.Velocity()
}

// AddSwingImpulse nudges the swing; dir is -1 for left, +1 for right.
func (h *Hook) AddSwingImpulse(dir float64, dt float64) {
	if h == nil || h.State != HookAttached || h.Mode != ModeSwing {
		return
	}
	h.AngularVel += dir * h.tun.SwingImpulse * dt
}

// ShortenRope climbs toward the anchor.
func (h *Hook) ShortenRope(amount float64) {
	if h == nil || h.State != HookAttached || h.Mode != ModeSwing {
		return
	}
	h.RopeLength = math.Max(h.tun.MinRopeLength, h.RopeLength-amount)
}

// LengthenRope lets rope out, up to the hook's max range.
func (h *Hook) LengthenRope(amount float64) {
	if h == nil || h.State != HookAttached || h.Mode != ModeSwing {
		return
	}
	h.RopeLength = math.Min(h.tun.GrappleMaxRange, h.RopeLength+amount)
}
