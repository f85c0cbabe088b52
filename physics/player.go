package physics

import "math"

const (
	// transitionSlide is how far a frozen player drifts into the next room
	// during a transition, and transitionSpeed how fast.
	transitionSlide = 200.0
	transitionSpeed = 150.0

	// rollUpKick is the small vertical boost when a roll starts.
	rollUpKick = -80.0
	// rollMomentum is the horizontal velocity fraction kept when a roll ends.
	rollMomentum = 0.6
	// rollGravityScale slows gravity while rolling.
	rollGravityScale = 0.4
)

// Player is the top-level movement controller: ground/air locomotion,
// jumping with coyote time and input buffering, wall slide/jump, roll with
// i-frames, and the grappling hook. One Update call per frame; the
// collision context is passed in explicitly so room swaps are a visible
// state change.
type Player struct {
	Body

	tun      Tuning
	resolver Resolver

	Hook *Hook

	OnGround bool
	// WallDir is -1 when touching a wall on the left, +1 on the right.
	WallDir int

	FacingRight bool
	Sprinting   bool

	Health    int
	MaxHealth int
	Dead      bool

	// OnExit and ExitDir are set while the player touches an exit surface.
	OnExit  bool
	ExitDir Direction

	Rolling bool
	rollDir float64

	// Timers, all counted down and clamped at zero each frame.
	coyoteTimer       float64
	jumpBufferTimer   float64
	wallJumpLockTimer float64
	rollTimer         float64
	rollCooldown      float64
	invincibleTimer   float64

	wallJumpLocked bool
	dropThrough    bool

	// Previous-frame holds for edge detection.
	jumpHeld    bool
	rollHeld    bool
	grappleHeld bool
	// jumpCutDone guards the variable-height cut so it applies at most once
	// per press.
	jumpCutDone bool

	frozen        bool
	transitionDir Direction
	transitionRem float64
}

// NewPlayer creates a player at the given top-left position.
func NewPlayer(x, y float64, tun Tuning) *Player {
	return &Player{
		Body:        Body{X: x, Y: y, W: 24, H: 24},
		tun:         tun,
		resolver:    NewResolver(tun),
		Hook:        NewHook(tun),
		FacingRight: true,
		Health:      100,
		MaxHealth:   100,
	}
}

// Tuning returns the tuning the player runs on.
func (p *Player) Tuning() Tuning { return p.tun }

// SetTuning swaps the tuning in place. Used for hot reload; live timers keep
// their current values and pick up the new limits from the next frame.
func (p *Player) SetTuning(tun Tuning) {
	if p == nil {
		return
	}
	p.tun = tun
	p.resolver = NewResolver(tun)
	p.Hook.tun = tun
}

// Invincible reports whether damage is currently rejected: either the
// post-hit window or the i-frame portion of an active roll.
func (p *Player) Invincible() bool {
	if p == nil {
		return false
	}
	return p.invincibleTimer > 0 || (p.Rolling && p.rollTimer < p.tun.RollIFrames)
}

// Frozen reports whether the player is locked for a room transition.
func (p *Player) Frozen() bool { return p != nil && p.frozen }

// TransitionDone reports whether the transition slide has covered its
// distance. The caller decides when to unfreeze.
func (p *Player) TransitionDone() bool { return p == nil || p.transitionRem <= 0 }

// CoyoteTimer exposes the remaining coyote window; used by the HUD.
func (p *Player) CoyoteTimer() float64 { return p.coyoteTimer }

// BeginTransition freezes the player for a room handoff: velocity is
// zeroed and any in-flight roll or grapple is cancelled so nothing keeps
// resolving against the outgoing room.
func (p *Player) BeginTransition(dir Direction) {
	if p == nil {
		return
	}
	p.frozen = true
	p.transitionDir = dir
	p.transitionRem = transitionSlide
	p.Hook.Cancel()
	p.VX = 0
	p.VY = 0
	p.Rolling = false
}

// EndTransition unfreezes the player once the new room is active.
func (p *Player) EndTransition() {
	if p == nil {
		return
	}
	p.frozen = false
	p.transitionDir = DirNone
}

// Update advances the player one frame. dt is clamped to the tuning's
// maximum step; w may be nil, in which case the player falls unobstructed.
func (p *Player) Update(dt float64, in Frame, w World) {
	if p == nil {
		return
	}

	if p.frozen {
		p.slideTransition(dt)
		return
	}

	dt = math.Min(dt, p.tun.MaxDelta)

	p.invincibleTimer = math.Max(0, p.invincibleTimer-dt)
	p.wallJumpLockTimer = math.Max(0, p.wallJumpLockTimer-dt)
	p.rollCooldown = math.Max(0, p.rollCooldown-dt)
	if p.wallJumpLockTimer <= 0 {
		p.wallJumpLocked = false
	}

	p.Sprinting = in.Sprint

	p.handleGrapple(dt, in, w)

	switch {
	case p.Rolling:
		p.updateRoll(dt, w)
	case p.Hook.State == HookAttached:
		p.updateGrappling(dt, in, w)
	case in.Roll && !p.rollHeld && p.rollCooldown <= 0 && p.OnGround:
		p.startRoll(in)
	default:
		p.updateNormal(dt, in, w)
	}

	p.grappleHeld = in.Grapple
	p.rollHeld = in.Roll
}

func (p *Player) slideTransition(dt float64) {
	if p.transitionRem <= 0 {
		return
	}
	move := transitionSpeed * dt
	switch p.transitionDir {
	case DirRight:
		p.X += move
	case DirLeft:
		p.X -= move
	case DirDown:
		p.Y += move
	case DirUp:
		p.Y -= move
	}
	p.transitionRem -= move
}

// handleGrapple fires on a fresh press, releases or cancels on release,
// and keeps a firing hook flying.
func (p *Player) handleGrapple(dt float64, in Frame, w World) {
	if in.Grapple && !p.grappleHeld {
		if p.Hook.State == HookInactive && !p.Rolling {
			p.Hook.Fire(p.Center(), vec(in.AimX, in.AimY))
		}
	}

	if !in.Grapple && p.grappleHeld {
		switch p.Hook.State {
		case HookAttached:
			p.SetVelocity(p.Hook.Release())
		case HookFiring:
			p.Hook.Cancel()
		}
	}

	if p.Hook.State == HookFiring {
		p.Hook.Update(dt, p, w)
	}
}

func (p *Player) startRoll(in Frame) {
	p.Rolling = true
	p.rollTimer = 0
	p.rollCooldown = p.tun.RollCooldown

	switch {
	case in.Left:
		p.rollDir = -1
		p.FacingRight = false
	case in.Right:
		p.rollDir = 1
		p.FacingRight = true
	case p.FacingRight:
		p.rollDir = 1
	default:
		p.rollDir = -1
	}

	p.VX = p.rollDir * p.tun.RollSpeed
	p.VY = rollUpKick
}

func (p *Player) updateRoll(dt float64, w World) {
	p.rollTimer += dt

	if p.rollTimer >= p.tun.RollDuration {
		p.Rolling = false
		p.VX *= rollMomentum
		return
	}

	// Roll speed is held, not decelerated, and gravity is reduced.
	p.VX = p.rollDir * p.tun.RollSpeed
	p.VY = ApplyGravity(p.VY, p.tun.Gravity, p.tun.TerminalVelocity, dt*rollGravityScale)
	p.WallDir = 0

	p.move(dt, w)
}

// updateGrappling hands movement to the hook. Down selects swing, and in
// swing mode left/right add angular impulse while up/down work the rope.
func (p *Player) updateGrappling(dt float64, in Frame, w World) {
	if in.Down {
		p.Hook.SetMode(ModeSwing)
	} else {
		p.Hook.SetMode(ModePull)
	}

	p.Hook.Update(dt, p, w)

	if p.Hook.Mode == ModeSwing {
		if in.Left {
			p.Hook.AddSwingImpulse(-1, dt)
		}
		if in.Right {
			p.Hook.AddSwingImpulse(1, dt)
		}
		if in.Up {
			p.Hook.ShortenRope(p.tun.RopeAdjustSpeed * dt)
		}
		if in.Down {
			p.Hook.LengthenRope(p.tun.RopeAdjustSpeed * dt)
		}
	}

	p.OnGround = false
	p.WallDir = 0
	p.move(dt, w)
}

func (p *Player) updateNormal(dt float64, in Frame, w World) {
	moveInput := in.MoveX()
	if moveInput != 0 {
		p.FacingRight = moveInput > 0
	}

	p.dropThrough = in.Down

	p.applyHorizontal(moveInput, dt)

	// Wall contact only matters airborne, and a fresh wall jump locks
	// detection so the player can't immediately re-stick.
	p.WallDir = 0
	if !p.OnGround && !p.wallJumpLocked {
		if p.resolver.TouchingWall(&p.Body, w, DirLeft) {
			p.WallDir = -1
		} else if p.resolver.TouchingWall(&p.Body, w, DirRight) {
			p.WallDir = 1
		}
	}

	if p.WallDir != 0 && p.VY > 0 {
		p.VY = math.Min(p.VY+p.tun.Gravity*0.1*dt, p.tun.WallSlideSpeed)
	} else {
		p.VY = ApplyGravity(p.VY, p.tun.Gravity, p.tun.TerminalVelocity, dt)
	}

	if p.OnGround {
		p.coyoteTimer = p.tun.CoyoteTime
		p.jumpCutDone = false
		p.wallJumpLocked = false
	} else {
		p.coyoteTimer = math.Max(0, p.coyoteTimer-dt)
	}
	p.jumpBufferTimer = math.Max(0, p.jumpBufferTimer-dt)

	p.handleJump(in)

	p.move(dt, w)
}

func (p *Player) applyHorizontal(moveInput, dt float64) {
	speed := p.tun.MoveSpeed
	if p.Sprinting && p.OnGround {
		speed *= p.tun.SprintMultiplier
	}
	target := moveInput * speed

	switch {
	case p.OnGround && moveInput != 0:
		p.VX = Approach(p.VX, target, p.tun.GroundAccel*dt)
	case p.OnGround:
		p.VX = Approach(p.VX, 0, p.tun.GroundDecel*dt)
	case moveInput != 0:
		p.VX = Approach(p.VX, target, p.tun.AirAccel*dt)
	default:
		p.VX = Approach(p.VX, 0, p.tun.AirDecel*dt)
	}

	if math.Abs(p.VX) < 0.5 {
		p.VX = 0
	}
}

func (p *Player) handleJump(in Frame) {
	if in.Jump {
		if !p.jumpHeld {
			p.jumpHeld = true
			p.jumpCutDone = false

			switch {
			case p.canJump():
				p.doJump()
			case p.WallDir != 0:
				p.doWallJump()
			default:
				p.jumpBufferTimer = p.tun.JumpBufferTime
			}
		}
	} else {
		if p.jumpHeld && p.VY < 0 && !p.jumpCutDone {
			// Variable jump height: cut once per press.
			p.VY *= 0.5
			p.jumpCutDone = true
		}
		p.jumpHeld = false
	}

	if p.jumpBufferTimer > 0 {
		if p.OnGround {
			p.doJump()
			p.jumpBufferTimer = 0
		} else if p.WallDir != 0 {
			p.doWallJump()
			p.jumpBufferTimer = 0
		}
	}
}

func (p *Player) canJump() bool {
	return p.OnGround || p.coyoteTimer > 0
}

func (p *Player) doJump() {
	p.VY = p.tun.JumpVelocity
	p.OnGround = false
	p.coyoteTimer = 0
}

func (p *Player) doWallJump() {
	p.VX = -float64(p.WallDir) * p.tun.WallJumpVelocityX
	p.VY = p.tun.WallJumpVelocityY
	p.OnGround = false
	p.coyoteTimer = 0
	p.FacingRight = p.VX > 0
	p.wallJumpLocked = true
	p.wallJumpLockTimer = p.tun.WallJumpLockTime
	p.WallDir = 0
}

// move runs the swept resolver and the hazard/exit scan. The scan runs in
// every mode so i-frames and exits behave the same mid-roll or mid-swing.
func (p *Player) move(dt float64, w World) {
	c := p.resolver.Move(&p.Body, dt, w, p.dropThrough)
	p.OnGround = c.OnGround

	o := p.resolver.Scan(&p.Body, w)
	if o.Hazard {
		p.Damage(p.tun.HazardDamage, 0, -300)
	}
	p.OnExit = o.ExitDir != DirNone
	p.ExitDir = o.ExitDir
}

// Damage applies a hit unless the player is invincible. A landed hit
// starts the invincibility window, knocks the player back, and
// force-cancels any roll or grapple. Returns whether the hit landed.
func (p *Player) Damage(amount int, knockbackX, knockbackY float64) bool {
	if p == nil || p.Invincible() {
		return false
	}

	p.Health -= amount
	p.invincibleTimer = p.tun.InvincibleTime
	if p.Health <= 0 {
		p.Health = 0
		p.Dead = true
	}

	p.VX = knockbackX
	p.VY = knockbackY - p.tun.KnockbackLiftY

	p.Rolling = false
	p.Hook.Cancel()
	return true
}
