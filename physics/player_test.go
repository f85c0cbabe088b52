package physics

import (
	"math"
	"testing"
)

const testDT = 1.0 / 60.0

func flatWorld() *stubWorld {
	return &stubWorld{
		surfaces:  []Surface{surface(SurfaceSolid, 0, 100, 640, 32)},
		bounds:    Rect{X: 0, Y: -400, W: 640, H: 532},
		hasBounds: true,
	}
}

// standingPlayer returns a player settled on flatWorld's floor.
func standingPlayer(t *testing.T) (*Player, *stubWorld) {
	t.Helper()
	p := NewPlayer(100, 76, DefaultTuning())
	w := flatWorld()
	p.Update(testDT, Frame{}, w)
	if !p.OnGround {
		t.Fatalf("setup: player should be standing")
	}
	return p, w
}

func TestCoyoteJumpWindow(t *testing.T) {
	cases := []struct {
		name        string
		coyote      float64
		expectsJump bool
	}{
		{"well_inside_window", 0.05, true},
		{"one_tick_left", testDT + 1e-9, true},
		{"exactly_expired", testDT, false},
		{"expired", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayer(100, -200, DefaultTuning())
			w := flatWorld()
			p.coyoteTimer = c.coyote

			p.Update(testDT, Frame{Jump: true}, w)

			jumped := p.VY == p.tun.JumpVelocity
			if jumped != c.expectsJump {
				t.Fatalf("expected jump %v, got vy %v", c.expectsJump, p.VY)
			}
			if !c.expectsJump && p.jumpBufferTimer <= 0 {
				t.Fatalf("a denied jump press should be buffered")
			}
		})
	}
}

func TestJumpBufferFiresOnLanding(t *testing.T) {
	tun := DefaultTuning()
	p := NewPlayer(100, 40, tun)
	p.VY = 500
	w := flatWorld()

	// Press while still airborne; the press is buffered, not dropped.
	p.Update(testDT, Frame{Jump: true}, w)
	if p.jumpBufferTimer <= 0 {
		t.Fatalf("airborne press should buffer")
	}

	jumped := false
	for i := 0; i < 10; i++ {
		p.Update(testDT, Frame{}, w)
		if p.VY == tun.JumpVelocity {
			jumped = true
			break
		}
	}

	if !jumped {
		t.Fatalf("buffered jump never fired, vy %v y %v", p.VY, p.Y)
	}
	if p.jumpBufferTimer != 0 {
		t.Fatalf("buffer should clear once consumed, got %v", p.jumpBufferTimer)
	}
}

func TestJumpCutAppliesOncePerPress(t *testing.T) {
	p, w := standingPlayer(t)
	tun := p.Tuning()

	p.Update(testDT, Frame{Jump: true}, w)
	if p.VY != tun.JumpVelocity {
		t.Fatalf("expected full jump velocity, got %v", p.VY)
	}

	// Release while rising: cut exactly once.
	p.Update(testDT, Frame{}, w)
	cut := (tun.JumpVelocity + tun.Gravity*testDT) * 0.5
	if math.Abs(p.VY-cut) > 1e-9 {
		t.Fatalf("expected cut vy %v, got %v", cut, p.VY)
	}

	// Still released and still rising: only gravity from here.
	p.Update(testDT, Frame{}, w)
	expected := cut + tun.Gravity*testDT
	if math.Abs(p.VY-expected) > 1e-9 {
		t.Fatalf("second release frame must not cut again, expected %v got %v", expected, p.VY)
	}
}

func TestRollStartsAndEnds(t *testing.T) {
	p, w := standingPlayer(t)
	tun := p.Tuning()

	p.Update(testDT, Frame{Roll: true, Left: true}, w)

	if !p.Rolling {
		t.Fatalf("expected roll to start")
	}
	if p.VX != -tun.RollSpeed {
		t.Fatalf("expected roll vx %v, got %v", -tun.RollSpeed, p.VX)
	}
	if p.FacingRight {
		t.Fatalf("rolling left should face left")
	}

	// Holding roll does not restart it; the roll runs out on its own timer.
	for i := 0; i < 30 && p.Rolling; i++ {
		p.Update(testDT, Frame{Roll: true}, w)
	}
	if p.Rolling {
		t.Fatalf("roll never ended")
	}
	if math.Abs(p.VX) >= tun.RollSpeed {
		t.Fatalf("roll end should shed speed, got vx %v", p.VX)
	}
	if p.rollCooldown <= 0 {
		t.Fatalf("expected cooldown after roll")
	}
}

func TestRollIFrames(t *testing.T) {
	p, w := standingPlayer(t)

	p.Update(testDT, Frame{Roll: true, Right: true}, w)
	if !p.Rolling {
		t.Fatalf("expected roll to start")
	}

	if p.Damage(25, 0, 0) {
		t.Fatalf("hit during roll i-frames should be rejected")
	}
	if p.Health != 100 {
		t.Fatalf("rejected hit must not drain health, got %d", p.Health)
	}

	// Past the i-frame window but still rolling: hits land again.
	p.rollTimer = p.tun.RollIFrames + 0.01
	if !p.Damage(25, 0, 0) {
		t.Fatalf("hit after i-frame window should land")
	}
	if p.Health != 75 {
		t.Fatalf("expected health 75, got %d", p.Health)
	}
	if p.Rolling {
		t.Fatalf("a landed hit cancels the roll")
	}
}

func TestDamage(t *testing.T) {
	t.Run("knockback_and_invincibility", func(t *testing.T) {
		p := NewPlayer(100, 76, DefaultTuning())

		if !p.Damage(25, 50, -100) {
			t.Fatalf("first hit should land")
		}
		if p.Health != 75 {
			t.Fatalf("expected health 75, got %d", p.Health)
		}
		if p.VX != 50 || p.VY != -300 {
			t.Fatalf("expected knockback (50, -300), got (%v, %v)", p.VX, p.VY)
		}
		if !p.Invincible() {
			t.Fatalf("landed hit should start invincibility")
		}
		if p.Damage(25, 0, 0) {
			t.Fatalf("hit during invincibility should be rejected")
		}
	})

	t.Run("lethal", func(t *testing.T) {
		p := NewPlayer(100, 76, DefaultTuning())

		p.Damage(1000, 0, 0)
		if !p.Dead || p.Health != 0 {
			t.Fatalf("expected death at zero health, got dead=%v health=%d", p.Dead, p.Health)
		}
	})
}

func TestHazardContact(t *testing.T) {
	p := NewPlayer(100, 76, DefaultTuning())
	w := flatWorld()
	w.surfaces = append(w.surfaces, surface(SurfaceHazard, 100, 76, 32, 32))

	p.Update(testDT, Frame{}, w)

	if p.Health != 100-p.tun.HazardDamage {
		t.Fatalf("expected hazard damage, health %d", p.Health)
	}
	if p.VY != -300-p.tun.KnockbackLiftY {
		t.Fatalf("expected hazard knockback vy %v, got %v", -300-p.tun.KnockbackLiftY, p.VY)
	}
	if !p.Invincible() {
		t.Fatalf("hazard hit should start invincibility")
	}
}

func TestWallSlideAndWallJump(t *testing.T) {
	tun := DefaultTuning()
	w := &stubWorld{surfaces: []Surface{surface(SurfaceSolid, 124, -200, 32, 400)}}

	p := NewPlayer(100, 0, tun)
	p.VY = 200

	p.Update(testDT, Frame{Right: true}, w)

	if p.WallDir != 1 {
		t.Fatalf("expected wall on the right, got %d", p.WallDir)
	}
	if p.VY != tun.WallSlideSpeed {
		t.Fatalf("expected slide speed %v, got %v", tun.WallSlideSpeed, p.VY)
	}

	p.Update(testDT, Frame{Right: true, Jump: true}, w)

	if p.VX != -tun.WallJumpVelocityX {
		t.Fatalf("expected wall jump vx %v, got %v", -tun.WallJumpVelocityX, p.VX)
	}
	if p.VY != tun.WallJumpVelocityY {
		t.Fatalf("expected wall jump vy %v, got %v", tun.WallJumpVelocityY, p.VY)
	}
	if !p.wallJumpLocked {
		t.Fatalf("wall jump should lock wall detection")
	}
	if p.FacingRight {
		t.Fatalf("jumping off a right wall should face left")
	}
}

func TestDropThroughPlatform(t *testing.T) {
	w := &stubWorld{surfaces: []Surface{surface(SurfacePlatform, 0, 100, 640, 8)}}
	p := NewPlayer(100, 76, DefaultTuning())

	p.Update(testDT, Frame{}, w)
	if !p.OnGround {
		t.Fatalf("setup: player should rest on the platform")
	}

	p.Update(testDT, Frame{Down: true}, w)
	if p.OnGround {
		t.Fatalf("down should drop through the platform")
	}

	for i := 0; i < 5; i++ {
		p.Update(testDT, Frame{Down: true}, w)
	}
	if p.Y <= 76 {
		t.Fatalf("expected to fall below the platform, y %v", p.Y)
	}
}

func TestTransitionFreeze(t *testing.T) {
	p, w := standingPlayer(t)

	p.Hook.State = HookAttached
	p.BeginTransition(DirRight)

	if !p.Frozen() {
		t.Fatalf("expected frozen during transition")
	}
	if p.VX != 0 || p.VY != 0 {
		t.Fatalf("transition should zero velocity, got (%v, %v)", p.VX, p.VY)
	}
	if p.Hook.State != HookInactive {
		t.Fatalf("transition should cancel the hook")
	}

	oldX := p.X
	p.Update(testDT, Frame{Jump: true, Left: true}, w)

	if math.Abs(p.X-(oldX+transitionSpeed*testDT)) > 1e-9 {
		t.Fatalf("expected slide to %v, got %v", oldX+transitionSpeed*testDT, p.X)
	}
	if p.VY != 0 {
		t.Fatalf("input must be ignored while frozen, vy %v", p.VY)
	}

	p.EndTransition()
	if p.Frozen() {
		t.Fatalf("expected unfrozen after transition")
	}
}

func TestGrappleFireAndRelease(t *testing.T) {
	tun := DefaultTuning()
	w := &stubWorld{surfaces: []Surface{surface(SurfaceSolid, 300, 0, 32, 200)}}
	p := NewPlayer(100, 88, tun)
	p.VY = 0

	// Fresh press fires toward the aim point.
	p.Update(testDT, Frame{Grapple: true, AimX: 320, AimY: 100}, w)
	if p.Hook.State == HookInactive {
		t.Fatalf("expected hook in flight or attached")
	}

	// Hold until attached.
	for i := 0; i < 10 && p.Hook.State == HookFiring; i++ {
		p.Update(testDT, Frame{Grapple: true, AimX: 320, AimY: 100}, w)
	}
	if p.Hook.State != HookAttached {
		t.Fatalf("hook never attached, state %v", p.Hook.State)
	}

	// Release applies the boost and drops the hook.
	p.Update(testDT, Frame{}, w)
	if p.Hook.State != HookInactive {
		t.Fatalf("expected release on button up, got %v", p.Hook.State)
	}
	if p.VX <= 0 {
		t.Fatalf("release boost should carry momentum toward the anchor, vx %v", p.VX)
	}
}
