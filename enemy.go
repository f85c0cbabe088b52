package main

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/grapple/physics"
	"github.com/milk9111/grapple/prefabs"
)

// rollDamage is what a rolling player deals on contact.
const rollDamage = 25

// walkerHitCooldown keeps one roll from shredding a walker in a single
// overlap.
const walkerHitCooldown = 0.5

// Walker is the ground patroller. Its steering lives in a tengo script so
// behavior can be tweaked without a rebuild; the script gets sensor inputs
// each tick and answers with a walk direction.
type Walker struct {
	physics.Body

	spec     *prefabs.EnemySpec
	resolver physics.Resolver
	brain    *tengo.Compiled

	facing      float64
	Health      int
	Dead        bool
	hitCooldown float64
}

func NewWalker(x, y float64, spec *prefabs.EnemySpec, tun physics.Tuning) (*Walker, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("enemy: load script %s: %w", spec.Script, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("facing", 1.0)
	_ = script.Add("wall_ahead", false)
	_ = script.Add("edge_ahead", false)
	_ = script.Add("player_dx", 0.0)
	_ = script.Add("player_dy", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("enemy: compile %s: %w", spec.Script, err)
	}

	return &Walker{
		Body:     physics.Body{X: x, Y: y, W: spec.Width, H: spec.Height},
		spec:     spec,
		resolver: physics.NewResolver(tun),
		brain:    compiled,
		facing:   1,
		Health:   spec.Health,
	}, nil
}

// Update steers the walker from its script, moves it, and resolves player
// contact. tun is the live physics tuning for gravity.
func (e *Walker) Update(dt float64, w physics.World, p *physics.Player, tun physics.Tuning) {
	if e == nil || e.Dead {
		return
	}

	if e.hitCooldown > 0 {
		e.hitCooldown -= dt
	}

	e.think(w, p)

	e.VY = physics.ApplyGravity(e.VY, tun.Gravity, tun.TerminalVelocity, dt)
	e.resolver.Move(&e.Body, dt, w, false)

	e.touchPlayer(p)
}

func (e *Walker) think(w physics.World, p *physics.Player) {
	dir := physics.DirRight
	if e.facing < 0 {
		dir = physics.DirLeft
	}
	wallAhead := e.resolver.TouchingWall(&e.Body, w, dir)
	edgeAhead := e.edgeAhead(w)

	var dx, dy float64
	if p != nil {
		pc := p.Center()
		ec := e.Center()
		dx = pc.X - ec.X
		dy = pc.Y - ec.Y
	}

	_ = e.brain.Set("facing", e.facing)
	_ = e.brain.Set("wall_ahead", wallAhead)
	_ = e.brain.Set("edge_ahead", edgeAhead)
	_ = e.brain.Set("player_dx", dx)
	_ = e.brain.Set("player_dy", dy)

	if err := e.brain.Run(); err != nil {
		log.Printf("enemy: %s script error: %v", e.spec.Name, err)
		e.VX = 0
		return
	}

	moveDir := e.brain.Get("move_dir").Float()
	if moveDir != 0 {
		e.facing = physics.Sign(moveDir)
	}
	e.VX = moveDir * e.spec.MoveSpeed
}

// edgeAhead probes for floor just past the leading foot.
func (e *Walker) edgeAhead(w physics.World) bool {
	if w == nil {
		return false
	}

	probe := physics.Rect{Y: e.Y + e.H, W: 4, H: 8}
	if e.facing >= 0 {
		probe.X = e.X + e.W
	} else {
		probe.X = e.X - probe.W
	}

	for _, s := range w.QueryAll(probe) {
		if s.Kind == physics.SurfaceSolid || s.Kind == physics.SurfacePlatform {
			return false
		}
	}
	return true
}

func (e *Walker) touchPlayer(p *physics.Player) {
	if p == nil || p.Dead || !e.Rect().Overlaps(p.Rect()) {
		return
	}

	// A rolling player wins the exchange.
	if p.Rolling {
		if e.hitCooldown <= 0 {
			e.Health -= rollDamage
			e.hitCooldown = walkerHitCooldown
			if e.Health <= 0 {
				e.Dead = true
			}
		}
		return
	}

	kb := e.spec.KnockbackX
	if p.Center().X < e.Center().X {
		kb = -kb
	}
	p.Damage(e.spec.ContactDamage, kb, -e.spec.KnockbackY)
}
