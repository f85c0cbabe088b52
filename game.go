package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/grapple/physics"
	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/room"
	"github.com/milk9111/grapple/rooms"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	fixedDT = 1.0 / 60.0
)

type Game struct {
	frames int
	debug  bool

	input    *Input
	player   *physics.Player
	world    *room.Manager
	camera   *Camera
	renderer *Renderer

	playerSpec  *prefabs.PlayerSpec
	grappleSpec *prefabs.GrappleSpec
	enemySpec   *prefabs.EnemySpec

	// enemies are spawned lazily per room and persist while the game runs.
	enemies map[string][]*Walker

	watcher *prefabs.Watcher
}

func NewGame(debug bool) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	grappleSpec, err := prefabs.LoadGrappleSpec()
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		log.Printf("camera spec: %v (using defaults)", err)
	}

	world, err := room.LoadWorld(rooms.FS(), rooms.WorldFile)
	if err != nil {
		return nil, err
	}

	tun := buildTuning(playerSpec, grappleSpec)

	sx, sy := world.Current().SpawnWorld()
	player := physics.NewPlayer(sx, sy, tun)
	applyPlayerSpec(player, playerSpec)

	camera := NewCamera(baseWidth, baseHeight, cameraSpec)
	camera.SetBounds(world.Current().Bounds())
	camera.SnapTo(player.Center().X, player.Center().Y)

	g := &Game{
		debug:       debug,
		player:      player,
		world:       world,
		camera:      camera,
		renderer:    NewRenderer(grappleSpec, enemySpec),
		playerSpec:  playerSpec,
		grappleSpec: grappleSpec,
		enemySpec:   enemySpec,
		enemies:     map[string][]*Walker{},
	}
	g.input = NewInput(camera)
	g.spawnEnemies(world.Current())

	// Hot reload is best-effort: the watch dirs only exist when running
	// from a source checkout.
	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "rooms"); err == nil {
		g.watcher = w
	} else {
		log.Printf("hot reload disabled: %v", err)
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainReloads()

	in := g.input.Frame()

	if g.player.Frozen() {
		g.player.Update(fixedDT, in, g.world)
		g.camera.Update(g.player.Center().X, g.player.Center().Y, fixedDT)
		if !g.camera.Panning() && g.player.TransitionDone() {
			g.player.EndTransition()
		}
		return nil
	}

	g.player.Update(fixedDT, in, g.world)

	cur := g.world.Current().ID
	for _, e := range g.enemies[cur] {
		e.Update(fixedDT, g.world, g.player, g.player.Tuning())
	}
	g.enemies[cur] = livingWalkers(g.enemies[cur])

	if g.checkTransition() {
		return nil
	}

	g.camera.Update(g.player.Center().X, g.player.Center().Y, fixedDT)

	if g.player.Dead {
		g.respawn()
	}
	return nil
}

// checkTransition hands the player to a neighboring room, either because
// the body's center crossed the seam or an exit tile was touched.
func (g *Game) checkTransition() bool {
	var (
		next *room.Room
		dir  physics.Direction
	)

	if r, d, ok := g.world.CheckTransition(g.player.Rect()); ok {
		next, dir = r, d
	} else if g.player.OnExit {
		if r, ok := g.world.AdjacentRoom(g.player.ExitDir); ok {
			next, dir = r, g.player.ExitDir
		}
	}
	if next == nil {
		return false
	}

	if err := g.world.SetCurrent(next.ID); err != nil {
		log.Printf("transition: %v", err)
		return false
	}

	g.player.BeginTransition(dir)
	g.spawnEnemies(next)
	g.camera.PanTo(g.player.Center().X, g.player.Center().Y, next.Bounds())
	return true
}

func (g *Game) spawnEnemies(r *room.Room) {
	if _, ok := g.enemies[r.ID]; ok {
		return
	}

	var ws []*Walker
	for _, sp := range r.Enemies {
		if sp.Kind != g.enemySpec.Name {
			log.Printf("room %s: unknown enemy kind %q", r.ID, sp.Kind)
			continue
		}
		x := r.WorldX + float64(sp.X*room.TileSize)
		y := r.WorldY + float64(sp.Y*room.TileSize)
		w, err := NewWalker(x, y, g.enemySpec, g.player.Tuning())
		if err != nil {
			log.Printf("room %s: %v", r.ID, err)
			continue
		}
		ws = append(ws, w)
	}
	g.enemies[r.ID] = ws
}

func livingWalkers(ws []*Walker) []*Walker {
	out := ws[:0]
	for _, w := range ws {
		if !w.Dead {
			out = append(out, w)
		}
	}
	return out
}

func (g *Game) respawn() {
	start := g.world.Current()
	sx, sy := start.SpawnWorld()

	tun := g.player.Tuning()
	g.player = physics.NewPlayer(sx, sy, tun)
	applyPlayerSpec(g.player, g.playerSpec)
	g.camera.SnapTo(g.player.Center().X, g.player.Center().Y)
}

// drainReloads applies any pending prefab, script or room edits.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("reload: %s", name)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("watch: %v", err)
		default:
			if reload {
				g.reload()
			}
			return
		}
	}
}

func (g *Game) reload() {
	if ps, err := prefabs.LoadPlayerSpec(); err == nil {
		g.playerSpec = ps
	} else {
		log.Printf("reload player spec: %v", err)
	}
	if gs, err := prefabs.LoadGrappleSpec(); err == nil {
		g.grappleSpec = gs
	} else {
		log.Printf("reload grapple spec: %v", err)
	}
	if es, err := prefabs.LoadEnemySpec(); err == nil {
		g.enemySpec = es
	} else {
		log.Printf("reload enemy spec: %v", err)
	}

	g.player.SetTuning(buildTuning(g.playerSpec, g.grappleSpec))
	g.renderer = NewRenderer(g.grappleSpec, g.enemySpec)

	// Rebuild enemies so script and spec edits take effect.
	g.enemies = map[string][]*Walker{}
	g.spawnEnemies(g.world.Current())

	if world, err := room.LoadWorld(rooms.FS(), rooms.WorldFile); err == nil {
		cur := g.world.Current().ID
		if err := world.SetCurrent(cur); err == nil {
			g.world = world
		} else {
			log.Printf("reload rooms: %v", err)
		}
	} else {
		log.Printf("reload rooms: %v", err)
	}
}

// buildTuning merges the yaml tuning sheets into the movement core's
// constants.
func buildTuning(p *prefabs.PlayerSpec, gr *prefabs.GrappleSpec) physics.Tuning {
	tun := physics.DefaultTuning()
	if p != nil {
		tun.Gravity = p.Gravity
		tun.TerminalVelocity = p.TerminalVelocity
		tun.MoveSpeed = p.MoveSpeed
		tun.GroundAccel = p.GroundAccel
		tun.GroundDecel = p.GroundDecel
		tun.AirAccel = p.AirAccel
		tun.AirDecel = p.AirDecel
		tun.SprintMultiplier = p.SprintMultiplier
		tun.JumpVelocity = p.JumpVelocity
		tun.CoyoteTime = p.CoyoteTime
		tun.JumpBufferTime = p.JumpBufferTime
		tun.WallSlideSpeed = p.WallSlideSpeed
		tun.WallJumpVelocityX = p.WallJumpVelocityX
		tun.WallJumpVelocityY = p.WallJumpVelocityY
		tun.WallJumpLockTime = p.WallJumpLockTime
		tun.RollSpeed = p.RollSpeed
		tun.RollDuration = p.RollDuration
		tun.RollCooldown = p.RollCooldown
		tun.RollIFrames = p.RollIFrames
		tun.HazardDamage = p.HazardDamage
		tun.InvincibleTime = p.InvincibleTime
		tun.KnockbackLiftY = p.KnockbackLiftY
	}
	if gr != nil {
		tun.GrappleFireSpeed = gr.FireSpeed
		tun.GrappleMaxRange = gr.MaxRange
		tun.GrapplePullForce = gr.PullForce
		tun.GrapplePullMaxSpeed = gr.PullMaxSpeed
		tun.GrappleMinPullDist = gr.MinPullDist
		tun.GrappleMinFireDist = gr.MinFireDist
		tun.GrappleReleaseBoost = gr.ReleaseBoost
		tun.PreferredRopeLength = gr.PreferredRopeLength
		tun.MinRopeLength = gr.MinRopeLength
		tun.RopeAdjustSpeed = gr.RopeAdjustSpeed
		tun.SwingImpulse = gr.SwingImpulse
		tun.SwingDamping = gr.SwingDamping
		tun.SwingBounceDamping = gr.SwingBounceDamping
	}
	return tun
}

func applyPlayerSpec(p *physics.Player, spec *prefabs.PlayerSpec) {
	if spec == nil {
		return
	}
	if spec.Width > 0 {
		p.W = spec.Width
	}
	if spec.Height > 0 {
		p.H = spec.Height
	}
	if spec.Health > 0 {
		p.Health = spec.Health
		p.MaxHealth = spec.Health
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
