package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/grapple/physics"
	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/room"
)

var (
	colorBackground = color.NRGBA{R: 0x14, G: 0x16, B: 0x22, A: 0xff}
	colorSolid      = color.NRGBA{R: 0x4a, G: 0x52, B: 0x68, A: 0xff}
	colorPlatform   = color.NRGBA{R: 0x6e, G: 0x5a, B: 0x3c, A: 0xff}
	colorHazard     = color.NRGBA{R: 0xc0, G: 0x3a, B: 0x3a, A: 0xff}
	colorExit       = color.NRGBA{R: 0x3a, G: 0x86, B: 0x4a, A: 0xff}
	colorGrapple    = color.NRGBA{R: 0xd8, G: 0xb4, B: 0x4a, A: 0xff}
	colorPlayer     = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff}
	colorHealth     = color.NRGBA{R: 0x58, G: 0xc0, B: 0x58, A: 0xff}
	colorHealthBack = color.NRGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}
)

// Renderer draws the whole frame from game state. All drawing is flat
// rects and lines; the prefab specs control rope and enemy styling.
type Renderer struct {
	ropeWidth float32
	ropeColor color.Color
	enemy     color.Color
}

func NewRenderer(grapple *prefabs.GrappleSpec, enemy *prefabs.EnemySpec) *Renderer {
	r := &Renderer{
		ropeWidth: 2,
		ropeColor: colorGrapple,
		enemy:     colorHazard,
	}
	if grapple != nil {
		if grapple.RopeWidth > 0 {
			r.ropeWidth = grapple.RopeWidth
		}
		if grapple.RopeColor != nil {
			r.ropeColor = grapple.RopeColor
		}
	}
	if enemy != nil && enemy.Color != nil {
		r.enemy = enemy.Color
	}
	return r
}

func (r *Renderer) Draw(screen *ebiten.Image, g *Game) {
	screen.Fill(colorBackground)

	camX, camY := g.camera.ViewTopLeft()
	zoom := float32(g.camera.Zoom())

	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(wx-camX) * zoom, float32(wy-camY) * zoom
	}

	r.drawRoom(screen, g.world.Current(), toScreen, zoom)

	for _, e := range g.enemies[g.world.Current().ID] {
		x, y := toScreen(e.X, e.Y)
		vector.DrawFilledRect(screen, x, y, float32(e.W)*zoom, float32(e.H)*zoom, r.enemy, false)
	}

	r.drawPlayer(screen, g, toScreen, zoom)
	r.drawHUD(screen, g)
}

func (r *Renderer) drawRoom(screen *ebiten.Image, rm *room.Room, toScreen func(float64, float64) (float32, float32), zoom float32) {
	size := float32(room.TileSize) * zoom

	for ty := 0; ty < rm.Height; ty++ {
		for tx := 0; tx < rm.Width; tx++ {
			var clr color.Color
			switch rm.TileAt(tx, ty) {
			case room.TileSolid:
				clr = colorSolid
			case room.TilePlatform:
				clr = colorPlatform
			case room.TileHazard:
				clr = colorHazard
			case room.TileExit:
				clr = colorExit
			case room.TileGrapple:
				clr = colorGrapple
			default:
				continue
			}

			x, y := toScreen(rm.WorldX+float64(tx*room.TileSize), rm.WorldY+float64(ty*room.TileSize))
			h := size
			if rm.TileAt(tx, ty) == room.TilePlatform {
				// Platforms read as thin ledges.
				h = size / 4
			}
			vector.DrawFilledRect(screen, x, y, size, h, clr, false)
		}
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, g *Game, toScreen func(float64, float64) (float32, float32), zoom float32) {
	p := g.player

	// Rope first so the player draws over it.
	if p.Hook.State != physics.HookInactive {
		end := p.Hook.Tip
		if p.Hook.State == physics.HookAttached {
			end = p.Hook.Anchor
		}
		cx, cy := toScreen(p.Center().X, p.Center().Y)
		ex, ey := toScreen(end.X, end.Y)
		vector.StrokeLine(screen, cx, cy, ex, ey, r.ropeWidth*zoom, r.ropeColor, true)
		vector.DrawFilledRect(screen, ex-3*zoom, ey-3*zoom, 6*zoom, 6*zoom, r.ropeColor, false)
	}

	// Blink while invincible.
	if p.Invincible() && !p.Rolling && (g.frames/4)%2 == 0 {
		return
	}

	x, y := p.X, p.Y
	w, h := p.W, p.H
	if p.Rolling {
		// Squash into a low tuck.
		h = p.H * 2 / 3
		y = p.Y + (p.H - h)
	}
	sx, sy := toScreen(x, y)
	vector.DrawFilledRect(screen, sx, sy, float32(w)*zoom, float32(h)*zoom, colorPlayer, false)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, g *Game) {
	p := g.player

	const barW, barH = 160, 12
	vector.DrawFilledRect(screen, 16, 16, barW, barH, colorHealthBack, false)
	if p.MaxHealth > 0 && p.Health > 0 {
		fill := float32(barW) * float32(p.Health) / float32(p.MaxHealth)
		vector.DrawFilledRect(screen, 16, 16, fill, barH, colorHealth, false)
	}
	text.Draw(screen, fmt.Sprintf("%d/%d", p.Health, p.MaxHealth), basicfont.Face7x13, 16+barW+8, 16+barH-1, colorPlayer)

	if g.debug {
		msg := fmt.Sprintf(
			"FPS: %.1f\nroom: %s\npos: %.1f, %.1f\nvel: %.1f, %.1f\nground: %v wall: %d\nhook: %s/%s",
			ebiten.ActualFPS(),
			g.world.Current().ID,
			p.X, p.Y, p.VX, p.VY,
			p.OnGround, p.WallDir,
			p.Hook.State, p.Hook.Mode,
		)
		ebitenutil.DebugPrintAt(screen, msg, 16, 40)
	}
}
