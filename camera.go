package main

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/grapple/common"
	"github.com/milk9111/grapple/physics"
	"github.com/milk9111/grapple/prefabs"
)

// Camera keeps the view centered on the player, clamped to the active
// room. Room transitions pan the view instead of cutting.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
	smooth  float64
	panTime float64

	bounds    physics.Rect
	hasBounds bool

	panX *gween.Tween
	panY *gween.Tween
}

func NewCamera(screenW, screenH int, spec *prefabs.CameraSpec) *Camera {
	c := &Camera{
		screenW: screenW,
		screenH: screenH,
		zoom:    1,
		smooth:  0.15,
		panTime: 0.45,
	}
	if spec != nil {
		if spec.Zoom > 0 {
			c.zoom = spec.Zoom
		}
		if spec.Smoothness > 0 {
			c.smooth = spec.Smoothness
		}
		if spec.PanTime > 0 {
			c.panTime = spec.PanTime
		}
	}
	return c
}

// SetBounds clamps the view to the given world-space rect.
func (c *Camera) SetBounds(b physics.Rect) {
	c.bounds = b
	c.hasBounds = true
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// Panning reports whether a transition pan is in flight.
func (c *Camera) Panning() bool {
	return c.panX != nil || c.panY != nil
}

// PanTo eases the camera to a new center, used when the active room swaps.
// The new bounds take effect once the pan lands so the clamp can't snap the
// view mid-flight.
func (c *Camera) PanTo(x, y float64, newBounds physics.Rect) {
	tx, ty := clampCenter(x, y, newBounds, c.viewSize())
	c.panX = gween.New(float32(c.PosX), float32(tx), float32(c.panTime), ease.OutQuad)
	c.panY = gween.New(float32(c.PosY), float32(ty), float32(c.panTime), ease.OutQuad)
	c.bounds = newBounds
	c.hasBounds = false
}

// Update advances the pan or follows the target. Call once per fixed step.
func (c *Camera) Update(targetX, targetY float64, dt float64) {
	if c.Panning() {
		x, doneX := c.panX.Update(float32(dt))
		y, doneY := c.panY.Update(float32(dt))
		c.PosX = float64(x)
		c.PosY = float64(y)
		if doneX && doneY {
			c.panX = nil
			c.panY = nil
			c.hasBounds = true
		}
		return
	}

	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = float64(common.Lerp(float32(c.PosX), float32(targetX), float32(c.smooth)))
		c.PosY = float64(common.Lerp(float32(c.PosY), float32(targetY), float32(c.smooth)))
	}

	// Snap to the 1/zoom grid so source texels land on whole screen pixels.
	if c.zoom != 0 {
		c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
		c.PosY = math.Round(c.PosY*c.zoom) / c.zoom
	}

	if c.hasBounds {
		c.PosX, c.PosY = clampCenter(c.PosX, c.PosY, c.bounds, c.viewSize())
	}
}

// SnapTo immediately centers the camera, clamped to the current bounds.
func (c *Camera) SnapTo(x, y float64) {
	c.panX = nil
	c.panY = nil
	if c.hasBounds {
		x, y = clampCenter(x, y, c.bounds, c.viewSize())
	}
	c.PosX = x
	c.PosY = y
}

func (c *Camera) viewSize() physics.Rect {
	return physics.Rect{W: float64(c.screenW) / c.zoom, H: float64(c.screenH) / c.zoom}
}

func clampCenter(x, y float64, bounds physics.Rect, view physics.Rect) (float64, float64) {
	halfW := view.W / 2.0
	halfH := view.H / 2.0

	if bounds.W <= view.W {
		x = bounds.CenterX()
	} else {
		x = common.Clamp(x, bounds.X+halfW, bounds.Right()-halfW)
	}
	if bounds.H <= view.H {
		y = bounds.CenterY()
	} else {
		y = common.Clamp(y, bounds.Y+halfH, bounds.Bottom()-halfH)
	}
	return x, y
}
