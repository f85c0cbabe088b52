package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/grapple/physics"
)

// Input polls devices and builds the per-frame snapshot for the movement
// core. All fields are held states; the core edge-detects presses itself.
type Input struct {
	camera *Camera
}

func NewInput(camera *Camera) *Input {
	return &Input{camera: camera}
}

// Frame reads the keyboard, mouse and first gamepad.
func (i *Input) Frame() physics.Frame {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var f physics.Frame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		f.Left = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		f.Right = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		f.Up = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		f.Down = true
	}

	f.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	f.Roll = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyControlLeft)
	f.Grapple = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// Gamepad, when present: left stick for movement, standard buttons for
	// the rest. The aim target stays mouse-driven.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			f.Left = true
			f.Right = false
		} else if leftX > 0.3 {
			f.Right = true
			f.Left = false
		}
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftY < -0.3 {
			f.Up = true
		} else if leftY > 0.3 {
			f.Down = true
		}

		f.Jump = f.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		f.Roll = f.Roll || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		f.Sprint = f.Sprint || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
		f.Grapple = f.Grapple || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	mx, my := ebiten.CursorPosition()
	vx, vy := i.camera.ViewTopLeft()
	f.AimX = vx + float64(mx)/i.camera.Zoom()
	f.AimY = vy + float64(my)/i.camera.Zoom()

	return f
}
