package physics

// Frame is the per-update input snapshot. The shell builds one from
// whatever devices it polls; the movement core never reads device state
// directly. All button fields are held states — the controller derives
// just-pressed edges from the previous frame itself.
type Frame struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Jump    bool
	Roll    bool
	Grapple bool
	Sprint  bool

	// AimX/AimY is the grapple aim target in world coordinates.
	AimX float64
	AimY float64
}

// MoveX collapses the left/right holds into -1, 0 or +1.
func (f Frame) MoveX() float64 {
	var x float64
	if f.Left {
		x -= 1
	}
	if f.Right {
		x += 1
	}
	return x
}
