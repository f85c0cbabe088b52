package physics

// SurfaceKind tags a collidable surface with its gameplay behavior.
type SurfaceKind int

const (
	// SurfaceSolid blocks movement on every side.
	SurfaceSolid SurfaceKind = iota
	// SurfacePlatform blocks downward movement only (one-way platform).
	SurfacePlatform
	// SurfaceHazard damages a body overlapping it.
	SurfaceHazard
	// SurfaceExit raises a room-exit signal when touched.
	SurfaceExit
	// SurfaceGrapple is a dedicated anchor the hook can latch onto.
	SurfaceGrapple
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceSolid:
		return "solid"
	case SurfacePlatform:
		return "platform"
	case SurfaceHazard:
		return "hazard"
	case SurfaceExit:
		return "exit"
	case SurfaceGrapple:
		return "grapple"
	}
	return "unknown"
}

// Surface is an immutable collidable snapshot returned by world queries.
// The collision world owns the underlying geometry; the physics code only
// reads these for the duration of a single update.
type Surface struct {
	Rect Rect
	Kind SurfaceKind
}

// Direction identifies a room edge. Exit detection resolves edges in
// declaration order: right, left, down, up.
type Direction int

const (
	DirNone Direction = iota
	DirRight
	DirLeft
	DirDown
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	}
	return "none"
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	case DirUp:
		return DirDown
	}
	return DirNone
}

// World is the collision query contract movement code resolves against.
//
// QueryAll returns every non-empty surface overlapping the rect; only
// SurfaceSolid blocks general movement, but sensor casts (hook travel,
// hazard/exit scans) see everything. QuerySolid returns solids only and
// feeds the wall/ground probes. Implementations must return surfaces in a
// stable order so resolution stays deterministic.
type World interface {
	QueryAll(r Rect) []Surface
	QuerySolid(r Rect) []Surface
	// HasAdjacentRoom reports whether another room borders the current one
	// in the given direction. Room bounds act as solid walls on edges with
	// no neighbor.
	HasAdjacentRoom(dir Direction) bool
	// Bounds returns the current room's world-space bounds. ok is false
	// when no room is active, in which case nothing collides.
	Bounds() (Rect, bool)
}
