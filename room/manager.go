package room

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path"

	"github.com/milk9111/grapple/physics"
)

// adjacencyEpsilon is how far apart two room edges may sit and still count
// as touching.
const adjacencyEpsilon = 10

// Manager owns the loaded room set and tracks the active room. It is the
// collision context handed to the physics core: all queries resolve against
// the active room only, and room swaps happen between frames so a body is
// never resolved against two rooms at once.
type Manager struct {
	rooms   map[string]*Room
	order   []string
	current *Room
}

type worldFile struct {
	Start string   `json:"start"`
	Rooms []string `json:"rooms"`
}

// LoadWorld reads a world file naming the room files and the starting room,
// loading every room relative to the world file's directory.
func LoadWorld(fsys fs.FS, name string) (*Manager, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("room: load world %s: %w", name, err)
	}

	var wf worldFile
	if err := json.Unmarshal(b, &wf); err != nil {
		return nil, fmt.Errorf("room: unmarshal world %s: %w", name, err)
	}

	dir := path.Dir(name)
	rooms := make([]*Room, 0, len(wf.Rooms))
	for _, rn := range wf.Rooms {
		r, err := Load(fsys, path.Join(dir, rn))
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}

	return NewManager(rooms, wf.Start)
}

// NewManager builds a manager over the given rooms with start active.
func NewManager(rooms []*Room, start string) (*Manager, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("room: no rooms")
	}

	m := &Manager{rooms: make(map[string]*Room, len(rooms))}
	for _, r := range rooms {
		if _, ok := m.rooms[r.ID]; ok {
			return nil, fmt.Errorf("room: duplicate room id %q", r.ID)
		}
		m.rooms[r.ID] = r
		m.order = append(m.order, r.ID)
	}

	cur, ok := m.rooms[start]
	if !ok {
		return nil, fmt.Errorf("room: start room %q not loaded", start)
	}
	m.current = cur
	return m, nil
}

// Current returns the active room.
func (m *Manager) Current() *Room {
	if m == nil {
		return nil
	}
	return m.current
}

// Room looks up a loaded room by id.
func (m *Manager) Room(id string) (*Room, bool) {
	if m == nil {
		return nil, false
	}
	r, ok := m.rooms[id]
	return r, ok
}

// SetCurrent swaps the active room. Callers swap between frames, never in
// the middle of resolving a body.
func (m *Manager) SetCurrent(id string) error {
	r, ok := m.rooms[id]
	if !ok {
		return fmt.Errorf("room: set current %q: not loaded", id)
	}
	m.current = r
	return nil
}

// QueryAll implements physics.World against the active room.
func (m *Manager) QueryAll(rect physics.Rect) []physics.Surface {
	if m == nil {
		return nil
	}
	return m.current.QueryAll(rect)
}

// QuerySolid implements physics.World against the active room.
func (m *Manager) QuerySolid(rect physics.Rect) []physics.Surface {
	if m == nil {
		return nil
	}
	return m.current.QuerySolid(rect)
}

// Bounds returns the active room's world-space rect.
func (m *Manager) Bounds() (physics.Rect, bool) {
	if m == nil || m.current == nil {
		return physics.Rect{}, false
	}
	return m.current.Bounds(), true
}

// HasAdjacentRoom reports whether another loaded room touches the active
// room's edge in the given direction.
func (m *Manager) HasAdjacentRoom(dir physics.Direction) bool {
	_, ok := m.AdjacentRoom(dir)
	return ok
}

// AdjacentRoom returns the first loaded room, in load order, whose bounds
// touch the active room's edge in the given direction.
func (m *Manager) AdjacentRoom(dir physics.Direction) (*Room, bool) {
	if m == nil || m.current == nil {
		return nil, false
	}

	cur := m.current.Bounds()
	for _, id := range m.order {
		r := m.rooms[id]
		if r == m.current {
			continue
		}
		if touches(cur, r.Bounds(), dir) {
			return r, true
		}
	}
	return nil, false
}

func touches(cur, other physics.Rect, dir physics.Direction) bool {
	switch dir {
	case physics.DirRight:
		return math.Abs(other.X-cur.Right()) <= adjacencyEpsilon && overlapsV(cur, other)
	case physics.DirLeft:
		return math.Abs(other.Right()-cur.X) <= adjacencyEpsilon && overlapsV(cur, other)
	case physics.DirDown:
		return math.Abs(other.Y-cur.Bottom()) <= adjacencyEpsilon && overlapsH(cur, other)
	case physics.DirUp:
		return math.Abs(other.Bottom()-cur.Y) <= adjacencyEpsilon && overlapsH(cur, other)
	}
	return false
}

func overlapsV(a, b physics.Rect) bool {
	return b.Y < a.Bottom() && b.Bottom() > a.Y
}

func overlapsH(a, b physics.Rect) bool {
	return b.X < a.Right() && b.Right() > a.X
}

// CheckTransition reports the room a body's center has crossed into, with
// the crossing direction. Returns false while the center is still inside
// the active room or outside every loaded room.
func (m *Manager) CheckTransition(rect physics.Rect) (*Room, physics.Direction, bool) {
	if m == nil || m.current == nil {
		return nil, physics.DirNone, false
	}

	cx, cy := rect.CenterX(), rect.CenterY()
	if m.current.ContainsPoint(cx, cy) {
		return nil, physics.DirNone, false
	}

	for _, id := range m.order {
		r := m.rooms[id]
		if r == m.current || !r.ContainsPoint(cx, cy) {
			continue
		}
		return r, crossingDir(m.current.Bounds(), r.Bounds()), true
	}
	return nil, physics.DirNone, false
}

func crossingDir(cur, next physics.Rect) physics.Direction {
	switch {
	case next.X >= cur.Right()-adjacencyEpsilon:
		return physics.DirRight
	case next.Right() <= cur.X+adjacencyEpsilon:
		return physics.DirLeft
	case next.Y >= cur.Bottom()-adjacencyEpsilon:
		return physics.DirDown
	default:
		return physics.DirUp
	}
}
