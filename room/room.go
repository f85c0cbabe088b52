package room

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"

	"github.com/milk9111/grapple/physics"
)

// TileSize is the side length of one tile in world pixels.
const TileSize = 32

// Tile values as stored in room files.
const (
	TileEmpty    = 0
	TileSolid    = 1
	TileHazard   = 2
	TileGrapple  = 3
	TileExit     = 4
	TilePlatform = 5
)

func surfaceKind(tile int) (physics.SurfaceKind, bool) {
	switch tile {
	case TileSolid:
		return physics.SurfaceSolid, true
	case TilePlatform:
		return physics.SurfacePlatform, true
	case TileHazard:
		return physics.SurfaceHazard, true
	case TileExit:
		return physics.SurfaceExit, true
	case TileGrapple:
		return physics.SurfaceGrapple, true
	}
	return 0, false
}

// Room is one screen of the world: a tile grid placed at a world-space
// offset. Rooms are immutable once loaded; the physics core only sees them
// through collision queries.
type Room struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// WorldX/WorldY position the room's top-left corner in world pixels.
	WorldX float64 `json:"world_x"`
	WorldY float64 `json:"world_y"`

	// SpawnX/SpawnY is the player spawn in tile coordinates.
	SpawnX int `json:"spawn_x"`
	SpawnY int `json:"spawn_y"`

	// Tiles is the grid, row-major, length Width*Height.
	Tiles []int `json:"tiles"`

	// Enemies are spawn points in tile coordinates.
	Enemies []Spawn `json:"enemies,omitempty"`
}

// Spawn places an enemy in a room.
type Spawn struct {
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// New builds a room from an in-memory grid, validating dimensions.
func New(id string, worldX, worldY float64, width, height int, tiles []int) (*Room, error) {
	r := &Room{
		ID:     id,
		Width:  width,
		Height: height,
		WorldX: worldX,
		WorldY: worldY,
		Tiles:  tiles,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Load reads a room JSON file from fsys.
func Load(fsys fs.FS, name string) (*Room, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("room: load %s: %w", name, err)
	}

	var r Room
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("room: unmarshal %s: %w", name, err)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("room: %s: %w", name, err)
	}
	return &r, nil
}

func (r *Room) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", r.Width, r.Height)
	}
	if len(r.Tiles) != r.Width*r.Height {
		return fmt.Errorf("tile count %d does not match %dx%d", len(r.Tiles), r.Width, r.Height)
	}
	return nil
}

// Bounds returns the room's world-space rect.
func (r *Room) Bounds() physics.Rect {
	return physics.Rect{
		X: r.WorldX,
		Y: r.WorldY,
		W: float64(r.Width * TileSize),
		H: float64(r.Height * TileSize),
	}
}

// ContainsPoint reports whether the world-space point lies in the room.
func (r *Room) ContainsPoint(x, y float64) bool {
	return r.Bounds().ContainsPoint(x, y)
}

// SpawnWorld returns the player spawn in world pixels.
func (r *Room) SpawnWorld() (float64, float64) {
	return r.WorldX + float64(r.SpawnX*TileSize), r.WorldY + float64(r.SpawnY*TileSize)
}

// TileAt returns the tile value at tile coordinates, TileEmpty when out of
// range.
func (r *Room) TileAt(tx, ty int) int {
	if r == nil || tx < 0 || ty < 0 || tx >= r.Width || ty >= r.Height {
		return TileEmpty
	}
	return r.Tiles[ty*r.Width+tx]
}

// QueryAll returns every non-empty tile overlapping the rect as a surface
// snapshot, in row-major order.
func (r *Room) QueryAll(rect physics.Rect) []physics.Surface {
	return r.query(rect, false)
}

// QuerySolid returns only solid tiles overlapping the rect.
func (r *Room) QuerySolid(rect physics.Rect) []physics.Surface {
	return r.query(rect, true)
}

func (r *Room) query(rect physics.Rect, solidOnly bool) []physics.Surface {
	if r == nil {
		return nil
	}

	// Pad the scanned tile range by one tile on every side so boxes
	// straddling a tile edge are never missed.
	localLeft := rect.X - r.WorldX
	localTop := rect.Y - r.WorldY
	localRight := rect.Right() - r.WorldX
	localBottom := rect.Bottom() - r.WorldY

	startX := max(0, int(math.Floor(localLeft/TileSize))-1)
	endX := min(r.Width, int(math.Floor(localRight/TileSize))+2)
	startY := max(0, int(math.Floor(localTop/TileSize))-1)
	endY := min(r.Height, int(math.Floor(localBottom/TileSize))+2)

	var out []physics.Surface
	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			kind, ok := surfaceKind(r.Tiles[y*r.Width+x])
			if !ok {
				continue
			}
			if solidOnly && kind != physics.SurfaceSolid {
				continue
			}
			tileRect := physics.Rect{
				X: r.WorldX + float64(x*TileSize),
				Y: r.WorldY + float64(y*TileSize),
				W: TileSize,
				H: TileSize,
			}
			if rect.Overlaps(tileRect) {
				out = append(out, physics.Surface{Rect: tileRect, Kind: kind})
			}
		}
	}
	return out
}
