package room

import (
	"testing"
	"testing/fstest"

	"github.com/milk9111/grapple/physics"
)

// grid builds a w x h room whose border is solid, with overrides applied at
// tile coordinates.
func grid(t *testing.T, id string, worldX, worldY float64, w, h int, overrides map[[2]int]int) *Room {
	t.Helper()

	tiles := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tiles[y*w+x] = TileSolid
			}
		}
	}
	for at, v := range overrides {
		tiles[at[1]*w+at[0]] = v
	}

	r, err := New(id, worldX, worldY, w, h, tiles)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		tiles  []int
	}{
		{"zero_width", 0, 4, nil},
		{"negative_height", 4, -1, nil},
		{"tile_count_mismatch", 2, 2, []int{1, 1, 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New("bad", 0, 0, c.width, c.height, c.tiles); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"rooms/start.json": &fstest.MapFile{Data: []byte(`{
			"id": "start",
			"width": 2, "height": 2,
			"world_x": 64, "world_y": 0,
			"spawn_x": 1, "spawn_y": 0,
			"tiles": [0, 0, 1, 1]
		}`)},
		"rooms/broken.json": &fstest.MapFile{Data: []byte(`{"id": "broken", "width": 2, "height": 2, "tiles": [1]}`)},
	}

	r, err := Load(fsys, "rooms/start.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.ID != "start" || r.TileAt(0, 1) != TileSolid {
		t.Fatalf("unexpected room %+v", r)
	}

	sx, sy := r.SpawnWorld()
	if sx != 64+32 || sy != 0 {
		t.Fatalf("expected spawn (96, 0), got (%v, %v)", sx, sy)
	}

	if _, err := Load(fsys, "rooms/broken.json"); err == nil {
		t.Fatalf("expected error for bad tile count")
	}
	if _, err := Load(fsys, "rooms/missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestBounds(t *testing.T) {
	r := grid(t, "a", 100, 200, 4, 3, nil)

	b := r.Bounds()
	expected := physics.Rect{X: 100, Y: 200, W: 128, H: 96}
	if b != expected {
		t.Fatalf("expected bounds %+v, got %+v", expected, b)
	}

	if !r.ContainsPoint(101, 201) || r.ContainsPoint(99, 201) {
		t.Fatalf("ContainsPoint disagrees with bounds")
	}
}

func TestQueryAll(t *testing.T) {
	// 6x6 bordered room with a hazard and a platform inside.
	r := grid(t, "a", 0, 0, 6, 6, map[[2]int]int{
		{2, 2}: TileHazard,
		{3, 2}: TilePlatform,
	})

	t.Run("interior_box", func(t *testing.T) {
		got := r.QueryAll(physics.Rect{X: 70, Y: 70, W: 52, H: 20})
		if len(got) != 2 {
			t.Fatalf("expected 2 surfaces, got %d", len(got))
		}
		// Row-major: hazard at column 2 comes before the platform at 3.
		if got[0].Kind != physics.SurfaceHazard || got[1].Kind != physics.SurfacePlatform {
			t.Fatalf("unexpected order %v, %v", got[0].Kind, got[1].Kind)
		}
	})

	t.Run("empty_interior", func(t *testing.T) {
		if got := r.QueryAll(physics.Rect{X: 130, Y: 130, W: 10, H: 10}); len(got) != 0 {
			t.Fatalf("expected no surfaces, got %d", len(got))
		}
	})

	t.Run("outside_room", func(t *testing.T) {
		if got := r.QueryAll(physics.Rect{X: -500, Y: -500, W: 10, H: 10}); len(got) != 0 {
			t.Fatalf("expected no surfaces, got %d", len(got))
		}
	})

	t.Run("edge_touch_is_not_overlap", func(t *testing.T) {
		// Box whose bottom edge exactly meets a tile top.
		if got := r.QueryAll(physics.Rect{X: 70, Y: 140, W: 10, H: 20}); len(got) != 0 {
			t.Fatalf("touching boxes must not report overlap, got %d", len(got))
		}
	})
}

func TestQuerySolid(t *testing.T) {
	r := grid(t, "a", 0, 0, 6, 6, map[[2]int]int{
		{2, 2}: TileHazard,
		{3, 2}: TilePlatform,
		{2, 3}: TileGrapple,
	})

	got := r.QuerySolid(physics.Rect{X: 40, Y: 40, W: 120, H: 120})
	for _, s := range got {
		if s.Kind != physics.SurfaceSolid {
			t.Fatalf("QuerySolid returned %v", s.Kind)
		}
	}

	all := r.QueryAll(physics.Rect{X: 40, Y: 40, W: 120, H: 120})
	if len(all) <= len(got) {
		t.Fatalf("expected QueryAll to see non-solids too: all %d, solid %d", len(all), len(got))
	}
}

func TestQueryWorldOffset(t *testing.T) {
	r := grid(t, "a", 640, 0, 6, 6, nil)

	// The same local box misses at origin and hits at the room's offset.
	if got := r.QueryAll(physics.Rect{X: 10, Y: 10, W: 20, H: 20}); len(got) != 0 {
		t.Fatalf("expected miss outside the offset room, got %d", len(got))
	}
	got := r.QueryAll(physics.Rect{X: 650, Y: 10, W: 20, H: 20})
	if len(got) == 0 {
		t.Fatalf("expected border tiles at the room offset")
	}
	for _, s := range got {
		if s.Rect.X < 640 {
			t.Fatalf("surface rect %v not in world space", s.Rect)
		}
	}
}

func TestTileAtOutOfRange(t *testing.T) {
	r := grid(t, "a", 0, 0, 4, 4, nil)

	if r.TileAt(-1, 0) != TileEmpty || r.TileAt(0, 4) != TileEmpty {
		t.Fatalf("out-of-range tiles must read as empty")
	}
	if r.TileAt(0, 0) != TileSolid {
		t.Fatalf("expected border tile solid")
	}
}
