package main

import (
	"testing"

	"github.com/milk9111/grapple/physics"
	"github.com/milk9111/grapple/prefabs"
)

func TestBuildTuningMatchesShippedSpecs(t *testing.T) {
	ps, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	gs, err := prefabs.LoadGrappleSpec()
	if err != nil {
		t.Fatalf("LoadGrappleSpec: %v", err)
	}

	if got := buildTuning(ps, gs); got != physics.DefaultTuning() {
		t.Fatalf("shipped specs drifted from the default tuning:\n%+v\nvs\n%+v", got, physics.DefaultTuning())
	}
}

func TestNewGameWiring(t *testing.T) {
	g, err := NewGame(false)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	cur := g.world.Current()
	if cur == nil || cur.ID != "atrium" {
		t.Fatalf("expected start in atrium, got %+v", cur)
	}

	sx, sy := cur.SpawnWorld()
	if g.player.X != sx || g.player.Y != sy {
		t.Fatalf("player not at spawn: (%v, %v) vs (%v, %v)", g.player.X, g.player.Y, sx, sy)
	}

	if len(g.enemies[cur.ID]) == 0 {
		t.Fatalf("expected enemies spawned for the start room")
	}
}

func TestCheckTransitionSwapsRoomAndFreezes(t *testing.T) {
	g, err := NewGame(false)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	// Drop the player's center just across the seam into the cavern.
	g.player.X = 900
	g.player.Y = 380

	if !g.checkTransition() {
		t.Fatalf("expected a transition")
	}
	if g.world.Current().ID != "cavern" {
		t.Fatalf("expected cavern active, got %s", g.world.Current().ID)
	}
	if !g.player.Frozen() {
		t.Fatalf("expected player frozen for the handoff")
	}
	if !g.camera.Panning() {
		t.Fatalf("expected camera pan in flight")
	}

	// The same frame can't trigger a second transition.
	if g.checkTransition() {
		t.Fatalf("transition must not retrigger while the center is in the new room")
	}
}
