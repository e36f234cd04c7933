package viewer

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/entity"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	s := newSession(cfg, gamedata.MustLoadCatalogue(), logr.Discard(), 1)
	s.regenerate(context.Background())
	return s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateExplore, "explore"},
		{StateInspect, "inspect"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestRegeneratePlacesExplorerOnSpawn(t *testing.T) {
	s := newTestSession(t)

	spawn, ok := entity.Find(s.raster.Markers, entity.MarkerSpawn)
	if !ok {
		t.Fatal("no spawn marker")
	}
	x, y := s.raster.ToCell(spawn.Position)
	if s.explorer.X != x || s.explorer.Y != y {
		t.Errorf("explorer at (%d,%d), want spawn (%d,%d)", s.explorer.X, s.explorer.Y, x, y)
	}
	if !s.raster.At(x, y).Passable() {
		t.Errorf("spawn cell %q is not passable", s.raster.At(x, y).Rune())
	}
}

func TestMoveStopsAtWalls(t *testing.T) {
	s := newTestSession(t)

	steps := 0
	for s.move(1, 0) {
		steps++
		if steps > s.raster.Width {
			t.Fatal("explorer walked off the raster")
		}
	}
	if !s.raster.At(s.explorer.X, s.explorer.Y).Passable() {
		t.Error("explorer ended on an impassable cell")
	}
	if s.raster.At(s.explorer.X+1, s.explorer.Y).Passable() {
		t.Error("move refused a passable cell")
	}
}

func TestArrowKeysMove(t *testing.T) {
	s := newTestSession(t)
	x, y := s.explorer.X, s.explorer.Y

	s.handleKey(context.Background(), key(tcell.KeyUp))
	s.handleKey(context.Background(), key(tcell.KeyDown))
	if s.explorer.X != x || s.explorer.Y != y {
		t.Errorf("up then down moved explorer to (%d,%d), want (%d,%d)", s.explorer.X, s.explorer.Y, x, y)
	}
}

func TestRegenerateKeyAdvancesSeed(t *testing.T) {
	s := newTestSession(t)
	s.cfg.SeedPhrase = "ignored after reseed"
	before := s.dungeon.Seed

	s.handleKey(context.Background(), runeKey('r'))

	if s.dungeon.Seed != before+1 {
		t.Errorf("seed after r = %d, want %d", s.dungeon.Seed, before+1)
	}
	if s.cfg.SeedPhrase != "" {
		t.Errorf("seed phrase = %q, want cleared", s.cfg.SeedPhrase)
	}
}

func TestOverlayAndStateToggles(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	s.handleKey(ctx, runeKey('p'))
	if s.overlays.MainPath {
		t.Error("p should turn the path overlay off")
	}
	s.handleKey(ctx, runeKey('c'))
	if s.overlays.Corridors {
		t.Error("c should turn the corridor overlay off")
	}
	s.handleKey(ctx, runeKey('i'))
	if s.state != StateInspect {
		t.Errorf("state after i = %s, want inspect", s.state)
	}
	s.handleKey(ctx, runeKey('i'))
	if s.state != StateExplore {
		t.Errorf("state after second i = %s, want explore", s.state)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeKey('q'), key(tcell.KeyEscape), key(tcell.KeyCtrlC)} {
		s := newTestSession(t)
		s.handleKey(context.Background(), ev)
		if s.running {
			t.Errorf("%v did not stop the viewer", ev.Name())
		}
	}
}

func TestInspectLineNamesSpawnRoom(t *testing.T) {
	s := newTestSession(t)
	spawn, _ := entity.Find(s.raster.Markers, entity.MarkerSpawn)

	line := s.inspectLine()
	if !strings.HasPrefix(line, spawn.Room.Archetype+" ") {
		t.Errorf("inspectLine() = %q, want it to start with %q", line, spawn.Room.Archetype)
	}
	if len(spawn.Room.Openings()) > 0 && !strings.Contains(line, spawn.Room.Openings()[0].Direction().String()+":") {
		t.Errorf("inspectLine() = %q, missing opening list", line)
	}
}
