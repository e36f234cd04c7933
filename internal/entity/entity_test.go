package entity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/world"
)

func testRoom(x float64) *world.Room {
	return world.NewRoom(uuid.New(), "test", geom.NewAABB(geom.Vec3{X: x, Y: 1.5}, geom.Vec3{X: 4, Y: 3, Z: 4}), 0)
}

func TestExplorerMove(t *testing.T) {
	e := NewExplorer(3, 4)
	e.Move(1, -2)
	if x, y := e.Position(); x != 4 || y != 2 {
		t.Errorf("Position() = (%d, %d), want (4, 2)", x, y)
	}
	if e.Symbol != '@' {
		t.Errorf("Symbol = %q, want '@'", e.Symbol)
	}
}

func TestPlaceMarkersAtPathEndpoints(t *testing.T) {
	d := world.NewDungeon(1)
	a, b, c := testRoom(0), testRoom(10), testRoom(20)
	d.AddRoom(a)
	d.AddRoom(b)
	d.AddRoom(c)
	c.Role = world.RoleEntry
	a.Role = world.RoleExit

	markers := PlaceMarkers(d)
	if len(markers) != 2 {
		t.Fatalf("got %d markers, want 2", len(markers))
	}
	spawn, ok := Find(markers, MarkerSpawn)
	if !ok || spawn.Room != c {
		t.Errorf("spawn marker in wrong room")
	}
	if spawn.Position != (geom.Vec3{X: 20}) {
		t.Errorf("spawn position = %v, want floor center (20, 0, 0)", spawn.Position)
	}
	goal, ok := Find(markers, MarkerGoal)
	if !ok || goal.Room != a || goal.Symbol != '>' {
		t.Errorf("goal marker = %+v", goal)
	}
}

func TestPlaceMarkersWithoutPath(t *testing.T) {
	if got := PlaceMarkers(world.NewDungeon(1)); len(got) != 0 {
		t.Errorf("empty layout got %d markers, want 0", len(got))
	}

	d := world.NewDungeon(1)
	only := testRoom(0)
	d.AddRoom(only)
	markers := PlaceMarkers(d)
	if len(markers) != 1 || markers[0].Kind != MarkerSpawn || markers[0].Room != only {
		t.Errorf("single room markers = %+v, want one spawn in the seed room", markers)
	}
	if _, ok := Find(markers, MarkerGoal); ok {
		t.Errorf("single room should have no goal")
	}
}
