package entity

import (
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// MarkerKind says what a marker is for.
type MarkerKind int

const (
	MarkerSpawn MarkerKind = iota
	MarkerGoal
)

// String returns a human-readable marker kind.
func (k MarkerKind) String() string {
	switch k {
	case MarkerSpawn:
		return "spawn"
	case MarkerGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Marker is a point of interest placed on a room's floor.
type Marker struct {
	Kind     MarkerKind
	Room     *world.Room
	Position geom.Vec3
	Symbol   rune
}

// PlaceMarkers puts the spawn marker in the entry room and the goal marker in
// the exit room. A layout without a main path gets a spawn marker in its seed
// room and no goal.
func PlaceMarkers(d *world.Dungeon) []Marker {
	entry, exit := d.Entry(), d.Exit()
	if entry == nil && len(d.Rooms) > 0 {
		entry = d.Rooms[0]
	}

	markers := make([]Marker, 0, 2)
	if entry != nil {
		markers = append(markers, newMarker(MarkerSpawn, entry))
	}
	if exit != nil && exit != entry {
		markers = append(markers, newMarker(MarkerGoal, exit))
	}
	return markers
}

func newMarker(kind MarkerKind, r *world.Room) Marker {
	floor := r.Center()
	floor.Y = r.Bounds.Min.Y
	symbol := '<'
	if kind == MarkerGoal {
		symbol = '>'
	}
	return Marker{Kind: kind, Room: r, Position: floor, Symbol: symbol}
}

// Find returns the first marker of the given kind.
func Find(markers []Marker, kind MarkerKind) (Marker, bool) {
	for _, m := range markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return Marker{}, false
}
