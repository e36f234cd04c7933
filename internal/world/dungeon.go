package world

import (
	"github.com/google/uuid"

	"github.com/samdwyer/dungeongrow/internal/geom"
)

// Stats summarizes what happened during a generation pass. Every degraded
// outcome of a pass is observable here rather than through an error.
type Stats struct {
	RoomsPlaced       int
	PlacementAttempts int
	LengthAdjustments int
	SealedOpenings    int
	LeftoverOpenings  int
	LoopEdges         int
	Corridors         int
	SkeweredRooms     int
}

// Dungeon is the result of one generation pass.
type Dungeon struct {
	Seed      int64
	Rooms     []*Room // in placement order; Rooms[0] is the seed room
	TreeEdges []Edge
	LoopEdges []Edge
	Corridors []*Corridor
	Walls     []Wall
	Path      *MainPath
	Stats     Stats
}

// NewDungeon creates an empty layout.
func NewDungeon(seed int64) *Dungeon {
	return &Dungeon{
		Seed:      seed,
		Rooms:     make([]*Room, 0),
		TreeEdges: make([]Edge, 0),
		LoopEdges: make([]Edge, 0),
		Corridors: make([]*Corridor, 0),
		Walls:     make([]Wall, 0),
	}
}

// AddRoom appends a placed room.
func (d *Dungeon) AddRoom(r *Room) {
	d.Rooms = append(d.Rooms, r)
}

// Room returns the room with the given identity, or nil.
func (d *Dungeon) Room(id uuid.UUID) *Room {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// RoomIndex returns the placement index of r, or -1.
func (d *Dungeon) RoomIndex(r *Room) int {
	for i, candidate := range d.Rooms {
		if candidate == r {
			return i
		}
	}
	return -1
}

// RoomIndexAt returns the index of the room containing the ground position p, or -1.
func (d *Dungeon) RoomIndexAt(p geom.Vec3) int {
	for i, r := range d.Rooms {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// Degree counts the edges touching r. Loop edges are included when withLoops is set.
func (d *Dungeon) Degree(r *Room, withLoops bool) int {
	n := 0
	for _, e := range d.TreeEdges {
		if e.Touches(r) {
			n++
		}
	}
	if withLoops {
		for _, e := range d.LoopEdges {
			if e.Touches(r) {
				n++
			}
		}
	}
	return n
}

// Openings returns every opening of every room in placement order.
func (d *Dungeon) Openings() []*Opening {
	out := make([]*Opening, 0, len(d.Rooms)*4)
	for _, r := range d.Rooms {
		out = append(out, r.Openings()...)
	}
	return out
}

// Entry returns the room tagged as the first path endpoint, or nil.
func (d *Dungeon) Entry() *Room {
	return d.roomWithRole(RoleEntry)
}

// Exit returns the room tagged as the last path endpoint, or nil.
func (d *Dungeon) Exit() *Room {
	return d.roomWithRole(RoleExit)
}

func (d *Dungeon) roomWithRole(role Role) *Room {
	for _, r := range d.Rooms {
		if r.Role == role {
			return r
		}
	}
	return nil
}

// RemoveRoom drops r from the layout and strips every tree and loop edge that
// references it. Corridors laid along stripped edges are removed as well and
// returned so the caller can destroy their geometry.
func (d *Dungeon) RemoveRoom(r *Room) []*Corridor {
	idx := d.RoomIndex(r)
	if idx < 0 {
		return nil
	}
	d.Rooms = append(d.Rooms[:idx], d.Rooms[idx+1:]...)
	d.TreeEdges = stripEdges(d.TreeEdges, r)
	d.LoopEdges = stripEdges(d.LoopEdges, r)

	var removed []*Corridor
	kept := d.Corridors[:0]
	for _, c := range d.Corridors {
		if c.Edge.A != nil && c.Edge.Touches(r) {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	d.Corridors = kept

	walls := d.Walls[:0]
	for _, w := range d.Walls {
		if w.Opening.Room() != r {
			walls = append(walls, w)
		}
	}
	d.Walls = walls
	return removed
}

func stripEdges(edges []Edge, r *Room) []Edge {
	kept := edges[:0]
	for _, e := range edges {
		if !e.Touches(r) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Bounds returns the volume enclosing every room and corridor. ok is false for
// an empty layout.
func (d *Dungeon) Bounds() (b geom.AABB, ok bool) {
	for _, r := range d.Rooms {
		if !ok {
			b, ok = r.Bounds, true
			continue
		}
		b = b.Union(r.Bounds)
	}
	for _, c := range d.Corridors {
		if !ok {
			b, ok = c.Bounds, true
			continue
		}
		b = b.Union(c.Bounds)
	}
	return b, ok
}
