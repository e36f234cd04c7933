package world

import (
	"github.com/google/uuid"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
)

// Role tags rooms that downstream consumers treat specially.
type Role int

const (
	RoleNone Role = iota
	// RoleEntry marks the first endpoint of the main path.
	RoleEntry
	// RoleExit marks the last endpoint of the main path.
	RoleExit
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleEntry:
		return "entry"
	case RoleExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Room is a placed room instance. Its bounds never change once placed.
type Room struct {
	ID        uuid.UUID
	Archetype string
	Bounds    geom.AABB
	Handle    scene.Handle
	Role      Role
	openings  []*Opening
}

// NewRoom creates a room with no openings.
func NewRoom(id uuid.UUID, archetype string, bounds geom.AABB, handle scene.Handle) *Room {
	return &Room{
		ID:        id,
		Archetype: archetype,
		Bounds:    bounds,
		Handle:    handle,
		openings:  make([]*Opening, 0, 4),
	}
}

// AddOpening attaches a new pending opening facing dir at a world position.
func (r *Room) AddOpening(dir Direction, position geom.Vec3) *Opening {
	o := NewOpening(r, dir, position)
	r.openings = append(r.openings, o)
	return o
}

// Openings returns the room's openings in creation order.
func (r *Room) Openings() []*Opening {
	return r.openings
}

// OpeningFacing returns the first opening facing dir, or nil.
func (r *Room) OpeningFacing(dir Direction) *Opening {
	for _, o := range r.openings {
		if o.dir == dir {
			return o
		}
	}
	return nil
}

// PendingOpenings returns openings still waiting for a connection.
func (r *Room) PendingOpenings() []*Opening {
	out := make([]*Opening, 0, len(r.openings))
	for _, o := range r.openings {
		if o.Pending() {
			out = append(out, o)
		}
	}
	return out
}

// Center returns the center of the room's bounds.
func (r *Room) Center() geom.Vec3 {
	return r.Bounds.Center()
}

// Contains reports whether the ground-plane position of p falls inside the room.
func (r *Room) Contains(p geom.Vec3) bool {
	return p.X >= r.Bounds.Min.X && p.X < r.Bounds.Max.X &&
		p.Z >= r.Bounds.Min.Z && p.Z < r.Bounds.Max.Z
}

// Extent returns the room's size along the axis of dir.
func (r *Room) Extent(dir Direction) float64 {
	size := r.Bounds.Size()
	if dir == East || dir == West {
		return size.X
	}
	return size.Z
}
