package world

import (
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
)

// OpeningState tracks whether an opening still needs a connection.
type OpeningState int

const (
	// OpeningPending openings are neither connected nor sealed.
	OpeningPending OpeningState = iota
	// OpeningConnected openings are joined to exactly one peer.
	OpeningConnected
	// OpeningSealed openings will never be connected.
	OpeningSealed
)

// String returns a human-readable state name.
func (s OpeningState) String() string {
	switch s {
	case OpeningPending:
		return "pending"
	case OpeningConnected:
		return "connected"
	case OpeningSealed:
		return "sealed"
	default:
		return "unknown"
	}
}

// WallBuilder instantiates a blocking wall where a sealed opening used to be.
type WallBuilder interface {
	BuildWall(o *Opening) scene.Handle
}

// Opening is a directional connection point on a room's boundary.
type Opening struct {
	room  *Room
	dir   Direction
	pose  geom.Pose
	state OpeningState
	peer  *Opening
	wall  scene.Handle
}

// NewOpening creates a pending opening facing dir at a world position. The pose
// looks along the direction's vector.
func NewOpening(room *Room, dir Direction, position geom.Vec3) *Opening {
	return &Opening{
		room: room,
		dir:  dir,
		pose: geom.Pose{Position: position, Yaw: geom.LookRotation(dir.Vector())},
	}
}

// Room returns the owning room.
func (o *Opening) Room() *Room { return o.room }

// Direction returns the facing direction.
func (o *Opening) Direction() Direction { return o.dir }

// Pose returns the world pose.
func (o *Opening) Pose() geom.Pose { return o.pose }

// Position returns the world position.
func (o *Opening) Position() geom.Vec3 { return o.pose.Position }

// Forward returns the unit ground-plane vector the opening faces.
func (o *Opening) Forward() geom.Vec3 { return o.pose.Forward() }

// State returns the connection state.
func (o *Opening) State() OpeningState { return o.state }

// Peer returns the connected opening, or nil.
func (o *Opening) Peer() *Opening { return o.peer }

// Wall returns the wall instantiated when the opening was sealed, or zero.
func (o *Opening) Wall() scene.Handle { return o.wall }

// Pending reports whether the opening is still waiting for a connection.
func (o *Opening) Pending() bool { return o.state == OpeningPending }

// MarkConnected links this opening to peer. Callers mark both sides; marking an
// opening twice with different peers overwrites the first link.
func (o *Opening) MarkConnected(peer *Opening) {
	o.state = OpeningConnected
	o.peer = peer
}

// Seal closes the opening for good. When a wall builder is supplied a wall is
// instantiated at the opening's pose. Sealing a finalized opening does nothing.
func (o *Opening) Seal(wall WallBuilder) {
	if o.state != OpeningPending {
		return
	}
	o.state = OpeningSealed
	o.peer = nil
	if wall != nil {
		o.wall = wall.BuildWall(o)
	}
}

// Connect marks a and b as connected to each other.
func Connect(a, b *Opening) {
	a.MarkConnected(b)
	b.MarkConnected(a)
}
