package world

import (
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
)

// CorridorKind records which emission pass laid a corridor.
type CorridorKind int

const (
	CorridorMain CorridorKind = iota
	CorridorTree
	CorridorLoop
)

// String returns a human-readable corridor kind.
func (k CorridorKind) String() string {
	switch k {
	case CorridorMain:
		return "main"
	case CorridorTree:
		return "tree"
	case CorridorLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Corridor is a straight segment of corridor geometry between two openings.
type Corridor struct {
	From, To  geom.Vec3
	Midpoint  geom.Vec3
	Direction geom.Vec3 // unit, ground plane
	Length    float64
	Yaw       float64
	Kind      CorridorKind
	Edge      Edge
	Handle    scene.Handle
	Bounds    geom.AABB
}

// Wall records a wall instantiated to seal an opening.
type Wall struct {
	Opening *Opening
	Handle  scene.Handle
}

// MainPath is the route between the two approximate diameter endpoints of the room tree.
type MainPath struct {
	First, Last *Room
	Rooms       []*Room
	Edges       []Edge
	Length      float64
}

// Contains reports whether r lies on the path.
func (p *MainPath) Contains(r *Room) bool {
	if p == nil {
		return false
	}
	for _, pr := range p.Rooms {
		if pr == r {
			return true
		}
	}
	return false
}

// HasEdge reports whether e is one of the path's edges.
func (p *MainPath) HasEdge(e Edge) bool {
	if p == nil {
		return false
	}
	for _, pe := range p.Edges {
		if pe.Same(e) {
			return true
		}
	}
	return false
}
