package world

// EdgeKind distinguishes spanning-tree edges from extra loop edges.
type EdgeKind int

const (
	EdgeTree EdgeKind = iota
	EdgeLoop
)

// String returns a human-readable edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeTree:
		return "tree"
	case EdgeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Edge joins two mutually connected openings.
type Edge struct {
	A, B *Opening
	Kind EdgeKind
}

// Rooms returns the rooms on either end of the edge.
func (e Edge) Rooms() (*Room, *Room) {
	return e.A.Room(), e.B.Room()
}

// Touches reports whether either end of the edge belongs to r.
func (e Edge) Touches(r *Room) bool {
	return e.A.Room() == r || e.B.Room() == r
}

// Other returns the room on the far side of the edge from r, or nil if r is not an end.
func (e Edge) Other(r *Room) *Room {
	switch r {
	case e.A.Room():
		return e.B.Room()
	case e.B.Room():
		return e.A.Room()
	default:
		return nil
	}
}

// Same reports whether e and o join the same pair of openings in either order.
func (e Edge) Same(o Edge) bool {
	return (e.A == o.A && e.B == o.B) || (e.A == o.B && e.B == o.A)
}
