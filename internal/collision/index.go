// Package collision keeps track of the volumes of committed rooms and answers
// overlap queries for candidate placements.
package collision

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"github.com/samdwyer/dungeongrow/internal/geom"
)

// Policy decides how volumes are padded before they are compared.
type Policy int

const (
	// PolicyShrink pulls every face in by the padding, so rooms may touch and
	// overlap slightly.
	PolicyShrink Policy = iota
	// PolicyGrow pushes every face out by the padding, so rooms keep a gap.
	PolicyGrow
)

// String returns the policy name used in configuration files.
func (p Policy) String() string {
	switch p {
	case PolicyShrink:
		return "shrink"
	case PolicyGrow:
		return "grow"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "shrink":
		return PolicyShrink, nil
	case "grow":
		return PolicyGrow, nil
	default:
		return 0, fmt.Errorf("unknown collision policy %q", s)
	}
}

// entry wraps a room volume for R-tree storage.
type entry struct {
	id     uuid.UUID
	seq    int
	bounds geom.AABB // padded
	rect   rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an incremental collision index over placed room volumes. It is owned
// by a single generation pass and is not safe for concurrent use.
type Index struct {
	tree    *rtreego.Rtree
	entries map[uuid.UUID]*entry
	policy  Policy
	padding float64
	seq     int
}

// NewIndex creates an empty index. padding is a non-negative distance applied
// according to policy.
func NewIndex(policy Policy, padding float64) *Index {
	if padding < 0 {
		padding = -padding
	}
	return &Index{
		tree:    rtreego.NewTree(3, 2, 8), // 3D, small fan-out suits tens of rooms
		entries: make(map[uuid.UUID]*entry),
		policy:  policy,
		padding: padding,
	}
}

// Padded returns b as the index compares it.
func (idx *Index) Padded(b geom.AABB) geom.AABB {
	if idx.policy == PolicyGrow {
		return b.Pad(idx.padding)
	}
	return b.Pad(-idx.padding)
}

// Insert records the volume of a committed room. Re-inserting an id replaces
// its previous volume.
func (idx *Index) Insert(id uuid.UUID, b geom.AABB) {
	idx.Remove(id)
	padded := idx.Padded(b)
	rect, err := toRect(padded)
	if err != nil {
		return
	}
	idx.seq++
	e := &entry{id: id, seq: idx.seq, bounds: padded, rect: rect}
	idx.entries[id] = e
	idx.tree.Insert(e)
}

// Remove drops the volume recorded for id and reports whether one existed.
func (idx *Index) Remove(id uuid.UUID) bool {
	e, ok := idx.entries[id]
	if !ok {
		return false
	}
	delete(idx.entries, id)
	idx.tree.Delete(e)
	return true
}

// Overlaps reports whether b, once padded, intersects any recorded volume.
func (idx *Index) Overlaps(b geom.AABB) bool {
	return len(idx.Overlapping(b)) > 0
}

// Overlapping returns the ids whose padded volume intersects the padded b, in
// insertion order.
func (idx *Index) Overlapping(b geom.AABB) []uuid.UUID {
	query := idx.Padded(b)
	rect, err := toRect(query)
	if err != nil {
		return nil
	}
	hits := make([]*entry, 0)
	for _, item := range idx.tree.SearchIntersect(rect) {
		e := item.(*entry)
		// The tree is only a broad phase; confirm with an exact interior test.
		if e.bounds.Intersects(query) {
			hits = append(hits, e)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq < hits[j].seq })
	ids := make([]uuid.UUID, len(hits))
	for i, e := range hits {
		ids[i] = e.id
	}
	return ids
}

// Bounds returns the padded volume recorded for id.
func (idx *Index) Bounds(id uuid.UUID) (geom.AABB, bool) {
	e, ok := idx.entries[id]
	if !ok {
		return geom.AABB{}, false
	}
	return e.bounds, true
}

// Len returns the number of recorded volumes.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func toRect(b geom.AABB) (rtreego.Rect, error) {
	size := b.Size()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z},
		[]float64{size.X, size.Y, size.Z},
	)
}
