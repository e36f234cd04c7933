package generate

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Placement is a committed room attached to a source opening.
type Placement struct {
	Room *world.Room
	// Opening is the new room's opening that faces back at the source.
	Opening        *world.Opening
	Archetype      *gamedata.RoomArchetype
	CorridorLength float64
}

// attemptResult is why a single archetype attempt ended.
type attemptResult int

const (
	attemptPlaced attemptResult = iota
	attemptNoMatch               // archetype has no opening facing back
	attemptBlocked               // corridor too long or bounds overlap
)

// openingSpec is an opening position in the archetype's local space.
type openingSpec struct {
	dir world.Direction
	pos geom.Vec3
}

// TryPlace attempts to attach a new room to source. Each attempt picks a random
// archetype; attempts that fail on geometry are retried with the corridor
// alternately shortened and lengthened before the next archetype is drawn.
// It reports false when every attempt failed, and the caller should seal source.
func (g *Generator) TryPlace(source *world.Opening) (Placement, bool) {
	gen := g.cfg.Generation
	for attempt := 0; attempt < gen.MaxAttemptsPerOpening; attempt++ {
		arch := g.registry.SpawnRandom(g.rng)
		if arch == nil {
			return Placement{}, false
		}
		g.dungeon.Stats.PlacementAttempts++

		base := g.corridorLength()
		p, res := g.tryArchetype(source, arch, base)
		if res == attemptPlaced {
			return p, true
		}
		if res == attemptNoMatch {
			g.log.V(2).Info("archetype has no matching opening", "archetype", arch.ID, "needs", source.Direction().Opposite())
			continue
		}

		tried := mapset.New[float64]()
		tried.Put(base)
		for k := 1; k <= gen.MaxAdjustments && g.cfg.Corridor.AdjustStep > 0; k++ {
			length := g.cfg.Corridor.Clamp(adjustedLength(base, g.cfg.Corridor.AdjustStep, k))
			if tried.Has(length) {
				continue
			}
			tried.Put(length)
			g.dungeon.Stats.LengthAdjustments++
			if p, res = g.tryArchetype(source, arch, length); res == attemptPlaced {
				return p, true
			}
		}
		g.log.V(2).Info("placement rejected", "archetype", arch.ID, "attempt", attempt, "length", base)
	}
	return Placement{}, false
}

// adjustedLength returns the k-th length in the sequence base-s, base+s,
// base-2s, base+2s and so on.
func adjustedLength(base, step float64, k int) float64 {
	delta := step * float64((k+1)/2)
	if k%2 == 1 {
		return base - delta
	}
	return base + delta
}

// corridorLength draws the initial corridor length for an attempt.
func (g *Generator) corridorLength() float64 {
	c := g.cfg.Corridor
	if length, ok := c.Fixed(); ok {
		return length
	}
	return c.MinLength + g.rng.Float64()*(c.MaxLength-c.MinLength)
}

// tryArchetype instantiates arch provisionally, moves its matching opening to
// the end of a corridor of the given length and commits it if nothing overlaps.
// With the reach limit on, a corridor longer than the source room is blocked
// before anything is instantiated.
// The provisional instance is destroyed on every path that does not commit.
func (g *Generator) tryArchetype(source *world.Opening, arch *gamedata.RoomArchetype, length float64) (Placement, attemptResult) {
	if g.cfg.Corridor.LimitReach && length > source.Room().Extent(source.Direction()) {
		return Placement{}, attemptBlocked
	}

	h := g.host.Instantiate(arch.Prefab(), geom.Pose{}, g.host.Root())
	committed := false
	defer func() {
		if !committed {
			g.host.Destroy(h)
		}
	}()

	specs := openingSpecs(arch, g.host.Bounds(h))
	want := source.Direction().Opposite()
	match := -1
	for i, s := range specs {
		if s.dir == want {
			match = i
			break
		}
	}
	if match < 0 {
		return Placement{}, attemptNoMatch
	}

	target := source.Position().Add(source.Forward().Scale(length))
	offset := target.Sub(specs[match].pos)
	g.host.SetPose(h, geom.At(offset))
	bounds := g.host.Bounds(h)

	if g.index.Overlaps(bounds) {
		return Placement{}, attemptBlocked
	}

	room := g.commitRoom(arch, h, bounds, specs, offset)
	committed = true
	return Placement{
		Room:           room,
		Opening:        room.Openings()[match],
		Archetype:      arch,
		CorridorLength: length,
	}, attemptPlaced
}

// commitRoom registers a placed instance as a room of the layout.
func (g *Generator) commitRoom(arch *gamedata.RoomArchetype, h scene.Handle, bounds geom.AABB, specs []openingSpec, offset geom.Vec3) *world.Room {
	room := world.NewRoom(g.newRoomID(), arch.ID, bounds, h)
	for _, s := range specs {
		room.AddOpening(s.dir, s.pos.Add(offset))
	}
	g.index.Insert(room.ID, bounds)
	g.dungeon.AddRoom(room)
	return room
}

// openingSpecs returns the archetype's openings for an instance whose bounds
// are local. Authored openings sit on their face's center shifted along the
// face by their offset; without authored openings every side gets one at its
// center. Openings sit at floor level.
func openingSpecs(arch *gamedata.RoomArchetype, local geom.AABB) []openingSpec {
	if len(arch.Openings) == 0 {
		specs := make([]openingSpec, 0, len(world.Directions))
		for _, dir := range world.Directions {
			specs = append(specs, openingSpec{dir: dir, pos: faceCenter(local, dir)})
		}
		return specs
	}

	specs := make([]openingSpec, 0, len(arch.Openings))
	for _, ao := range arch.Openings {
		dir, err := ao.Direction()
		if err != nil {
			continue
		}
		pos := faceCenter(local, dir)
		if dir == world.North || dir == world.South {
			pos.X += ao.Offset
		} else {
			pos.Z += ao.Offset
		}
		specs = append(specs, openingSpec{dir: dir, pos: pos})
	}
	return specs
}

func faceCenter(b geom.AABB, dir world.Direction) geom.Vec3 {
	c := b.Center()
	c.Y = b.Min.Y
	switch dir {
	case world.North:
		c.Z = b.Max.Z
	case world.East:
		c.X = b.Max.X
	case world.South:
		c.Z = b.Min.Z
	case world.West:
		c.X = b.Min.X
	}
	return c
}
