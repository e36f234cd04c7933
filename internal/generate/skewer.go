package generate

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// cleanupSkewers removes rooms that a corridor runs straight through. Rooms on
// the main path are never removed.
func (g *Generator) cleanupSkewers(ctx context.Context) {
	_, span := telemetry.Tracer("generate").Start(ctx, "dungeon.skewer")
	defer span.End()

	sk := g.cfg.Skewer
	if !sk.Enabled {
		return
	}
	d := g.dungeon
	rooms := append([]*world.Room(nil), d.Rooms...)
	for _, r := range rooms {
		if d.Path.Contains(r) {
			continue
		}
		for _, c := range d.Corridors {
			if c.Edge.A != nil && c.Edge.Touches(r) {
				continue
			}
			if Skewers(c.Bounds, r.Bounds, sk.MinCoverage, sk.CenterTolerance) {
				g.removeRoom(r)
				break
			}
		}
	}

	span.SetAttributes(attribute.Int("skewer.removed", d.Stats.SkeweredRooms))
	if d.Stats.SkeweredRooms > 0 {
		g.log.V(1).Info("removed skewered rooms", "count", d.Stats.SkeweredRooms)
	}
}

// removeRoom deletes r from the layout along with its bounds entry, the
// corridors on its edges, its walls and its instance.
func (g *Generator) removeRoom(r *world.Room) {
	d := g.dungeon
	var walls []world.Wall
	for _, w := range d.Walls {
		if w.Opening.Room() == r {
			walls = append(walls, w)
		}
	}
	for _, c := range d.RemoveRoom(r) {
		g.host.Destroy(c.Handle)
	}
	for _, w := range walls {
		g.host.Destroy(w.Handle)
	}
	if !g.index.Remove(r.ID) {
		g.log.V(1).Info("skewered room had no bounds entry", "room", r.ID)
	}
	g.host.Destroy(r.Handle)
	d.Stats.SkeweredRooms++
}

// Skewers reports whether corridor passes clean through room along the X or
// Z axis: it covers at least minCoverage of the room's extent on that axis,
// sticks out past both opposite faces, and is centered on the room across the
// other axis within tolerance.
func Skewers(corridor, room geom.AABB, minCoverage, tolerance float64) bool {
	if !corridor.Footprint().Intersects(room.Footprint()) {
		return false
	}
	cc, rc := corridor.Center(), room.Center()
	alongX := pierces(corridor.Min.X, corridor.Max.X, room.Min.X, room.Max.X, minCoverage) &&
		math.Abs(cc.Z-rc.Z) <= tolerance
	alongZ := pierces(corridor.Min.Z, corridor.Max.Z, room.Min.Z, room.Max.Z, minCoverage) &&
		math.Abs(cc.X-rc.X) <= tolerance
	return alongX || alongZ
}

// pierces checks one axis: the overlap covers enough of the room and the
// corridor extends beyond both of the room's faces.
func pierces(cMin, cMax, rMin, rMax, minCoverage float64) bool {
	extent := rMax - rMin
	if extent <= 0 {
		return false
	}
	overlap := math.Min(cMax, rMax) - math.Max(cMin, rMin)
	return overlap >= minCoverage*extent && cMin < rMin && cMax > rMax
}
