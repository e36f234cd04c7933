package generate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/world"
)

const (
	// minFacing is the least dot product between one opening's forward vector
	// and the reverse of its partner's.
	minFacing = 0.9
	// minAlignment is the least dot product between an opening's forward vector
	// and the direction to its partner.
	minAlignment = 0.7
)

// connectLoops joins pending openings of different rooms that face each other
// at close range, adding cycles to the room graph.
func (g *Generator) connectLoops(ctx context.Context) {
	_, span := telemetry.Tracer("generate").Start(ctx, "dungeon.loops")
	defer span.End()

	d := g.dungeon
	cfg := g.cfg.Loops
	if len(d.Rooms) < 2 || cfg.ChancePerOpening <= 0 || cfg.MaxConnections <= 0 {
		return
	}
	maxDistSq := cfg.MaxDistance * cfg.MaxDistance

	openings := d.Openings()
	added := 0
	for _, o := range openings {
		if added >= cfg.MaxConnections {
			break
		}
		if !o.Pending() {
			continue
		}
		if g.rng.Float64() >= cfg.ChancePerOpening {
			continue
		}
		partner := bestPartner(o, openings, maxDistSq)
		if partner == nil {
			continue
		}
		world.Connect(o, partner)
		d.LoopEdges = append(d.LoopEdges, world.Edge{A: o, B: partner, Kind: world.EdgeLoop})
		added++
	}

	span.SetAttributes(attribute.Int("loops.added", added))
	g.log.V(1).Info("loop connections added", "count", added)
}

// bestPartner returns the nearest pending opening that could be joined to o,
// or nil. Candidates must belong to another room, face the opposite way, lie
// within range and sit roughly in front of o.
func bestPartner(o *world.Opening, candidates []*world.Opening, maxDistSq float64) *world.Opening {
	forward := o.Forward().Flat().Normalize()
	want := o.Direction().Opposite()

	var best *world.Opening
	bestDistSq := 0.0
	for _, c := range candidates {
		if c == o || !c.Pending() || c.Room() == o.Room() || c.Direction() != want {
			continue
		}
		delta := c.Position().Sub(o.Position()).Flat()
		distSq := delta.Dot(delta)
		if distSq > maxDistSq {
			continue
		}
		if forward.Dot(c.Forward().Flat().Normalize().Scale(-1)) < minFacing {
			continue
		}
		// Coincident openings face each other trivially.
		if !delta.IsZero() && forward.Dot(delta.Normalize()) < minAlignment {
			continue
		}
		if best == nil || distSq < bestDistSq {
			best, bestDistSq = c, distSq
		}
	}
	return best
}
