package generate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// emitCorridors lays corridors along main path edges first, then the rest of
// the tree, then loop edges.
func (g *Generator) emitCorridors(ctx context.Context) {
	_, span := telemetry.Tracer("generate").Start(ctx, "dungeon.corridors")
	defer span.End()

	if g.corridor == nil {
		g.log.V(1).Info("no corridor archetype, corridors skipped")
		return
	}
	d := g.dungeon
	if d.Path != nil {
		for _, e := range d.Path.Edges {
			g.emit(e, world.CorridorMain)
		}
	}
	for _, e := range d.TreeEdges {
		if !d.Path.HasEdge(e) {
			g.emit(e, world.CorridorTree)
		}
	}
	for _, e := range d.LoopEdges {
		g.emit(e, world.CorridorLoop)
	}

	span.SetAttributes(attribute.Int("corridors.count", len(d.Corridors)))
	g.log.V(1).Info("corridors emitted", "count", len(d.Corridors))
}

func (g *Generator) emit(e world.Edge, kind world.CorridorKind) {
	c := g.EmitCorridor(e.A.Position(), e.B.Position())
	if c == nil {
		return
	}
	c.Kind = kind
	c.Edge = e
	g.dungeon.Corridors = append(g.dungeon.Corridors, c)
}

// EmitCorridor instantiates a straight corridor between two points. The
// segment lies on the ground plane, so any height difference is ignored when
// working out its direction and length. It returns nil without a corridor
// archetype or when the points coincide on the ground plane.
func (g *Generator) EmitCorridor(from, to geom.Vec3) *world.Corridor {
	if g.corridor == nil {
		return nil
	}
	delta := to.Sub(from).Flat()
	length := delta.Length()
	if length < geom.Epsilon {
		return nil
	}
	dir := delta.Scale(1 / length)
	mid := from.Lerp(to, 0.5)
	pose := geom.Pose{Position: mid, Yaw: geom.LookRotation(dir)}

	h := g.host.Instantiate(*g.corridor, pose, g.host.Root())
	g.host.SetScale(h, geom.Vec3{X: 1, Y: 1, Z: length})

	return &world.Corridor{
		From:      from,
		To:        to,
		Midpoint:  mid,
		Direction: dir,
		Length:    length,
		Yaw:       pose.Yaw,
		Handle:    h,
		Bounds:    g.host.Bounds(h),
	}
}
