package generate

import (
	"context"

	"github.com/zyedidia/generic/queue"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// ExpansionState is the frontier expander's progress.
type ExpansionState int

const (
	ExpansionEmpty ExpansionState = iota
	ExpansionExpanding
	ExpansionDone
)

func (s ExpansionState) String() string {
	switch s {
	case ExpansionEmpty:
		return "empty"
	case ExpansionExpanding:
		return "expanding"
	case ExpansionDone:
		return "done"
	default:
		return "unknown"
	}
}

// expander grows the room tree breadth first from the seed room.
type expander struct {
	g        *Generator
	frontier *queue.Queue[*world.Opening]
	state    ExpansionState
}

func (g *Generator) expand(ctx context.Context) {
	_, span := telemetry.Tracer("generate").Start(ctx, "dungeon.expand")
	defer span.End()

	e := &expander{g: g, frontier: queue.New[*world.Opening]()}
	e.run()

	d := g.dungeon
	span.SetAttributes(
		attribute.Int("expand.rooms", len(d.Rooms)),
		attribute.Int("expand.attempts", d.Stats.PlacementAttempts),
		attribute.Int("expand.sealed", d.Stats.SealedOpenings),
	)
	g.log.V(1).Info("expansion finished",
		"rooms", len(d.Rooms),
		"attempts", d.Stats.PlacementAttempts,
		"adjustments", d.Stats.LengthAdjustments,
		"sealed", d.Stats.SealedOpenings,
	)
}

func (e *expander) run() {
	g := e.g
	maxRooms := g.cfg.Generation.MaxRooms
	if maxRooms <= 0 {
		e.state = ExpansionDone
		return
	}

	seed := e.placeSeed()
	if seed == nil {
		g.log.Info("no room archetypes available, layout is empty")
		e.state = ExpansionDone
		return
	}
	for _, o := range seed.PendingOpenings() {
		e.frontier.Enqueue(o)
	}
	e.state = ExpansionExpanding

	for !e.frontier.Empty() && len(g.dungeon.Rooms) < maxRooms {
		source := e.frontier.Dequeue()
		if !source.Pending() {
			continue
		}

		p, ok := g.TryPlace(source)
		if !ok {
			g.seal(source)
			continue
		}

		world.Connect(source, p.Opening)
		g.dungeon.TreeEdges = append(g.dungeon.TreeEdges, world.Edge{A: source, B: p.Opening, Kind: world.EdgeTree})
		for _, o := range p.Room.PendingOpenings() {
			e.frontier.Enqueue(o)
		}
	}
	e.state = ExpansionDone
}

// placeSeed commits the first room at the origin. The configured start
// archetype is used when it exists; otherwise one is drawn at random.
func (e *expander) placeSeed() *world.Room {
	g := e.g
	var arch *gamedata.RoomArchetype
	if id := g.cfg.Generation.StartArchetype; id != "" {
		arch = g.registry.GetByID(id)
		if arch == nil {
			g.log.Info("start archetype not in catalogue, drawing at random", "archetype", id)
		}
	}
	if arch == nil {
		arch = g.registry.SpawnRandom(g.rng)
	}
	if arch == nil {
		return nil
	}

	h := g.host.Instantiate(arch.Prefab(), geom.Pose{}, g.host.Root())
	bounds := g.host.Bounds(h)
	return g.commitRoom(arch, h, bounds, openingSpecs(arch, bounds), geom.Vec3{})
}
