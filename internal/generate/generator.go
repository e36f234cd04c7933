// Package generate grows a layout of rooms outward from a seed room, labels
// the main path through the resulting tree, adds loop connections and lays
// corridors along every accepted connection.
package generate

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/collision"
	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/graph"
	"github.com/samdwyer/dungeongrow/internal/scene"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Host is the scene a layout is built into. scene.Memory implements it; an
// engine integration would wrap its own scene graph.
type Host interface {
	Root() scene.Handle
	Instantiate(prefab scene.Prefab, pose geom.Pose, parent scene.Handle) scene.Handle
	SetPose(h scene.Handle, pose geom.Pose)
	SetScale(h scene.Handle, scale geom.Vec3)
	Destroy(h scene.Handle)
	Bounds(h scene.Handle) geom.AABB
}

// Generator runs generation passes. It is not safe for concurrent use; callers
// must serialize calls to Generate.
type Generator struct {
	cfg       config.Config
	catalogue *gamedata.Catalogue
	registry  *gamedata.Registry
	host      Host
	rng       *rand.Rand
	log       logr.Logger

	corridor *scene.Prefab
	wall     *scene.Prefab

	// Owned by the pass in progress.
	index   *collision.Index
	dungeon *world.Dungeon
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logr.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New creates a generator that builds into host using archetypes from catalogue.
// All randomness is drawn from rng so a seeded rng reproduces a layout.
func New(cfg config.Config, catalogue *gamedata.Catalogue, host Host, rng *rand.Rand, opts ...Option) *Generator {
	if catalogue == nil {
		catalogue = &gamedata.Catalogue{}
	}
	g := &Generator{
		cfg:       cfg,
		catalogue: catalogue,
		registry:  gamedata.NewRegistry(catalogue.Rooms),
		host:      host,
		rng:       rng,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if catalogue.Corridor != nil && selects(cfg.Corridor.Archetype, catalogue.Corridor.ID) {
		p := catalogue.Corridor.Prefab()
		g.corridor = &p
	} else if catalogue.Corridor != nil && cfg.Corridor.Archetype != config.ArchetypeNone {
		g.log.Info("corridor archetype not in catalogue, corridors disabled", "archetype", cfg.Corridor.Archetype)
	}
	if catalogue.Wall != nil && selects(cfg.Walls.Archetype, catalogue.Wall.ID) {
		p := catalogue.Wall.Prefab()
		g.wall = &p
	} else if catalogue.Wall != nil && cfg.Walls.Archetype != config.ArchetypeNone {
		g.log.Info("wall archetype not in catalogue, walls disabled", "archetype", cfg.Walls.Archetype)
	}
	return g
}

// selects reports whether a configured archetype name picks the catalogue entry id.
// An empty name picks whatever the catalogue offers.
func selects(name, id string) bool {
	return name == "" || name == id
}

// Generate runs one full pass: expansion, main path labeling, loop connection,
// leftover sealing, corridor emission and skewer cleanup. It always completes;
// degraded outcomes show up in the returned layout's Stats.
// Each pass builds into the generator's host, so use a fresh host per pass.
func (g *Generator) Generate(ctx context.Context) *world.Dungeon {
	tracer := telemetry.Tracer("generate")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	g.reset()
	d := g.dungeon

	g.expand(ctx)
	g.labelMainPath(ctx)
	g.connectLoops(ctx)
	g.sealLeftovers()
	g.emitCorridors(ctx)
	g.cleanupSkewers(ctx)

	d.Stats.RoomsPlaced = len(d.Rooms)
	d.Stats.LoopEdges = len(d.LoopEdges)
	d.Stats.Corridors = len(d.Corridors)

	span.SetAttributes(
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.tree_edges", len(d.TreeEdges)),
		attribute.Int("dungeon.loop_edges", len(d.LoopEdges)),
		attribute.Int("dungeon.corridors", len(d.Corridors)),
		attribute.Int("dungeon.sealed_openings", d.Stats.SealedOpenings),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	g.log.Info("generated layout",
		"seed", d.Seed,
		"rooms", len(d.Rooms),
		"treeEdges", len(d.TreeEdges),
		"loopEdges", len(d.LoopEdges),
		"corridors", len(d.Corridors),
		"sealed", d.Stats.SealedOpenings,
		"skewered", d.Stats.SkeweredRooms,
	)
	return d
}

// reset starts a new pass with an empty layout and a fresh collision index.
func (g *Generator) reset() {
	g.index = collision.NewIndex(g.cfg.CollisionPolicy(), g.cfg.Collision.Padding)
	g.dungeon = world.NewDungeon(g.cfg.ResolveSeed())
}

// labelMainPath finds the approximate diameter of the room tree and tags its
// endpoints. Layouts with fewer than two rooms have no path.
func (g *Generator) labelMainPath(ctx context.Context) {
	_, span := telemetry.Tracer("generate").Start(ctx, "dungeon.main_path")
	defer span.End()

	d := g.dungeon
	path, ok := graph.Build(d.Rooms, d.TreeEdges, g.cfg.Generation.TraversalCost).Diameter()
	if !ok {
		g.log.V(1).Info("main path skipped", "rooms", len(d.Rooms))
		return
	}
	path.First.Role = world.RoleEntry
	path.Last.Role = world.RoleExit
	d.Path = &path

	span.SetAttributes(
		attribute.Int("path.rooms", len(path.Rooms)),
		attribute.Float64("path.length", path.Length),
	)
	g.log.V(1).Info("main path labeled", "rooms", len(path.Rooms), "length", path.Length)
}

// sealLeftovers seals openings still pending once expansion and loop
// connection are finished. Without a wall archetype they stay pending.
func (g *Generator) sealLeftovers() {
	d := g.dungeon
	pending := 0
	for _, o := range d.Openings() {
		if o.Pending() {
			pending++
		}
	}
	d.Stats.LeftoverOpenings = pending
	if pending == 0 || !g.cfg.Generation.SealLeftoverOpenings || g.wall == nil {
		return
	}
	for _, o := range d.Openings() {
		g.seal(o)
	}
	g.log.V(1).Info("sealed leftover openings", "count", pending)
}

// seal closes a pending opening, building a wall when a wall archetype is configured.
func (g *Generator) seal(o *world.Opening) {
	if !o.Pending() {
		return
	}
	if g.wall != nil {
		o.Seal(g)
	} else {
		o.Seal(nil)
	}
	g.dungeon.Stats.SealedOpenings++
	if o.Wall() != 0 {
		g.dungeon.Walls = append(g.dungeon.Walls, world.Wall{Opening: o, Handle: o.Wall()})
	}
}

// BuildWall implements world.WallBuilder. Walls sit beside rooms under the
// generation root.
func (g *Generator) BuildWall(o *world.Opening) scene.Handle {
	return g.host.Instantiate(*g.wall, o.Pose(), g.host.Root())
}

// newRoomID draws a room identity from the pass's rng so seeded runs repeat.
// Reading from a rand.Rand never fails.
func (g *Generator) newRoomID() uuid.UUID {
	id, _ := uuid.NewRandomFromReader(g.rng)
	return id
}

// Build runs one pass into a fresh in-memory scene, seeding the rng from the
// configuration's resolved seed.
func Build(ctx context.Context, cfg config.Config, catalogue *gamedata.Catalogue, opts ...Option) (*world.Dungeon, *scene.Memory) {
	host := scene.NewMemory()
	rng := rand.New(rand.NewSource(cfg.ResolveSeed()))
	return New(cfg, catalogue, host, rng, opts...).Generate(ctx), host
}
