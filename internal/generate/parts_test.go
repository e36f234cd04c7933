package generate

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/queue"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
	"github.com/samdwyer/dungeongrow/internal/world"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAdjustedLengthAlternates(t *testing.T) {
	want := []float64{4, 6, 3, 7, 2}
	for k, w := range want {
		if got := adjustedLength(5, 1, k+1); got != w {
			t.Errorf("adjustedLength(5, 1, %d) = %v, want %v", k+1, got, w)
		}
	}
}

func TestOpeningSpecs(t *testing.T) {
	reg := gamedata.NewRegistry(gamedata.MustLoadCatalogue().Rooms)

	gallery := reg.GetByID("gallery")
	specs := openingSpecs(gallery, *gallery.Prefab().Visual)
	want := []openingSpec{
		{dir: world.East, pos: geom.Vec3{X: 6}},
		{dir: world.West, pos: geom.Vec3{X: -6}},
		{dir: world.North, pos: geom.Vec3{X: -3, Z: 3}},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d openings, want %d", len(specs), len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("opening %d = %+v, want %+v", i, specs[i], want[i])
		}
	}

	chamber := reg.GetByID("chamber")
	specs = openingSpecs(chamber, *chamber.Prefab().Visual)
	if len(specs) != 4 {
		t.Fatalf("derived openings = %d, want 4", len(specs))
	}
	for _, s := range specs {
		if s.pos.Y != 0 {
			t.Errorf("%s opening not at floor level: %v", s.dir, s.pos)
		}
		if got := s.pos.Dot(s.dir.Vector()); got != 4 {
			t.Errorf("%s opening is %v from the center, want 4", s.dir, got)
		}
	}
}

func TestTryPlaceReleasesBlockedCandidates(t *testing.T) {
	cfg := testConfig()
	cfg.Corridor.AdjustStep = 1
	g, host := newTestGenerator(cfg, gamedata.MustLoadCatalogue(), 5)
	g.reset()

	e := &expander{g: g, frontier: queue.New[*world.Opening]()}
	seed := e.placeSeed()
	if seed == nil {
		t.Fatal("seed room not placed")
	}
	// Block all space around the seed room.
	g.index.Insert(uuid.New(), geom.AABB{Min: geom.Vec3{X: -500, Y: -500, Z: -500}, Max: geom.Vec3{X: 500, Y: 500, Z: 500}})

	before := host.Destroyed()
	if _, ok := g.TryPlace(seed.Openings()[0]); ok {
		t.Fatal("TryPlace succeeded inside a blocked volume")
	}
	if host.Destroyed() == before {
		t.Error("no provisional instance was destroyed")
	}
	if got := host.Count(scene.KindRoom); got != 1 {
		t.Errorf("live room instances = %d, want 1", got)
	}
	if len(g.dungeon.Rooms) != 1 || g.index.Len() != 2 {
		t.Errorf("rooms = %d, index = %d; want 1 and 2", len(g.dungeon.Rooms), g.index.Len())
	}
	if g.dungeon.Stats.PlacementAttempts != cfg.Generation.MaxAttemptsPerOpening {
		t.Errorf("PlacementAttempts = %d, want %d", g.dungeon.Stats.PlacementAttempts, cfg.Generation.MaxAttemptsPerOpening)
	}
}

func TestTryPlaceSkipsRepeatedLengths(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.MaxAttemptsPerOpening = 1
	cfg.Generation.MaxAdjustments = 4
	cfg.Corridor = config.CorridorConfig{Length: 1, AdjustStep: 1}
	g, _ := newTestGenerator(cfg, chamberOnly(false), 5)
	g.reset()

	seed := (&expander{g: g, frontier: queue.New[*world.Opening]()}).placeSeed()
	g.index.Insert(uuid.New(), geom.AABB{Min: geom.Vec3{X: -500, Y: -500, Z: -500}, Max: geom.Vec3{X: 500, Y: 500, Z: 500}})

	if _, ok := g.TryPlace(seed.OpeningFacing(world.East)); ok {
		t.Fatal("TryPlace succeeded inside a blocked volume")
	}
	// 0, 2, 0 (clamped, already tried), 3
	if got := g.dungeon.Stats.LengthAdjustments; got != 3 {
		t.Errorf("LengthAdjustments = %d, want 3", got)
	}
}

func TestTryPlaceAttachesFacingRoom(t *testing.T) {
	cfg := testConfig()
	cfg.Corridor.MinLength, cfg.Corridor.MaxLength, cfg.Corridor.Length = 0, 0, 3
	g, _ := newTestGenerator(cfg, chamberOnly(false), 5)
	g.reset()

	seed := (&expander{g: g, frontier: queue.New[*world.Opening]()}).placeSeed()
	source := seed.OpeningFacing(world.East)
	p, ok := g.TryPlace(source)
	if !ok {
		t.Fatal("TryPlace failed in empty space")
	}
	if p.Opening.Direction() != world.West {
		t.Errorf("matching opening faces %s, want west", p.Opening.Direction())
	}
	gap := p.Opening.Position().Sub(source.Position())
	if !almostEqual(gap.X, 3) || !almostEqual(gap.Z, 0) {
		t.Errorf("gap between openings = %v, want 3 along X", gap)
	}
	if !almostEqual(p.Room.Bounds.Min.X, 7) {
		t.Errorf("new room starts at X = %v, want 7", p.Room.Bounds.Min.X)
	}
	if _, ok := g.index.Bounds(p.Room.ID); !ok {
		t.Error("committed room missing from index")
	}
}

func TestExpanderFinishesDone(t *testing.T) {
	g, _ := newTestGenerator(testConfig(), chamberOnly(true), 2)
	g.reset()
	e := &expander{g: g, frontier: queue.New[*world.Opening]()}
	if e.state != ExpansionEmpty {
		t.Fatalf("initial state = %s, want empty", e.state)
	}
	e.run()
	if e.state != ExpansionDone {
		t.Errorf("final state = %s, want done", e.state)
	}
	if !e.frontier.Empty() && len(g.dungeon.Rooms) < g.cfg.Generation.MaxRooms {
		t.Errorf("expander stopped with work left and budget remaining")
	}
}

// facingRoom creates a room with a single opening at pos.
func facingRoom(dir world.Direction, pos geom.Vec3) (*world.Room, *world.Opening) {
	r := world.NewRoom(uuid.New(), "test", geom.NewAABB(pos, geom.Vec3{X: 1, Y: 1, Z: 1}), 0)
	return r, r.AddOpening(dir, pos)
}

func TestBestPartner(t *testing.T) {
	a, src := facingRoom(world.East, geom.Vec3{X: 5})
	same := a.AddOpening(world.West, geom.Vec3{X: 9})
	_, near := facingRoom(world.West, geom.Vec3{X: 15})
	_, far := facingRoom(world.West, geom.Vec3{X: 25})
	_, offside := facingRoom(world.West, geom.Vec3{X: 8, Z: 10})
	_, wrongWay := facingRoom(world.East, geom.Vec3{X: 12})

	candidates := []*world.Opening{src, same, far, offside, wrongWay, near}
	if got := bestPartner(src, candidates, 20*20); got != near {
		t.Errorf("bestPartner() = %p, want the nearest facing opening %p", got, near)
	}
	if got := bestPartner(src, []*world.Opening{src, same, offside, wrongWay}, 20*20); got != nil {
		t.Errorf("bestPartner() = %v, want nil", got.Position())
	}
	if got := bestPartner(src, candidates, 5*5); got != nil {
		t.Errorf("bestPartner() beyond range = %v, want nil", got.Position())
	}

	world.Connect(near, far)
	if got := bestPartner(src, candidates, 20*20); got != nil {
		t.Errorf("bestPartner() returned a connected opening")
	}
}

func TestConnectLoopsRespectsCap(t *testing.T) {
	build := func(maxConnections int) *Generator {
		cfg := testConfig()
		cfg.Loops.ChancePerOpening = 1
		cfg.Loops.MaxDistance = 10
		cfg.Loops.MaxConnections = maxConnections
		g, _ := newTestGenerator(cfg, &gamedata.Catalogue{}, 1)
		g.reset()
		for _, spec := range []struct {
			dir world.Direction
			pos geom.Vec3
		}{
			{world.East, geom.Vec3{X: 5}},
			{world.West, geom.Vec3{X: 9}},
			{world.East, geom.Vec3{X: 5, Z: 30}},
			{world.West, geom.Vec3{X: 9, Z: 30}},
		} {
			r, _ := facingRoom(spec.dir, spec.pos)
			g.dungeon.AddRoom(r)
		}
		return g
	}

	g := build(1)
	g.connectLoops(context.Background())
	if got := len(g.dungeon.LoopEdges); got != 1 {
		t.Errorf("loop edges with cap 1 = %d, want 1", got)
	}

	g = build(5)
	g.connectLoops(context.Background())
	if got := len(g.dungeon.LoopEdges); got != 2 {
		t.Fatalf("loop edges with cap 5 = %d, want 2", got)
	}
	for _, e := range g.dungeon.LoopEdges {
		if e.Kind != world.EdgeLoop || e.A.Peer() != e.B || e.B.Peer() != e.A {
			t.Errorf("loop edge not mutually connected: %+v", e)
		}
	}
}

func TestSkewers(t *testing.T) {
	room := geom.AABB{Min: geom.Vec3{X: -2, Z: -2}, Max: geom.Vec3{X: 2, Y: 3, Z: 2}}
	box := func(minX, minZ, maxX, maxZ float64) geom.AABB {
		return geom.AABB{Min: geom.Vec3{X: minX, Z: minZ}, Max: geom.Vec3{X: maxX, Y: 3, Z: maxZ}}
	}
	tests := []struct {
		name     string
		corridor geom.AABB
		want     bool
	}{
		{"through along X", box(-10, -0.5, 10, 0.5), true},
		{"through along Z", box(-0.5, -10, 0.5, 10), true},
		{"ends inside", box(-10, -0.5, 1, 0.5), false},
		{"misses", box(-10, 3, 10, 4), false},
		{"off center", box(-10, 1, 10, 1.8), false},
	}
	for _, tt := range tests {
		if got := Skewers(tt.corridor, room, 0.9, 1); got != tt.want {
			t.Errorf("%s: Skewers() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCleanupSkewersRemovesPiercedRoom(t *testing.T) {
	cat := chamberOnly(true)
	cfg := testConfig()
	cfg.Skewer.Enabled = true
	g, host := newTestGenerator(cfg, cat, 1)
	g.reset()
	reg := gamedata.NewRegistry(cat.Rooms)
	chamber := reg.GetByID("chamber")

	place := func(x float64) *world.Room {
		h := host.Instantiate(chamber.Prefab(), geom.At(geom.Vec3{X: x}), host.Root())
		bounds := host.Bounds(h)
		local := *chamber.Prefab().Visual
		return g.commitRoom(chamber, h, bounds, openingSpecs(chamber, local), geom.Vec3{X: x})
	}
	left, victim, right := place(-24), place(0), place(24)

	from, to := left.OpeningFacing(world.East), right.OpeningFacing(world.West)
	world.Connect(from, to)
	edge := world.Edge{A: from, B: to, Kind: world.EdgeTree}
	g.dungeon.TreeEdges = append(g.dungeon.TreeEdges, edge)
	g.dungeon.Path = &world.MainPath{First: left, Last: right, Rooms: []*world.Room{left, right}, Edges: []world.Edge{edge}}
	g.emit(edge, world.CorridorMain)
	g.seal(victim.OpeningFacing(world.North))
	wall := victim.OpeningFacing(world.North).Wall()

	g.cleanupSkewers(context.Background())

	if g.dungeon.Stats.SkeweredRooms != 1 {
		t.Fatalf("SkeweredRooms = %d, want 1", g.dungeon.Stats.SkeweredRooms)
	}
	if g.dungeon.RoomIndex(victim) >= 0 {
		t.Error("pierced room still in layout")
	}
	if host.Alive(victim.Handle) || host.Alive(wall) {
		t.Error("pierced room or its wall still instantiated")
	}
	if _, ok := g.index.Bounds(victim.ID); ok {
		t.Error("pierced room still in index")
	}
	if len(g.dungeon.Rooms) != 2 || len(g.dungeon.Corridors) != 1 {
		t.Errorf("rooms = %d, corridors = %d; want 2 and 1", len(g.dungeon.Rooms), len(g.dungeon.Corridors))
	}
}

func TestEmitCorridor(t *testing.T) {
	g, host := newTestGenerator(testConfig(), chamberOnly(false), 1)

	c := g.EmitCorridor(geom.Vec3{}, geom.Vec3{Y: 5, Z: 10})
	if c == nil {
		t.Fatal("EmitCorridor() = nil")
	}
	if c.Length != 10 {
		t.Errorf("Length = %v, want 10", c.Length)
	}
	if c.Direction != (geom.Vec3{Z: 1}) || c.Yaw != 0 {
		t.Errorf("Direction = %v, Yaw = %v; want +Z and 0", c.Direction, c.Yaw)
	}
	if c.Midpoint != (geom.Vec3{Y: 2.5, Z: 5}) {
		t.Errorf("Midpoint = %v, want (0, 2.5, 5)", c.Midpoint)
	}
	if !almostEqual(c.Bounds.Min.Z, 0) || !almostEqual(c.Bounds.Max.Z, 10) || !almostEqual(c.Bounds.Size().X, 2) {
		t.Errorf("Bounds = %+v, want 2 wide spanning Z 0..10", c.Bounds)
	}
	obj, ok := host.Object(c.Handle)
	if !ok || obj.Scale.Z != 10 {
		t.Errorf("corridor instance scale = %v, want Z 10", obj.Scale)
	}

	if c := g.EmitCorridor(geom.Vec3{X: 1, Z: 1}, geom.Vec3{X: 1, Y: 3, Z: 1}); c != nil {
		t.Errorf("vertical segment produced a corridor")
	}

	bare, _ := newTestGenerator(testConfig(), &gamedata.Catalogue{Rooms: chamberOnly(false).Rooms}, 1)
	if c := bare.EmitCorridor(geom.Vec3{}, geom.Vec3{X: 4}); c != nil {
		t.Errorf("corridor emitted without a corridor archetype")
	}
}
