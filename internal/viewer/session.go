package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/entity"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/generate"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/ui"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// session holds everything the viewer shows apart from the screen itself.
type session struct {
	cfg       config.Config
	catalogue *gamedata.Catalogue
	log       logr.Logger
	scale     float64

	dungeon  *world.Dungeon
	raster   *ui.Raster
	palette  *ui.Palette
	explorer *entity.Explorer
	overlays ui.Overlays
	state    State
	running  bool
}

func newSession(cfg config.Config, catalogue *gamedata.Catalogue, log logr.Logger, scale float64) *session {
	return &session{
		cfg:       cfg,
		catalogue: catalogue,
		log:       log,
		scale:     scale,
		palette:   ui.NewPalette(catalogue),
		overlays:  ui.Overlays{MainPath: true, Corridors: true},
		state:     StateExplore,
		running:   true,
	}
}

// regenerate builds a layout from the current config and drops the explorer
// on the spawn marker.
func (s *session) regenerate(ctx context.Context) {
	ctx, span := telemetry.Tracer("viewer").Start(ctx, "viewer.regenerate")
	defer span.End()

	s.dungeon, _ = generate.Build(ctx, s.cfg, s.catalogue, generate.WithLogger(s.log))
	s.raster = ui.Rasterize(s.dungeon, s.scale)
	s.palette.ShadePath(s.dungeon.Path)

	if m, ok := entity.Find(s.raster.Markers, entity.MarkerSpawn); ok {
		x, y := s.raster.ToCell(m.Position)
		s.explorer = entity.NewExplorer(x, y)
	} else {
		// Fallback: center of the raster
		s.explorer = entity.NewExplorer(s.raster.Width/2, s.raster.Height/2)
	}

	span.SetAttributes(
		attribute.Int64("dungeon.seed", s.dungeon.Seed),
		attribute.Int("dungeon.rooms", len(s.dungeon.Rooms)),
		attribute.Int("explorer.x", s.explorer.X),
		attribute.Int("explorer.y", s.explorer.Y),
	)
	s.log.V(1).Info("layout ready", "seed", s.dungeon.Seed, "rooms", len(s.dungeon.Rooms))
}

// reseed moves to the next numeric seed. A seed phrase is dropped since the
// next seed is derived from the resolved one.
func (s *session) reseed(ctx context.Context) {
	s.cfg.SeedPhrase = ""
	s.cfg.Seed = s.dungeon.Seed + 1
	s.regenerate(ctx)
}

// move attempts to move the explorer by the given delta.
func (s *session) move(dx, dy int) bool {
	nx, ny := s.explorer.X+dx, s.explorer.Y+dy
	if !s.raster.At(nx, ny).Passable() {
		return false
	}
	s.explorer.Move(dx, dy)
	return true
}

// handleKey applies one key press.
func (s *session) handleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.running = false

	case tcell.KeyUp:
		s.move(0, -1)
	case tcell.KeyDown:
		s.move(0, 1)
	case tcell.KeyLeft:
		s.move(-1, 0)
	case tcell.KeyRight:
		s.move(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			s.running = false
		case 'r', 'R':
			s.reseed(ctx)
		case 'p', 'P':
			s.overlays.MainPath = !s.overlays.MainPath
		case 'c', 'C':
			s.overlays.Corridors = !s.overlays.Corridors
		case 'i', 'I':
			if s.state == StateInspect {
				s.state = StateExplore
			} else {
				s.state = StateInspect
			}
		}
	}
}

// inspectLine lists the openings of the room under the explorer.
func (s *session) inspectLine() string {
	ri := s.raster.RoomAt(s.explorer.X, s.explorer.Y)
	if ri < 0 || ri >= len(s.dungeon.Rooms) {
		return "not in a room"
	}
	room := s.dungeon.Rooms[ri]
	parts := make([]string, 0, len(room.Openings()))
	for _, o := range room.Openings() {
		parts = append(parts, fmt.Sprintf("%s:%s", o.Direction(), o.State()))
	}
	return fmt.Sprintf("%s %s [%s]", room.Archetype, room.ID.String()[:8], strings.Join(parts, " "))
}
