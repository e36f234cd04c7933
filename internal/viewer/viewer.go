package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/ui"
)

// Viewer runs the interactive layout browser.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *session
}

// New creates a viewer that generates layouts from cfg, drawing each room
// cell as scale world units.
func New(cfg config.Config, catalogue *gamedata.Catalogue, log logr.Logger, scale float64) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	s := newSession(cfg, catalogue, log, scale)
	return &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, s.palette),
		session:  s,
	}, nil
}

// Run executes the main viewer loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.session.regenerate(ctx)

	for v.session.running {
		v.render()
		v.handleInput(ctx)
	}

	v.screen.Close()
	return nil
}

func (v *Viewer) render() {
	s := v.session
	v.renderer.Render(s.dungeon, s.raster, s.explorer, s.overlays)
	if s.state == StateInspect {
		v.renderer.RenderMessage(s.inspectLine(), 0)
		v.screen.Show()
	}
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventKey:
		v.session.handleKey(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}
