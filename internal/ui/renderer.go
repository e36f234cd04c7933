package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeongrow/internal/entity"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Overlays toggles optional shading.
type Overlays struct {
	MainPath  bool // gradient along the main path
	Corridors bool // color corridors by kind
}

// Renderer handles drawing a layout to the screen.
type Renderer struct {
	screen  *Screen
	palette *Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the raster around the explorer, then the markers and the explorer.
func (r *Renderer) Render(d *world.Dungeon, raster *Raster, explorer *entity.Explorer, overlays Overlays) {
	r.screen.Clear()
	w, h := r.screen.Size()
	h-- // status line
	ox, oy := viewOffset(explorer.X, raster.Width, w), viewOffset(explorer.Y, raster.Height, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := x+ox, y+oy
			cell := raster.At(gx, gy)
			if cell == CellEmpty {
				continue
			}
			r.screen.SetContent(x, y, cell.Rune(), r.cellStyle(d, raster, gx, gy, cell, overlays))
		}
	}

	markerStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, m := range raster.Markers {
		mx, my := raster.ToCell(m.Position)
		r.screen.SetContent(mx-ox, my-oy, m.Symbol, markerStyle)
	}

	explorerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(explorer.X-ox, explorer.Y-oy, explorer.Symbol, explorerStyle)

	r.RenderMessage(statusLine(d, raster, explorer), h)
	r.screen.Show()
}

func (r *Renderer) cellStyle(d *world.Dungeon, raster *Raster, x, y int, cell Cell, overlays Overlays) tcell.Style {
	switch cell {
	case CellFloor:
		if ri := raster.RoomAt(x, y); ri >= 0 && ri < len(d.Rooms) {
			return tcell.StyleDefault.Foreground(r.palette.Room(d.Rooms[ri], overlays.MainPath))
		}
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case CellWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case CellCorridor:
		if kind, ok := raster.CorridorKindAt(x, y); ok && overlays.Corridors {
			return tcell.StyleDefault.Foreground(Corridor(kind))
		}
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case CellSeal:
		return tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	case CellPending:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	default:
		return tcell.StyleDefault
	}
}

// viewOffset scrolls a view of size view over a raster of size total so pos
// stays visible, centering it when the raster does not fit.
func viewOffset(pos, total, view int) int {
	if total <= view || view <= 0 {
		return 0
	}
	off := pos - view/2
	if off < 0 {
		return 0
	}
	if off > total-view {
		return total - view
	}
	return off
}

// statusLine describes the room under the explorer.
func statusLine(d *world.Dungeon, raster *Raster, explorer *entity.Explorer) string {
	ri := raster.RoomAt(explorer.X, explorer.Y)
	if ri < 0 || ri >= len(d.Rooms) {
		if kind, ok := raster.CorridorKindAt(explorer.X, explorer.Y); ok {
			return fmt.Sprintf("seed %d | %s corridor | r regenerate  p path  c corridors  q quit", d.Seed, kind)
		}
		return fmt.Sprintf("seed %d | %d rooms | r regenerate  p path  c corridors  q quit", d.Seed, len(d.Rooms))
	}
	room := d.Rooms[ri]
	return fmt.Sprintf("seed %d | %s (%s) degree %d | r regenerate  p path  c corridors  q quit",
		d.Seed, room.Archetype, room.Role, d.Degree(room, true))
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
