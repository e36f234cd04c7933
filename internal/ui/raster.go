package ui

import (
	"math"
	"strings"

	"github.com/samdwyer/dungeongrow/internal/entity"
	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Cell is what a raster cell shows.
type Cell int

const (
	CellEmpty Cell = iota
	CellFloor
	CellWall
	CellCorridor
	CellDoor    // connected opening
	CellSeal    // sealed opening
	CellPending // opening left neither connected nor sealed
)

// Rune returns the character used to display the cell.
func (c Cell) Rune() rune {
	switch c {
	case CellFloor:
		return '.'
	case CellWall:
		return '#'
	case CellCorridor:
		return '='
	case CellDoor:
		return '+'
	case CellSeal:
		return 'x'
	case CellPending:
		return 'o'
	default:
		return ' '
	}
}

// Passable reports whether the explorer can stand on the cell.
func (c Cell) Passable() bool {
	return c == CellFloor || c == CellCorridor || c == CellDoor
}

// Raster is a top-down grid view of a layout. Column x grows east and row y
// grows south, so north is up.
type Raster struct {
	Width, Height int
	Scale         float64 // world units per cell
	Markers       []entity.Marker

	originX float64 // world X of column 0's west edge
	top     float64 // world Z of row 0's north edge
	cells   []Cell
	rooms   []int // room index per cell, -1 outside rooms
	kinds   []int // corridor kind per cell, -1 outside corridors
}

// Rasterize projects a layout onto a grid with scale world units per cell and
// a one cell margin. An empty layout gives an empty raster.
func Rasterize(d *world.Dungeon, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	r := &Raster{Scale: scale}
	b, ok := d.Bounds()
	if !ok {
		return r
	}
	r.originX = b.Min.X - scale
	r.top = b.Max.Z + scale
	r.Width = int(math.Ceil((b.Max.X-b.Min.X)/scale)) + 2
	r.Height = int(math.Ceil((b.Max.Z-b.Min.Z)/scale)) + 2
	n := r.Width * r.Height
	r.cells = make([]Cell, n)
	r.rooms = make([]int, n)
	r.kinds = make([]int, n)
	for i := 0; i < n; i++ {
		r.rooms[i] = -1
		r.kinds[i] = -1
	}

	for _, c := range d.Corridors {
		x0, x1, y0, y1 := r.span(c.Bounds)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r.set(x, y, CellCorridor)
				if i, ok := r.index(x, y); ok {
					r.kinds[i] = int(c.Kind)
				}
			}
		}
	}

	for ri, room := range d.Rooms {
		x0, x1, y0, y1 := r.span(room.Bounds)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cell := CellFloor
				if x == x0 || x == x1 || y == y0 || y == y1 {
					cell = CellWall
				}
				r.set(x, y, cell)
				if i, ok := r.index(x, y); ok {
					r.rooms[i] = ri
					r.kinds[i] = -1
				}
			}
		}
		for _, o := range room.Openings() {
			// Half a cell inward lands on the room's wall ring.
			x, y := r.ToCell(o.Position().Sub(o.Forward().Flat().Scale(scale / 2)))
			r.set(x, y, openingCell(o))
		}
	}

	r.Markers = entity.PlaceMarkers(d)
	return r
}

func openingCell(o *world.Opening) Cell {
	switch o.State() {
	case world.OpeningConnected:
		return CellDoor
	case world.OpeningSealed:
		return CellSeal
	default:
		return CellPending
	}
}

// span returns the inclusive cell ranges covered by a volume's footprint.
func (r *Raster) span(b geom.AABB) (x0, x1, y0, y1 int) {
	x0 = int(math.Floor((b.Min.X - r.originX) / r.Scale))
	x1 = int(math.Ceil((b.Max.X-r.originX)/r.Scale)) - 1
	y0 = int(math.Floor((r.top - b.Max.Z) / r.Scale))
	y1 = int(math.Ceil((r.top-b.Min.Z)/r.Scale)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, x1, y0, y1
}

func (r *Raster) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return 0, false
	}
	return y*r.Width + x, true
}

func (r *Raster) set(x, y int, c Cell) {
	if i, ok := r.index(x, y); ok {
		r.cells[i] = c
	}
}

// At returns the cell at x, y. Cells outside the raster are empty.
func (r *Raster) At(x, y int) Cell {
	if i, ok := r.index(x, y); ok {
		return r.cells[i]
	}
	return CellEmpty
}

// RoomAt returns the index of the room covering x, y, or -1.
func (r *Raster) RoomAt(x, y int) int {
	if i, ok := r.index(x, y); ok {
		return r.rooms[i]
	}
	return -1
}

// CorridorKindAt returns the kind of corridor at x, y and whether there is one.
func (r *Raster) CorridorKindAt(x, y int) (world.CorridorKind, bool) {
	if i, ok := r.index(x, y); ok && r.kinds[i] >= 0 {
		return world.CorridorKind(r.kinds[i]), true
	}
	return 0, false
}

// ToCell returns the cell containing a world position.
func (r *Raster) ToCell(p geom.Vec3) (x, y int) {
	return int(math.Floor((p.X - r.originX) / r.Scale)), int(math.Floor((r.top - p.Z) / r.Scale))
}

// ToWorld returns the ground position at the center of a cell.
func (r *Raster) ToWorld(x, y int) geom.Vec3 {
	return geom.Vec3{
		X: r.originX + (float64(x)+0.5)*r.Scale,
		Z: r.top - (float64(y)+0.5)*r.Scale,
	}
}

// String draws the raster as text, markers included.
func (r *Raster) String() string {
	if r.Width == 0 {
		return ""
	}
	rows := make([][]rune, r.Height)
	for y := range rows {
		rows[y] = make([]rune, r.Width)
		for x := range rows[y] {
			rows[y][x] = r.At(x, y).Rune()
		}
	}
	for _, m := range r.Markers {
		x, y := r.ToCell(m.Position)
		if _, ok := r.index(x, y); ok {
			rows[y][x] = m.Symbol
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
