package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/world"
)

var (
	pathStart = mustColor("#3cb371") // entry
	pathEnd   = mustColor("#dc143c") // exit
)

func mustColor(hex string) colorful.Color {
	c, err := gamedata.ParseColorful(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette maps rooms to display colors.
type Palette struct {
	archetypes map[string]tcell.Color
	path       map[*world.Room]tcell.Color
}

// NewPalette reads archetype colors from the catalogue. Archetypes with a
// missing or malformed color fall back to gray.
func NewPalette(cat *gamedata.Catalogue) *Palette {
	p := &Palette{
		archetypes: make(map[string]tcell.Color),
		path:       make(map[*world.Room]tcell.Color),
	}
	if cat == nil {
		return p
	}
	for _, a := range cat.Rooms {
		if c, err := gamedata.ParseHexColor(a.Color); err == nil {
			p.archetypes[a.ID] = c
		}
	}
	return p
}

// ShadePath assigns each main path room a color blended from the entry color to
// the exit color by its position along the path.
func (p *Palette) ShadePath(path *world.MainPath) {
	p.path = make(map[*world.Room]tcell.Color)
	if path == nil {
		return
	}
	for i, r := range path.Rooms {
		p.path[r] = toTcell(PathShade(i, len(path.Rooms)))
	}
}

// PathShade returns the gradient color for step i of n, blended in Lab space.
func PathShade(i, n int) colorful.Color {
	if n <= 1 {
		return pathStart
	}
	return pathStart.BlendLab(pathEnd, float64(i)/float64(n-1)).Clamped()
}

// Room returns the color for a room, preferring its main path shade.
func (p *Palette) Room(r *world.Room, shadePath bool) tcell.Color {
	if shadePath {
		if c, ok := p.path[r]; ok {
			return c
		}
	}
	if c, ok := p.archetypes[r.Archetype]; ok {
		return c
	}
	return tcell.ColorGray
}

// Corridor returns the color for a corridor of the given kind.
func Corridor(kind world.CorridorKind) tcell.Color {
	switch kind {
	case world.CorridorMain:
		return tcell.ColorGold
	case world.CorridorLoop:
		return tcell.ColorDarkCyan
	default:
		return tcell.ColorSilver
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
