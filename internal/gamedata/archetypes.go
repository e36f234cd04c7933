package gamedata

import (
	"fmt"
	"os"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/scene"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Extents is a full box size in world units.
type Extents struct {
	X float64 `json:"x" yaml:"x"` // width (east-west)
	Y float64 `json:"y" yaml:"y"` // height
	Z float64 `json:"z" yaml:"z"` // depth (north-south)
}

// Vec returns the extents as a vector.
func (e Extents) Vec() geom.Vec3 {
	return geom.Vec3{X: e.X, Y: e.Y, Z: e.Z}
}

// floorBox is a box of the given size resting on the local origin's floor.
func floorBox(e Extents) *geom.AABB {
	return &geom.AABB{
		Min: geom.Vec3{X: -e.X / 2, Z: -e.Z / 2},
		Max: geom.Vec3{X: e.X / 2, Y: e.Y, Z: e.Z / 2},
	}
}

// AuthoredOpening places an opening on one side of a room. Offset slides it
// along the face from the face's center.
type AuthoredOpening struct {
	Side   string  `json:"side" yaml:"side"`
	Offset float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Direction parses Side.
func (o AuthoredOpening) Direction() (world.Direction, error) {
	return world.ParseDirection(o.Side)
}

// RoomArchetype defines a room prefab loaded from JSON.
type RoomArchetype struct {
	ID          string            `json:"id" yaml:"id"`                                       // Unique identifier (e.g., "hall")
	Name        string            `json:"name" yaml:"name"`                                   // Display name
	Glyph       string            `json:"glyph" yaml:"glyph"`                                 // Floor character for rendering
	Color       string            `json:"color" yaml:"color"`                                 // Hex color code
	Size        *Extents          `json:"size,omitempty" yaml:"size,omitempty"`               // Visual geometry
	Collider    *Extents          `json:"collider,omitempty" yaml:"collider,omitempty"`       // Fallback collision geometry
	Openings    []AuthoredOpening `json:"openings,omitempty" yaml:"openings,omitempty"`       // Empty means one per side
	SpawnWeight int               `json:"spawnWeight" yaml:"spawn_weight"`                    // Relative pick frequency
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *RoomArchetype) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '.'
	}
	return rune(a.Glyph[0])
}

// Prefab converts the archetype into something the scene can instantiate.
func (a *RoomArchetype) Prefab() scene.Prefab {
	p := scene.Prefab{Name: a.ID, Kind: scene.KindRoom}
	if a.Size != nil {
		p.Visual = floorBox(*a.Size)
	}
	if a.Collider != nil {
		p.Collider = floorBox(*a.Collider)
	}
	return p
}

// Validate checks that the archetype can be instantiated.
func (a *RoomArchetype) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("room archetype id must be set")
	}
	if a.SpawnWeight < 0 {
		return fmt.Errorf("room archetype %s: spawn weight cannot be negative", a.ID)
	}
	for _, e := range []*Extents{a.Size, a.Collider} {
		if e != nil && (e.X <= 0 || e.Y <= 0 || e.Z <= 0) {
			return fmt.Errorf("room archetype %s: extents must be positive", a.ID)
		}
	}
	for i, o := range a.Openings {
		if _, err := o.Direction(); err != nil {
			return fmt.Errorf("room archetype %s: openings[%d]: %w", a.ID, i, err)
		}
	}
	return nil
}

// CorridorDef defines the corridor prefab. Its length axis is local Z and it is
// one unit long before scaling.
type CorridorDef struct {
	ID     string  `json:"id" yaml:"id"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Color  string  `json:"color" yaml:"color"`
}

// Prefab converts the corridor definition into a scene prefab.
func (c *CorridorDef) Prefab() scene.Prefab {
	return scene.Prefab{
		Name:   c.ID,
		Kind:   scene.KindCorridor,
		Visual: floorBox(Extents{X: c.Width, Y: c.Height, Z: 1}),
	}
}

// WallDef defines the wall prefab used to seal openings.
type WallDef struct {
	ID     string  `json:"id" yaml:"id"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

// Prefab converts the wall definition into a scene prefab.
func (w *WallDef) Prefab() scene.Prefab {
	return scene.Prefab{
		Name:   w.ID,
		Kind:   scene.KindWall,
		Visual: floorBox(Extents{X: w.Width, Y: w.Height, Z: w.Depth}),
	}
}

// Catalogue is the full set of prefabs available to a generation pass.
// Corridor and Wall are optional.
type Catalogue struct {
	Rooms    []RoomArchetype `json:"rooms" yaml:"rooms"`
	Corridor *CorridorDef    `json:"corridor,omitempty" yaml:"corridor,omitempty"`
	Wall     *WallDef        `json:"wall,omitempty" yaml:"wall,omitempty"`
}

// Validate checks every archetype in the catalogue.
func (c *Catalogue) Validate() error {
	seen := make(map[string]bool, len(c.Rooms))
	for i := range c.Rooms {
		if err := c.Rooms[i].Validate(); err != nil {
			return err
		}
		if seen[c.Rooms[i].ID] {
			return fmt.Errorf("duplicate room archetype %s", c.Rooms[i].ID)
		}
		seen[c.Rooms[i].ID] = true
	}
	if c.Corridor != nil && (c.Corridor.Width <= 0 || c.Corridor.Height <= 0) {
		return fmt.Errorf("corridor %s: width and height must be positive", c.Corridor.ID)
	}
	if c.Wall != nil && (c.Wall.Width <= 0 || c.Wall.Height <= 0 || c.Wall.Depth <= 0) {
		return fmt.Errorf("wall %s: extents must be positive", c.Wall.ID)
	}
	return nil
}

// LoadCatalogue loads the embedded archetypes.json catalogue.
func LoadCatalogue() (*Catalogue, error) {
	c, err := Load[Catalogue]("archetypes.json")
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("archetypes.json: %w", err)
	}
	return &c, nil
}

// ReadCatalogue loads a catalogue from a JSON file on disk in place of the
// embedded one.
func ReadCatalogue(path string) (*Catalogue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	c, err := Decode[Catalogue](path, content)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// MustLoadCatalogue loads the embedded catalogue, panicking on error.
func MustLoadCatalogue() *Catalogue {
	c, err := LoadCatalogue()
	if err != nil {
		panic(err)
	}
	return c
}
