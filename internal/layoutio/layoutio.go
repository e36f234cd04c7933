// Package layoutio exports generated layouts as YAML so other tools can place
// content into them without linking against the generator.
package layoutio

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Snapshot is the exported form of a layout.
type Snapshot struct {
	Seed      int64            `yaml:"seed"`
	Rooms     []RoomRecord     `yaml:"rooms"`
	Edges     []EdgeRecord     `yaml:"edges"`
	Corridors []CorridorRecord `yaml:"corridors,omitempty"`
	Path      *PathRecord      `yaml:"main_path,omitempty"`
	Stats     StatsRecord      `yaml:"stats"`
}

type RoomRecord struct {
	ID        string          `yaml:"id"`
	Archetype string          `yaml:"archetype"`
	Role      string          `yaml:"role,omitempty"` // entry or exit
	Min       []float64       `yaml:"min,flow"`
	Max       []float64       `yaml:"max,flow"`
	Openings  []OpeningRecord `yaml:"openings"`
}

type OpeningRecord struct {
	Direction string    `yaml:"direction"`
	State     string    `yaml:"state"`
	Position  []float64 `yaml:"position,flow"`
	Peer      *Endpoint `yaml:"peer,omitempty"`
}

// Endpoint names an opening by its room and facing direction.
type Endpoint struct {
	Room      string `yaml:"room"`
	Direction string `yaml:"direction"`
}

type EdgeRecord struct {
	Kind string   `yaml:"kind"`
	A    Endpoint `yaml:"a"`
	B    Endpoint `yaml:"b"`
}

type CorridorRecord struct {
	Kind   string    `yaml:"kind"`
	From   []float64 `yaml:"from,flow"`
	To     []float64 `yaml:"to,flow"`
	Length float64   `yaml:"length"`
}

type PathRecord struct {
	Entry  string   `yaml:"entry"`
	Exit   string   `yaml:"exit"`
	Rooms  []string `yaml:"rooms"`
	Length float64  `yaml:"length"`
}

type StatsRecord struct {
	RoomsPlaced       int `yaml:"rooms_placed"`
	PlacementAttempts int `yaml:"placement_attempts"`
	LengthAdjustments int `yaml:"length_adjustments"`
	SealedOpenings    int `yaml:"sealed_openings"`
	LeftoverOpenings  int `yaml:"leftover_openings"`
	LoopEdges         int `yaml:"loop_edges"`
	Corridors         int `yaml:"corridors"`
	SkeweredRooms     int `yaml:"skewered_rooms"`
}

// FromDungeon builds the exported form of a layout.
func FromDungeon(d *world.Dungeon) Snapshot {
	s := Snapshot{
		Seed:      d.Seed,
		Rooms:     make([]RoomRecord, 0, len(d.Rooms)),
		Edges:     make([]EdgeRecord, 0, len(d.TreeEdges)+len(d.LoopEdges)),
		Corridors: make([]CorridorRecord, 0, len(d.Corridors)),
		Stats:     StatsRecord(d.Stats),
	}

	for _, r := range d.Rooms {
		rec := RoomRecord{
			ID:        r.ID.String(),
			Archetype: r.Archetype,
			Min:       vec(r.Bounds.Min),
			Max:       vec(r.Bounds.Max),
			Openings:  make([]OpeningRecord, 0, len(r.Openings())),
		}
		if r.Role != world.RoleNone {
			rec.Role = r.Role.String()
		}
		for _, o := range r.Openings() {
			or := OpeningRecord{
				Direction: o.Direction().String(),
				State:     o.State().String(),
				Position:  vec(o.Position()),
			}
			if p := o.Peer(); p != nil {
				ep := endpoint(p)
				or.Peer = &ep
			}
			rec.Openings = append(rec.Openings, or)
		}
		s.Rooms = append(s.Rooms, rec)
	}

	for _, edges := range [][]world.Edge{d.TreeEdges, d.LoopEdges} {
		for _, e := range edges {
			s.Edges = append(s.Edges, EdgeRecord{Kind: e.Kind.String(), A: endpoint(e.A), B: endpoint(e.B)})
		}
	}

	for _, c := range d.Corridors {
		s.Corridors = append(s.Corridors, CorridorRecord{
			Kind:   c.Kind.String(),
			From:   vec(c.From),
			To:     vec(c.To),
			Length: round(c.Length),
		})
	}

	if d.Path != nil {
		p := &PathRecord{
			Entry:  d.Path.First.ID.String(),
			Exit:   d.Path.Last.ID.String(),
			Rooms:  make([]string, 0, len(d.Path.Rooms)),
			Length: round(d.Path.Length),
		}
		for _, r := range d.Path.Rooms {
			p.Rooms = append(p.Rooms, r.ID.String())
		}
		s.Path = p
	}
	return s
}

// Room returns the record for a room ID.
func (s Snapshot) Room(id string) (RoomRecord, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomRecord{}, false
}

// Encode writes a layout as YAML.
func Encode(w io.Writer, d *world.Dungeon) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromDungeon(d)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// WriteFile writes a layout as YAML to path.
func WriteFile(path string, d *world.Dungeon) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Encode(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode layout: %w", err)
	}
	return s, nil
}

func endpoint(o *world.Opening) Endpoint {
	return Endpoint{Room: o.Room().ID.String(), Direction: o.Direction().String()}
}

func vec(v geom.Vec3) []float64 {
	return []float64{round(v.X), round(v.Y), round(v.Z)}
}

// round trims floating point noise to micrometres and folds negative zero.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
