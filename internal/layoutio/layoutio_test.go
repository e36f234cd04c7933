package layoutio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/generate"
	"github.com/samdwyer/dungeongrow/internal/world"
)

func testLayout(t *testing.T) *world.Dungeon {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 2024
	d, _ := generate.Build(context.Background(), cfg, gamedata.MustLoadCatalogue())
	if len(d.Rooms) < 2 {
		t.Fatalf("test layout has %d rooms, want at least 2", len(d.Rooms))
	}
	return d
}

func TestEncodeDecode(t *testing.T) {
	d := testLayout(t)

	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	s, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if s.Seed != 2024 {
		t.Errorf("Seed = %d, want 2024", s.Seed)
	}
	if len(s.Rooms) != len(d.Rooms) {
		t.Errorf("rooms = %d, want %d", len(s.Rooms), len(d.Rooms))
	}
	if len(s.Edges) != len(d.TreeEdges)+len(d.LoopEdges) {
		t.Errorf("edges = %d, want %d", len(s.Edges), len(d.TreeEdges)+len(d.LoopEdges))
	}
	if s.Stats.RoomsPlaced != d.Stats.RoomsPlaced {
		t.Errorf("rooms_placed = %d, want %d", s.Stats.RoomsPlaced, d.Stats.RoomsPlaced)
	}
	if s.Path == nil {
		t.Fatal("main path missing from export")
	}
	if s.Path.Entry != d.Entry().ID.String() || s.Path.Exit != d.Exit().ID.String() {
		t.Errorf("path endpoints do not match the tagged rooms")
	}
	entry, ok := s.Room(s.Path.Entry)
	if !ok || entry.Role != "entry" {
		t.Errorf("entry room record = %+v, want role entry", entry)
	}
	for _, e := range s.Edges {
		if _, ok := s.Room(e.A.Room); !ok {
			t.Errorf("edge references unknown room %s", e.A.Room)
		}
		if _, ok := s.Room(e.B.Room); !ok {
			t.Errorf("edge references unknown room %s", e.B.Room)
		}
	}
}

func TestOpeningRecordsCarryPeers(t *testing.T) {
	s := FromDungeon(testLayout(t))
	for _, r := range s.Rooms {
		for _, o := range r.Openings {
			switch o.State {
			case "connected":
				if o.Peer == nil {
					t.Errorf("connected opening without peer in room %s", r.ID)
				}
			default:
				if o.Peer != nil {
					t.Errorf("%s opening has a peer in room %s", o.State, r.ID)
				}
			}
			if len(o.Position) != 3 {
				t.Errorf("position has %d components, want 3", len(o.Position))
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yml")
	if err := WriteFile(path, testLayout(t)); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "main_path:") || !strings.Contains(string(data), "rooms_placed:") {
		t.Errorf("export is missing expected keys:\n%s", data)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("rooms: [unterminated")); err == nil {
		t.Error("Decode() of malformed YAML should fail")
	}
}

func TestRoundFoldsNoise(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{6.123233995736766e-17, 0},
		{-1e-12, 0},
		{3.0000004, 3},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		if got := round(tt.in); got != tt.want {
			t.Errorf("round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
