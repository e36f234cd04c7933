package scene

import (
	"testing"

	"github.com/samdwyer/dungeongrow/internal/geom"
)

func TestBoundsFallbackOrder(t *testing.T) {
	m := NewMemory()

	visual := geom.AABB{Min: geom.Vec3{X: -2, Z: -2}, Max: geom.Vec3{X: 2, Y: 3, Z: 2}}
	collider := geom.AABB{Min: geom.Vec3{X: -1, Z: -1}, Max: geom.Vec3{X: 1, Y: 1, Z: 1}}
	at := geom.At(geom.Vec3{X: 10, Z: 5})

	withVisual := m.Instantiate(Prefab{Name: "v", Kind: KindRoom, Visual: &visual, Collider: &collider}, at, 0)
	withCollider := m.Instantiate(Prefab{Name: "c", Kind: KindRoom, Collider: &collider}, at, 0)
	bare := m.Instantiate(Prefab{Name: "bare", Kind: KindRoom}, at, 0)

	if got := m.Bounds(withVisual).Size(); got != (geom.Vec3{X: 4, Y: 3, Z: 4}) {
		t.Errorf("visual bounds size = %v, want {4 3 4}", got)
	}
	if got := m.Bounds(withCollider).Size(); got != (geom.Vec3{X: 2, Y: 1, Z: 2}) {
		t.Errorf("collider bounds size = %v, want {2 1 2}", got)
	}
	b := m.Bounds(bare)
	if b.Size() != (geom.Vec3{X: 1, Y: 1, Z: 1}) || b.Center() != at.Position {
		t.Errorf("fallback bounds = %+v, want unit box at %v", b, at.Position)
	}
}

func TestDestroyRemovesDescendants(t *testing.T) {
	m := NewMemory()
	room := m.Instantiate(Prefab{Name: "room", Kind: KindRoom}, geom.Pose{}, 0)
	wall := m.Instantiate(Prefab{Name: "wall", Kind: KindWall}, geom.Pose{}, room)
	other := m.Instantiate(Prefab{Name: "other", Kind: KindRoom}, geom.Pose{}, 0)

	m.Destroy(room)

	if m.Alive(room) || m.Alive(wall) {
		t.Error("Destroy left the room or its wall alive")
	}
	if !m.Alive(other) {
		t.Error("Destroy removed an unrelated object")
	}
	if got := m.Count(KindWall); got != 0 {
		t.Errorf("Count(KindWall) = %d, want 0", got)
	}
	if got := len(m.Children(m.Root())); got != 1 {
		t.Errorf("root children = %d, want 1", got)
	}
}

func TestSetPoseMovesBounds(t *testing.T) {
	m := NewMemory()
	box := geom.AABB{Min: geom.Vec3{X: -1, Z: -1}, Max: geom.Vec3{X: 1, Y: 1, Z: 1}}
	h := m.Instantiate(Prefab{Name: "room", Kind: KindRoom, Visual: &box}, geom.Pose{}, 0)

	m.SetPose(h, geom.At(geom.Vec3{X: 5}))

	if got := m.Bounds(h).Center(); got != (geom.Vec3{X: 5, Y: 0.5}) {
		t.Errorf("Bounds().Center() = %v, want {5 0.5 0}", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoot, "root"},
		{KindRoom, "room"},
		{KindCorridor, "corridor"},
		{KindWall, "wall"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
