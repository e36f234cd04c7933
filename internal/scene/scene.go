// Package scene is an in-memory stand-in for the host engine's scene graph. The
// generator only needs two primitives from a host: instantiate a prefab at a pose
// (and destroy it again), and query the world bounding volume of an instance.
package scene

import "github.com/samdwyer/dungeongrow/internal/geom"

// Handle identifies an instantiated object. The zero Handle is never valid.
type Handle uint64

// Kind tags what an object represents.
type Kind int

const (
	KindRoot Kind = iota
	KindRoom
	KindCorridor
	KindWall
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindRoom:
		return "room"
	case KindCorridor:
		return "corridor"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Prefab describes something that can be instantiated. Volumes are in local space.
// Visual is preferred for bounds queries; Collider is the fallback.
type Prefab struct {
	Name     string
	Kind     Kind
	Visual   *geom.AABB
	Collider *geom.AABB
}

// Object is a live instance.
type Object struct {
	Handle   Handle
	Prefab   Prefab
	Pose     geom.Pose
	Scale    geom.Vec3
	Parent   Handle
	children []Handle
}

// Memory is a scene graph held entirely in memory.
type Memory struct {
	next      Handle
	objects   map[Handle]*Object
	root      Handle
	destroyed int
}

// NewMemory creates an empty scene with a root object to parent generated content under.
func NewMemory() *Memory {
	m := &Memory{objects: make(map[Handle]*Object)}
	m.root = m.Instantiate(Prefab{Name: "generation-root", Kind: KindRoot}, geom.Pose{}, 0)
	return m
}

// Root returns the handle everything generated is parented under.
func (m *Memory) Root() Handle {
	return m.root
}

// Instantiate creates an object from prefab at pose, parented under parent.
// A zero parent attaches the object to the root.
func (m *Memory) Instantiate(prefab Prefab, pose geom.Pose, parent Handle) Handle {
	m.next++
	h := m.next
	if parent == 0 {
		parent = m.root
	}
	m.objects[h] = &Object{
		Handle: h,
		Prefab: prefab,
		Pose:   pose,
		Scale:  geom.Vec3{X: 1, Y: 1, Z: 1},
		Parent: parent,
	}
	if p, ok := m.objects[parent]; ok && parent != h {
		p.children = append(p.children, h)
	}
	return h
}

// SetPose moves an object. Unknown handles are ignored.
func (m *Memory) SetPose(h Handle, pose geom.Pose) {
	if obj, ok := m.objects[h]; ok {
		obj.Pose = pose
	}
}

// SetScale rescales an object. Unknown handles are ignored.
func (m *Memory) SetScale(h Handle, scale geom.Vec3) {
	if obj, ok := m.objects[h]; ok {
		obj.Scale = scale
	}
}

// Destroy removes an object and all of its descendants.
func (m *Memory) Destroy(h Handle) {
	obj, ok := m.objects[h]
	if !ok {
		return
	}
	children := append([]Handle(nil), obj.children...)
	for _, c := range children {
		m.Destroy(c)
	}
	if p, ok := m.objects[obj.Parent]; ok {
		for i, c := range p.children {
			if c == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	delete(m.objects, h)
	m.destroyed++
}

// Bounds returns the world-space bounding volume of an object, preferring its
// visual geometry, falling back to its collider, and finally to a unit box at
// its position.
func (m *Memory) Bounds(h Handle) geom.AABB {
	obj, ok := m.objects[h]
	if !ok {
		return geom.AABB{}
	}
	switch {
	case obj.Prefab.Visual != nil:
		return obj.Prefab.Visual.Transform(obj.Pose, obj.Scale)
	case obj.Prefab.Collider != nil:
		return obj.Prefab.Collider.Transform(obj.Pose, obj.Scale)
	default:
		return geom.UnitBox(obj.Pose.Position)
	}
}

// Alive reports whether h refers to a live object.
func (m *Memory) Alive(h Handle) bool {
	_, ok := m.objects[h]
	return ok
}

// Object returns a copy of the object's state.
func (m *Memory) Object(h Handle) (Object, bool) {
	obj, ok := m.objects[h]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Children returns the direct children of h in creation order.
func (m *Memory) Children(h Handle) []Handle {
	obj, ok := m.objects[h]
	if !ok {
		return nil
	}
	out := make([]Handle, len(obj.children))
	copy(out, obj.children)
	return out
}

// Count returns how many live objects of the given kind exist.
func (m *Memory) Count(kind Kind) int {
	n := 0
	for _, obj := range m.objects {
		if obj.Prefab.Kind == kind {
			n++
		}
	}
	return n
}

// Destroyed returns how many objects have been destroyed over the scene's lifetime.
func (m *Memory) Destroyed() int {
	return m.destroyed
}
