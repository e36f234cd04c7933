package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// minExtent keeps shrunk volumes from collapsing to zero or inverting.
const minExtent = 1e-6

// AABB is an axis-aligned bounding volume.
type AABB struct {
	Min, Max Vec3
}

// NewAABB builds a volume from its center and full size.
func NewAABB(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// UnitBox is the fallback volume for objects without geometry: a 1x1x1 box centered on p.
func UnitBox(p Vec3) AABB {
	return NewAABB(p, Vec3{1, 1, 1})
}

// Size returns the full extent on each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the volume.
func (b AABB) Center() Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Intersects reports whether the interiors of b and o overlap.
// Volumes that only share a face do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

// Contains reports whether p lies inside b, faces included.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Pad grows the volume by d on every side. A negative d shrinks it, but an axis
// never shrinks below a tiny positive extent around its center.
func (b AABB) Pad(d float64) AABB {
	out := AABB{
		Min: b.Min.Sub(Vec3{d, d, d}),
		Max: b.Max.Add(Vec3{d, d, d}),
	}
	c := b.Center()
	if out.Max.X-out.Min.X < minExtent {
		out.Min.X, out.Max.X = c.X-minExtent/2, c.X+minExtent/2
	}
	if out.Max.Y-out.Min.Y < minExtent {
		out.Min.Y, out.Max.Y = c.Y-minExtent/2, c.Y+minExtent/2
	}
	if out.Max.Z-out.Min.Z < minExtent {
		out.Min.Z, out.Max.Z = c.Z-minExtent/2, c.Z+minExtent/2
	}
	return out
}

// Translate moves the volume by offset.
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Union returns the smallest volume enclosing b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Transform scales a local-space volume per axis, rotates it by the pose's yaw and
// moves it to the pose's position, returning the world AABB enclosing the result.
func (b AABB) Transform(pose Pose, scale Vec3) AABB {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
	var out AABB
	for i, c := range corners {
		w := pose.Apply(Vec3{c.X * scale.X, c.Y * scale.Y, c.Z * scale.Z})
		if i == 0 {
			out = AABB{Min: w, Max: w}
			continue
		}
		out = out.Union(AABB{Min: w, Max: w})
	}
	return out
}

// Footprint projects the volume onto the ground plane. The orb X axis is world X
// and the orb Y axis is world Z.
func (b AABB) Footprint() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min.X, b.Min.Z},
		Max: orb.Point{b.Max.X, b.Max.Z},
	}
}
