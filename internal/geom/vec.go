// Package geom provides the small amount of 3-D math the layout generator needs:
// vectors, poses, axis-aligned bounding volumes and ground-plane helpers.
package geom

import "math"

// Epsilon is the tolerance used when comparing lengths against zero.
const Epsilon = 1e-9

// Vec3 is a point or direction in world space. Y is up; X and Z span the ground plane.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Flat returns v projected onto the ground plane.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Normalize returns v scaled to unit length, or the zero vector when v is (nearly) zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v has no meaningful length.
func (v Vec3) IsZero() bool {
	return v.Length() < Epsilon
}

// Lerp returns the point a fraction t of the way from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}
