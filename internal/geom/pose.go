package geom

import "math"

// Pose is a world position plus a rotation about the up axis.
// A yaw of zero looks along +Z; positive yaw turns towards +X.
type Pose struct {
	Position Vec3
	Yaw      float64
}

// At returns an unrotated pose at p.
func At(p Vec3) Pose {
	return Pose{Position: p}
}

// LookRotation returns the yaw that looks along dir with +Y as the up axis.
// The vertical component of dir is ignored.
func LookRotation(dir Vec3) float64 {
	flat := dir.Flat()
	if flat.IsZero() {
		return 0
	}
	return math.Atan2(flat.X, flat.Z)
}

// Forward returns the unit ground-plane vector the pose looks along.
func (p Pose) Forward() Vec3 {
	return Vec3{X: math.Sin(p.Yaw), Z: math.Cos(p.Yaw)}
}

// Rotate applies the pose's yaw to a local-space vector.
func (p Pose) Rotate(v Vec3) Vec3 {
	sin, cos := math.Sin(p.Yaw), math.Cos(p.Yaw)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Apply transforms a local-space point into world space.
func (p Pose) Apply(v Vec3) Vec3 {
	return p.Rotate(v).Add(p.Position)
}
