package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Ground projects p onto the ground plane as an orb point (X, Z).
func Ground(p Vec3) orb.Point {
	return orb.Point{p.X, p.Z}
}

// PlanarDistance is the ground-plane Euclidean distance between a and b.
func PlanarDistance(a, b Vec3) float64 {
	return planar.Distance(Ground(a), Ground(b))
}

// PlanarDistanceSquared avoids the square root for nearest-candidate comparisons.
func PlanarDistanceSquared(a, b Vec3) float64 {
	return planar.DistanceSquared(Ground(a), Ground(b))
}
