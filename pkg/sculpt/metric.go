package sculpt

import "github.com/Faultbox/freestyle-sculpt/pkg/math"

// DistanceCalculator measures squared distance between two positions.
//
// Implementations must be symmetric, non-negative and zero only for equal
// positions. Selection thresholds on the returned value, so it must not
// decrease as points move apart along the metric's axes. Violations are
// not detected; they only produce odd-looking brushes.
type DistanceCalculator interface {
	DistanceSquared(a, b math.Vec3) float32
}

// BoundedMetric is a DistanceCalculator that can report the axis-aligned
// half-extent of its ball of a given radius. Selectors use it to size the
// broad-phase box for anisotropic metrics; metrics without it are assumed
// to be no looser than Euclidean distance.
type BoundedMetric interface {
	DistanceCalculator
	HalfExtents(radius float32) math.Vec3
}

// MetricFunc adapts a plain function to DistanceCalculator.
type MetricFunc func(a, b math.Vec3) float32

// DistanceSquared calls f(a, b).
func (f MetricFunc) DistanceSquared(a, b math.Vec3) float32 { return f(a, b) }

// L2 is squared Euclidean distance, the metric of a spherical brush.
type L2 struct{}

// DistanceSquared returns |a - b|².
func (L2) DistanceSquared(a, b math.Vec3) float32 {
	return a.DistanceSquared(b)
}

// HalfExtents returns radius on every axis.
func (L2) HalfExtents(radius float32) math.Vec3 {
	return math.Splat(radius)
}

// Ellipsoid is an anisotropic metric: a point at Axes.X along the rotated
// X axis is at distance 1, and likewise for Y and Z. Axes must be positive.
type Ellipsoid struct {
	axes     math.Vec3
	inverse  math.Vec3
	rotation math.Quat
}

// NewEllipsoid returns an ellipsoid metric with the given semi-axes,
// oriented by rotation.
func NewEllipsoid(axes math.Vec3, rotation math.Quat) Ellipsoid {
	return Ellipsoid{
		axes:     axes,
		inverse:  math.Vec3{X: 1 / axes.X, Y: 1 / axes.Y, Z: 1 / axes.Z},
		rotation: rotation.Normalize(),
	}
}

// Axes returns the semi-axes.
func (e Ellipsoid) Axes() math.Vec3 { return e.axes }

// Rotation returns the orientation.
func (e Ellipsoid) Rotation() math.Quat { return e.rotation }

// DistanceSquared returns the squared length of b - a in ellipsoid space.
func (e Ellipsoid) DistanceSquared(a, b math.Vec3) float32 {
	local := e.rotation.Conjugate().Rotate(a.Sub(b))
	return local.Mul(e.inverse).LengthSquared()
}

// HalfExtents returns the world-axis half-extents of the rotated
// ellipsoid scaled by radius.
func (e Ellipsoid) HalfExtents(radius float32) math.Vec3 {
	cx := e.rotation.Rotate(math.Vec3{X: e.axes.X})
	cy := e.rotation.Rotate(math.Vec3{Y: e.axes.Y})
	cz := e.rotation.Rotate(math.Vec3{Z: e.axes.Z})
	return math.Vec3{
		X: math.Sqrt(cx.X*cx.X+cy.X*cy.X+cz.X*cz.X) * radius,
		Y: math.Sqrt(cx.Y*cx.Y+cy.Y*cy.Y+cz.Y*cz.Y) * radius,
		Z: math.Sqrt(cx.Z*cx.Z+cy.Z*cy.Z+cz.Z*cz.Z) * radius,
	}
}
