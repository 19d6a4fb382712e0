package sculpt

import (
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

func TestL2(t *testing.T) {
	a := math.Vec3{X: 1, Y: 2, Z: 3}
	b := math.Vec3{X: 4, Y: 6, Z: 3}
	if got := (L2{}).DistanceSquared(a, b); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := (L2{}).DistanceSquared(a, a); got != 0 {
		t.Errorf("DistanceSquared(a, a) = %v, want 0", got)
	}
	if got := (L2{}).HalfExtents(2); got != math.Splat(2) {
		t.Errorf("HalfExtents = %v", got)
	}
}

func TestEllipsoid_AxisAligned(t *testing.T) {
	e := NewEllipsoid(math.Vec3{X: 2, Y: 1, Z: 0.5}, math.QuatIdentity())

	tests := []struct {
		p    math.Vec3
		want float32
	}{
		{math.Vec3{X: 2}, 1},
		{math.Vec3{Y: 1}, 1},
		{math.Vec3{Z: 0.5}, 1},
		{math.Vec3{X: 1}, 0.25},
		{math.Vec3{X: 2, Y: 1}, 2},
	}
	for _, tt := range tests {
		if got := e.DistanceSquared(tt.p, math.Vec3{}); !approxEqual(got, tt.want, 1e-6) {
			t.Errorf("DistanceSquared(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEllipsoid_Rotated(t *testing.T) {
	// Long axis rotated from X onto Y.
	rot := math.QuatFromAxisAngle(math.Vec3{Z: 1}, float32(gomath.Pi/2))
	e := NewEllipsoid(math.Vec3{X: 2, Y: 1, Z: 1}, rot)

	if got := e.DistanceSquared(math.Vec3{Y: 2}, math.Vec3{}); !approxEqual(got, 1, 1e-5) {
		t.Errorf("distance along rotated long axis = %v, want 1", got)
	}
	if got := e.DistanceSquared(math.Vec3{X: 2}, math.Vec3{}); !approxEqual(got, 4, 1e-5) {
		t.Errorf("distance along rotated short axis = %v, want 4", got)
	}

	ext := e.HalfExtents(1)
	if !approxEqual(ext.X, 1, 1e-5) || !approxEqual(ext.Y, 2, 1e-5) || !approxEqual(ext.Z, 1, 1e-5) {
		t.Errorf("HalfExtents = %v, want (1,2,1)", ext)
	}
}

func TestEllipsoid_SymmetricAndMonotonic(t *testing.T) {
	rot := math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1, Z: 0}, 0.7)
	e := NewEllipsoid(math.Vec3{X: 1.5, Y: 0.4, Z: 0.9}, rot)
	r := rand.New(rand.NewPCG(7, 8))

	for i := 0; i < 200; i++ {
		a := randomPoint(r, 3)
		b := randomPoint(r, 3)
		ab := e.DistanceSquared(a, b)
		ba := e.DistanceSquared(b, a)
		if !relEqual(ab, ba, 1e-5) {
			t.Fatalf("not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Fatalf("negative distance %v", ab)
		}

		// Moving further along the same direction never gets closer.
		dir := b.Sub(a)
		farther := a.Add(dir.Scale(1.5))
		if e.DistanceSquared(farther, a) < ab {
			t.Fatalf("distance decreased along %v", dir)
		}
	}
}

func TestEllipsoid_HalfExtentsBoundBall(t *testing.T) {
	rot := math.QuatFromAxisAngle(math.Vec3{X: 0.3, Y: 1, Z: -0.5}, 1.1)
	e := NewEllipsoid(math.Vec3{X: 2, Y: 0.5, Z: 1}, rot)
	ext := e.HalfExtents(0.8)
	box := math.AABBFromHalfExtents(math.Vec3{}, ext.Scale(1.0001))
	r := rand.New(rand.NewPCG(9, 10))

	for i := 0; i < 2000; i++ {
		p := randomPoint(r, 3)
		if e.DistanceSquared(p, math.Vec3{}) <= 0.64 && !box.Contains(p) {
			t.Fatalf("point %v inside the metric ball lies outside %+v", p, box)
		}
	}
}

func TestMetricFunc(t *testing.T) {
	manhattanSq := MetricFunc(func(a, b math.Vec3) float32 {
		d := a.Sub(b)
		m := float32(gomath.Abs(float64(d.X)) + gomath.Abs(float64(d.Y)) + gomath.Abs(float64(d.Z)))
		return m * m
	})
	if got := manhattanSq.DistanceSquared(math.Vec3{X: 1, Y: 1}, math.Vec3{}); got != 4 {
		t.Errorf("DistanceSquared = %v, want 4", got)
	}
}
