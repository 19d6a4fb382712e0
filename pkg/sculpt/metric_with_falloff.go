package sculpt

import (
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
)

// MetricWithFalloff selects every vertex within Radius+Falloff of the
// input position under Metric. Weight is FalloffFunc(0) up to Radius,
// shaped by FalloffFunc across the next Falloff units, and 0 beyond.
type MetricWithFalloff[D DistanceCalculator] struct {
	// Radius of full influence.
	Radius float32

	// Falloff is the width of the band past Radius over which influence
	// decays.
	Falloff float32

	// Metric measures distance from the input position to vertices.
	Metric D

	// FalloffFunc shapes the decay; nil means Linear.
	FalloffFunc FalloffFunc
}

// Sphere returns a selector using plain Euclidean distance.
func Sphere(radius, falloff float32, falloffFunc FalloffFunc) MetricWithFalloff[L2] {
	return NewMetricWithFalloff(L2{}, radius, falloff, falloffFunc)
}

// NewMetricWithFalloff returns a selector using metric.
func NewMetricWithFalloff[D DistanceCalculator](metric D, radius, falloff float32, falloffFunc FalloffFunc) MetricWithFalloff[D] {
	if falloffFunc == nil {
		falloffFunc = Linear
	}
	return MetricWithFalloff[D]{
		Radius:      radius,
		Falloff:     falloff,
		Metric:      metric,
		FalloffFunc: falloffFunc,
	}
}

// Reach returns Radius+Falloff, the outer limit of influence.
func (s MetricWithFalloff[D]) Reach() float32 {
	return s.Radius + s.Falloff
}

// queryBox returns the broad-phase box around center.
func (s MetricWithFalloff[D]) queryBox(center math.Vec3) math.AABB {
	reach := s.Reach()
	half := math.Splat(reach)
	if bounded, ok := any(s.Metric).(BoundedMetric); ok {
		half = half.Max(bounded.HalfExtents(reach))
	}
	return math.AABBFromHalfExtents(center, half)
}

// Select implements MeshSelector. inputFace is not used.
func (s MetricWithFalloff[D]) Select(m Mesh, inputPos math.Vec3, _ mesh.FaceID) WeightedSelection {
	reach := s.Reach()
	if !(reach > 0) {
		return EmptySelection()
	}

	// Broad phase: every face whose bounds touch the box, over-approximated.
	potential := m.IntersectAABB(s.queryBox(inputPos), nil)
	if len(potential) == 0 {
		return EmptySelection()
	}
	candidates := mesh.NewSelection(potential...).ResolveToVertices(m)

	// Narrow phase: exact inclusion under the metric.
	maxDistSq := reach * reach
	kept := make(mesh.VertexSet, len(candidates))
	for v := range candidates {
		if s.Metric.DistanceSquared(m.Position(v), inputPos) <= maxDistSq {
			kept[v] = struct{}{}
		}
	}
	if len(kept) == 0 {
		return EmptySelection()
	}

	return WeightedSelection{
		Selection: mesh.FacesIncidentToVertices(kept, m),
		Weight:    MetricFalloffWeight(inputPos, s.Radius, s.Falloff, s.FalloffFunc, s.Metric),
	}
}

// MetricFalloffWeight returns the weight function of a metric brush
// centered at center. The function captures copies of its arguments.
func MetricFalloffWeight[D DistanceCalculator](center math.Vec3, radius, falloff float32, falloffFunc FalloffFunc, metric D) WeightFunc {
	if falloffFunc == nil {
		falloffFunc = Linear
	}
	reach := radius + falloff
	if !(reach > 0) {
		return ZeroWeight
	}

	return func(pos math.Vec3) float32 {
		d := math.Sqrt(metric.DistanceSquared(pos, center))
		if d <= radius {
			return falloffFunc(0)
		}
		// Also rejects NaN distances.
		if !(d < reach) {
			return 0
		}
		return falloffFunc(math.Clamp((d-radius)/falloff, 0, 1))
	}
}
