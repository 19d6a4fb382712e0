package sculpt

import "github.com/Faultbox/freestyle-sculpt/pkg/math"

// Ratios of the edge-length band and the per-step move limit to the
// squared maximum edge length. A single step moves a vertex far less than
// the band width so remeshing can keep up.
const (
	MinEdgeLengthRatio = 0.24
	MaxMoveDistRatio   = 0.11

	// meshEdgeScale turns a mesh's mean edge length into the maximum
	// edge length of derived parameters.
	meshEdgeScale = 1.5
)

// Params holds the thresholds of a sculpting session, all squared.
// Values are immutable: derive a new Params rather than editing one.
type Params struct {
	MaxMoveDistSquared   float32 `yaml:"max_move_dist_squared"`
	MinEdgeLengthSquared float32 `yaml:"min_edge_length_squared"`
	MaxEdgeLengthSquared float32 `yaml:"max_edge_length_squared"`
}

// NewParams derives all thresholds from the maximum edge length.
func NewParams(maxEdgeLength float32) Params {
	maxSq := maxEdgeLength * maxEdgeLength
	return Params{
		MaxMoveDistSquared:   maxSq * MaxMoveDistRatio,
		MinEdgeLengthSquared: maxSq * MinEdgeLengthRatio,
		MaxEdgeLengthSquared: maxSq,
	}
}

// ParamsFromMeshGraph derives parameters from the mesh's current mean
// edge length scaled by 1.5.
//
// The mesh must have at least one half-edge; an empty mesh yields NaN
// thresholds.
func ParamsFromMeshGraph(g EdgeGraph) Params {
	return NewParams(MeanEdgeLength(g) * meshEdgeScale)
}

// MaxEdgeLength returns the maximum edge length the params were built from.
func (p Params) MaxEdgeLength() float32 {
	return math.Sqrt(p.MaxEdgeLengthSquared)
}

// MaxMoveDist returns the largest displacement allowed in one step.
func (p Params) MaxMoveDist() float32 {
	return math.Sqrt(p.MaxMoveDistSquared)
}

// NeedsSplit reports whether an edge of the given squared length exceeds
// the band.
func (p Params) NeedsSplit(lengthSquared float32) bool {
	return lengthSquared > p.MaxEdgeLengthSquared
}

// NeedsCollapse reports whether an edge of the given squared length falls
// below the band.
func (p Params) NeedsCollapse(lengthSquared float32) bool {
	return lengthSquared < p.MinEdgeLengthSquared
}

// ClampMove shortens d to the maximum move distance. The second result
// reports whether d was shortened.
func (p Params) ClampMove(d math.Vec3) (math.Vec3, bool) {
	lenSq := d.LengthSquared()
	if lenSq <= p.MaxMoveDistSquared {
		return d, false
	}
	return d.Scale(math.Sqrt(p.MaxMoveDistSquared / lenSq)), true
}
