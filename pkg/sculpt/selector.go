// Package sculpt decides which part of a mesh a sculpting step touches and
// how strongly each vertex is affected.
//
// A MeshSelector turns a brush position into a WeightedSelection: the set
// of faces in reach plus a weight function deformation fields sample per
// vertex. Selection never mutates the mesh; the returned weight function
// owns copies of everything it needs and stays valid after the mesh
// changes.
package sculpt

import (
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
)

// Mesh is the read-only view of a mesh that selectors query.
// *mesh.Graph implements it.
type Mesh interface {
	mesh.Incidence
	Position(v mesh.VertexID) math.Vec3
	IntersectAABB(box math.AABB, out []mesh.FaceID) []mesh.FaceID
}

// WeightFunc maps a position to an influence weight, normally in [0, 1].
// It must return 0 rather than fail outside its support.
type WeightFunc func(pos math.Vec3) float32

// ZeroWeight is the weight function of an empty selection.
func ZeroWeight(math.Vec3) float32 { return 0 }

// WeightedSelection is a face selection paired with a per-position weight.
// Weights are only meaningful inside the region the faces cover.
type WeightedSelection struct {
	Selection mesh.Selection
	Weight    WeightFunc
}

// EmptySelection returns a selection with no faces and zero weight
// everywhere.
func EmptySelection() WeightedSelection {
	return WeightedSelection{Weight: ZeroWeight}
}

// MeshSelector picks the part of a mesh affected by a sculpting step.
//
// Implementations must not mutate the mesh, must return the same result
// for the same mesh state and inputs, and must return a weight function
// that is defined for every position. inputFace is the face under the
// cursor, for strategies that need topological locality; it may be
// mesh.NoFace.
type MeshSelector interface {
	Select(m Mesh, inputPos math.Vec3, inputFace mesh.FaceID) WeightedSelection
}
