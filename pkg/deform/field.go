// Package deform moves the vertices of a weighted selection.
package deform

import (
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

// Field produces the displacement of a vertex at pos given its weight.
type Field interface {
	Displacement(pos math.Vec3, weight float32) math.Vec3
}

// Translate moves every vertex by Offset scaled by its weight.
type Translate struct {
	Offset math.Vec3
}

// Displacement implements Field.
func (f Translate) Displacement(_ math.Vec3, weight float32) math.Vec3 {
	return f.Offset.Scale(weight)
}

// Inflate pushes vertices away from Center by Strength scaled by weight.
// Negative strength pulls them in.
type Inflate struct {
	Center   math.Vec3
	Strength float32
}

// Displacement implements Field.
func (f Inflate) Displacement(pos math.Vec3, weight float32) math.Vec3 {
	return pos.Sub(f.Center).Normalize().Scale(f.Strength * weight)
}

// Result summarizes one Apply call.
type Result struct {
	Moved   int // vertices whose position changed
	Clamped int // moves shortened to the step limit
	Skipped int // resolved vertices with zero weight
}

// Apply displaces every vertex of the selection by field, limits each move
// to params.MaxMoveDistSquared and refits the mesh's spatial index.
// Vertices are visited in ascending id order.
func Apply(g *mesh.Graph, ws sculpt.WeightedSelection, field Field, params sculpt.Params) Result {
	var res Result
	for _, v := range ws.Selection.ResolveToVertices(g).Sorted() {
		pos := g.Position(v)
		w := ws.Weight(pos)
		if w == 0 {
			res.Skipped++
			continue
		}
		d, clamped := params.ClampMove(field.Displacement(pos, w))
		if clamped {
			res.Clamped++
		}
		if d == (math.Vec3{}) {
			res.Skipped++
			continue
		}
		g.MoveVertex(v, pos.Add(d))
		res.Moved++
	}
	if res.Moved > 0 {
		g.Refit()
	}
	return res
}
