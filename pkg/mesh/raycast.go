package mesh

import "github.com/Faultbox/freestyle-sculpt/pkg/math"

// Hit describes where a ray meets the mesh surface.
type Hit struct {
	Face     FaceID
	Distance float32
	Point    math.Vec3
}

// CastRay returns the closest face hit by r. Ties keep the lower face id.
func (g *Graph) CastRay(r math.Ray) (Hit, bool) {
	best := Hit{Face: NoFace, Distance: 3.4e38}
	g.bvh.visitRay(r, func(f FaceID) float32 {
		tri := g.faces[f]
		t, ok := r.IntersectTriangle(g.positions[tri[0]], g.positions[tri[1]], g.positions[tri[2]])
		if ok && (t < best.Distance || (t == best.Distance && f < best.Face)) {
			best = Hit{Face: f, Distance: t}
		}
		return best.Distance
	})
	if best.Face == NoFace {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
