// Package mesh provides a triangle half-edge mesh with a bounding volume
// hierarchy over its faces.
//
// Topology is fixed once a Graph is built; only vertex positions change.
// Handles are dense indices issued by the Graph and stay valid for its
// lifetime.
package mesh

import (
	"errors"
	"fmt"
	"iter"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

// Mesh construction errors.
var (
	ErrNoTriangles       = errors.New("mesh has no triangles")
	ErrVertexOutOfRange  = errors.New("triangle references unknown vertex")
	ErrDegenerateFace    = errors.New("triangle repeats a vertex")
	ErrNonManifoldEdge   = errors.New("directed edge shared by more than one face")
	ErrNonFinitePosition = errors.New("vertex position is not finite")
)

// VertexID identifies a vertex of a Graph.
type VertexID uint32

// FaceID identifies a triangle of a Graph.
type FaceID uint32

// HalfedgeID identifies a directed half-edge of a Graph.
type HalfedgeID uint32

// NoFace marks a boundary half-edge that borders no triangle.
const NoFace = FaceID(^uint32(0))

// Halfedge is one directed side of an edge.
type Halfedge struct {
	Origin VertexID
	Target VertexID
	Face   FaceID // NoFace on the boundary
	Twin   HalfedgeID
	Next   HalfedgeID // next half-edge around Face; unused on the boundary
}

// IsBoundary reports whether the half-edge has no adjacent face.
func (h Halfedge) IsBoundary() bool {
	return h.Face == NoFace
}

// Graph is a triangle mesh stored as half-edges.
type Graph struct {
	positions   []math.Vec3
	halfedges   []Halfedge
	faces       [][3]VertexID
	faceEdge    []HalfedgeID // first half-edge of each face
	vertexFaces [][]FaceID   // incident faces, ascending
	bvh         *BVH
}

// FromTriangles builds a Graph from vertex positions and index triples.
// Every undirected edge gets exactly two half-edges; open edges receive a
// boundary twin so half-edge statistics weigh every edge equally.
func FromTriangles(positions []math.Vec3, triangles [][3]uint32) (*Graph, error) {
	if len(triangles) == 0 {
		return nil, ErrNoTriangles
	}
	for i, p := range positions {
		if !p.IsFinite() {
			return nil, fmt.Errorf("vertex %d: %w", i, ErrNonFinitePosition)
		}
	}

	g := &Graph{
		positions:   append([]math.Vec3(nil), positions...),
		faces:       make([][3]VertexID, 0, len(triangles)),
		faceEdge:    make([]HalfedgeID, 0, len(triangles)),
		halfedges:   make([]Halfedge, 0, len(triangles)*3+len(triangles)/2),
		vertexFaces: make([][]FaceID, len(positions)),
	}

	directed := make(map[[2]VertexID]HalfedgeID, len(triangles)*3)

	for fi, tri := range triangles {
		var face [3]VertexID
		for k, idx := range tri {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("face %d: index %d: %w", fi, idx, ErrVertexOutOfRange)
			}
			face[k] = VertexID(idx)
		}
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			return nil, fmt.Errorf("face %d: %w", fi, ErrDegenerateFace)
		}

		fid := FaceID(len(g.faces))
		base := HalfedgeID(len(g.halfedges))
		for k := 0; k < 3; k++ {
			from, to := face[k], face[(k+1)%3]
			key := [2]VertexID{from, to}
			if _, dup := directed[key]; dup {
				return nil, fmt.Errorf("face %d: edge %d->%d: %w", fi, from, to, ErrNonManifoldEdge)
			}
			id := base + HalfedgeID(k)
			directed[key] = id
			g.halfedges = append(g.halfedges, Halfedge{
				Origin: from,
				Target: to,
				Face:   fid,
				Twin:   id,
				Next:   base + HalfedgeID((k+1)%3),
			})
			g.vertexFaces[from] = append(g.vertexFaces[from], fid)
		}
		g.faces = append(g.faces, face)
		g.faceEdge = append(g.faceEdge, base)
	}

	// Pair twins; open edges get a boundary half-edge.
	interior := len(g.halfedges)
	for i := 0; i < interior; i++ {
		he := &g.halfedges[i]
		if he.Twin != HalfedgeID(i) {
			continue
		}
		if twin, ok := directed[[2]VertexID{he.Target, he.Origin}]; ok {
			he.Twin = twin
			g.halfedges[twin].Twin = HalfedgeID(i)
			continue
		}
		bid := HalfedgeID(len(g.halfedges))
		g.halfedges = append(g.halfedges, Halfedge{
			Origin: he.Target,
			Target: he.Origin,
			Face:   NoFace,
			Twin:   HalfedgeID(i),
			Next:   bid,
		})
		g.halfedges[i].Twin = bid
	}

	g.bvh = NewBVH(g)
	return g, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.positions) }

// FaceCount returns the number of triangles.
func (g *Graph) FaceCount() int { return len(g.faces) }

// HalfedgeCount returns the number of directed half-edges, boundary included.
func (g *Graph) HalfedgeCount() int { return len(g.halfedges) }

// Position returns the position of v.
func (g *Graph) Position(v VertexID) math.Vec3 {
	return g.positions[v]
}

// FaceVertices returns the three corners of f in winding order.
func (g *Graph) FaceVertices(f FaceID) [3]VertexID {
	return g.faces[f]
}

// FaceBounds returns the bounding box of f.
func (g *Graph) FaceBounds(f FaceID) math.AABB {
	tri := g.faces[f]
	return math.AABBFromPoints(g.positions[tri[0]], g.positions[tri[1]], g.positions[tri[2]])
}

// VertexFaces returns the faces incident to v in ascending order.
// The slice is owned by the Graph and must not be modified.
func (g *Graph) VertexFaces(v VertexID) []FaceID {
	return g.vertexFaces[v]
}

// Halfedge returns the half-edge record for h.
func (g *Graph) Halfedge(h HalfedgeID) Halfedge {
	return g.halfedges[h]
}

// FaceHalfedges returns the three half-edges bounding f.
func (g *Graph) FaceHalfedges(f FaceID) [3]HalfedgeID {
	h0 := g.faceEdge[f]
	h1 := g.halfedges[h0].Next
	return [3]HalfedgeID{h0, h1, g.halfedges[h1].Next}
}

// Halfedges iterates every half-edge id, boundary half-edges included.
func (g *Graph) Halfedges() iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		for i := range g.halfedges {
			if !yield(HalfedgeID(i)) {
				return
			}
		}
	}
}

// HalfedgeLength returns the length of the edge h lies on.
func (g *Graph) HalfedgeLength(h HalfedgeID) float32 {
	he := g.halfedges[h]
	return g.positions[he.Origin].Distance(g.positions[he.Target])
}

// MoveVertex sets the position of v. Call Refit once a batch of moves is
// done so spatial queries see the new geometry.
func (g *Graph) MoveVertex(v VertexID, pos math.Vec3) {
	g.positions[v] = pos
}

// Refit recomputes the face hierarchy bounds after vertex moves.
func (g *Graph) Refit() {
	g.bvh.Refit(g)
}

// IntersectAABB appends to out every face whose bounds intersect box.
func (g *Graph) IntersectAABB(box math.AABB, out []FaceID) []FaceID {
	return g.bvh.IntersectAABB(box, out)
}

// Bounds returns the bounding box of the whole mesh.
func (g *Graph) Bounds() math.AABB {
	return g.bvh.Bounds()
}

// VertexNormal returns the area-weighted normal at v.
func (g *Graph) VertexNormal(v VertexID) math.Vec3 {
	var n math.Vec3
	for _, f := range g.vertexFaces[v] {
		tri := g.faces[f]
		a, b, c := g.positions[tri[0]], g.positions[tri[1]], g.positions[tri[2]]
		n = n.Add(b.Sub(a).Cross(c.Sub(a)))
	}
	return n.Normalize()
}
