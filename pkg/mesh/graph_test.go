package mesh

import (
	"errors"
	"testing"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

func quad() ([]math.Vec3, [][3]uint32) {
	positions := []math.Vec3{
		{X: 0, Z: 0},
		{X: 0, Z: 1},
		{X: 1, Z: 0},
		{X: 1, Z: 1},
	}
	return positions, [][3]uint32{{0, 1, 2}, {2, 1, 3}}
}

func TestFromTriangles_Quad(t *testing.T) {
	positions, tris := quad()
	g, err := FromTriangles(positions, tris)
	if err != nil {
		t.Fatalf("FromTriangles failed: %v", err)
	}

	if g.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", g.VertexCount())
	}
	if g.FaceCount() != 2 {
		t.Errorf("expected 2 faces, got %d", g.FaceCount())
	}
	// 5 undirected edges, two half-edges each.
	if g.HalfedgeCount() != 10 {
		t.Errorf("expected 10 half-edges, got %d", g.HalfedgeCount())
	}

	boundary := 0
	for h := range g.Halfedges() {
		he := g.Halfedge(h)
		twin := g.Halfedge(he.Twin)
		if twin.Twin != h {
			t.Errorf("half-edge %d: twin of twin is %d", h, twin.Twin)
		}
		if twin.Origin != he.Target || twin.Target != he.Origin {
			t.Errorf("half-edge %d: twin is not reversed", h)
		}
		if he.IsBoundary() {
			boundary++
		}
	}
	if boundary != 4 {
		t.Errorf("expected 4 boundary half-edges, got %d", boundary)
	}

	if got := g.VertexFaces(1); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("VertexFaces(1) = %v, want [0 1]", got)
	}
	if got := g.VertexFaces(0); len(got) != 1 || got[0] != 0 {
		t.Errorf("VertexFaces(0) = %v, want [0]", got)
	}
}

func TestFromTriangles_FaceHalfedges(t *testing.T) {
	positions, tris := quad()
	g, err := FromTriangles(positions, tris)
	if err != nil {
		t.Fatalf("FromTriangles failed: %v", err)
	}

	for f := FaceID(0); f < FaceID(g.FaceCount()); f++ {
		corners := g.FaceVertices(f)
		for k, h := range g.FaceHalfedges(f) {
			he := g.Halfedge(h)
			if he.Face != f {
				t.Errorf("face %d half-edge %d belongs to face %d", f, h, he.Face)
			}
			if he.Origin != corners[k] {
				t.Errorf("face %d corner %d: origin %d, want %d", f, k, he.Origin, corners[k])
			}
		}
	}
}

func TestFromTriangles_Errors(t *testing.T) {
	positions, _ := quad()

	tests := []struct {
		name string
		pos  []math.Vec3
		tris [][3]uint32
		want error
	}{
		{"no triangles", positions, nil, ErrNoTriangles},
		{"out of range", positions, [][3]uint32{{0, 1, 9}}, ErrVertexOutOfRange},
		{"degenerate", positions, [][3]uint32{{0, 1, 1}}, ErrDegenerateFace},
		{"non-manifold", positions, [][3]uint32{{0, 1, 2}, {0, 1, 3}}, ErrNonManifoldEdge},
		{"non-finite", []math.Vec3{{X: float32(inf())}, {}, {Y: 1}}, [][3]uint32{{0, 1, 2}}, ErrNonFinitePosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTriangles(tt.pos, tt.tris)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIcoSphere_Topology(t *testing.T) {
	for subdiv := 0; subdiv <= 3; subdiv++ {
		g := IcoSphere(1, subdiv)

		v := g.VertexCount()
		f := g.FaceCount()
		e := g.HalfedgeCount() / 2
		if v-e+f != 2 {
			t.Errorf("subdivision %d: Euler characteristic %d, want 2", subdiv, v-e+f)
		}

		for h := range g.Halfedges() {
			if g.Halfedge(h).IsBoundary() {
				t.Fatalf("subdivision %d: closed sphere has boundary half-edge %d", subdiv, h)
			}
		}

		for i := 0; i < v; i++ {
			r := g.Position(VertexID(i)).Length()
			if r < 0.9999 || r > 1.0001 {
				t.Fatalf("subdivision %d: vertex %d at radius %v", subdiv, i, r)
			}
		}
	}
}

func TestIcoSphere_OutwardNormals(t *testing.T) {
	g := IcoSphere(2, 1)
	for i := 0; i < g.VertexCount(); i++ {
		v := VertexID(i)
		n := g.VertexNormal(v)
		if n.Dot(g.Position(v).Normalize()) < 0.9 {
			t.Fatalf("vertex %d normal %v does not point outward", v, n)
		}
	}
}

func TestGrid(t *testing.T) {
	g := Grid(4, 2)
	if g.VertexCount() != 25 {
		t.Errorf("expected 25 vertices, got %d", g.VertexCount())
	}
	if g.FaceCount() != 32 {
		t.Errorf("expected 32 faces, got %d", g.FaceCount())
	}

	n := g.VertexNormal(12)
	if n.Y < 0.999 {
		t.Errorf("grid normal = %v, want +Y", n)
	}

	b := g.Bounds()
	if b.Min != (math.Vec3{X: -1, Z: -1}) || b.Max != (math.Vec3{X: 1, Z: 1}) {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestHalfedgeLength(t *testing.T) {
	g := Grid(1, 3)
	for h := range g.Halfedges() {
		he := g.Halfedge(h)
		want := g.Position(he.Origin).Distance(g.Position(he.Target))
		if got := g.HalfedgeLength(h); got != want {
			t.Errorf("HalfedgeLength(%d) = %v, want %v", h, got, want)
		}
	}
}
