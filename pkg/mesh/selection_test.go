package mesh

import (
	"slices"
	"testing"
)

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	if !s.IsEmpty() || s.Len() != 0 {
		t.Error("zero selection should be empty")
	}
	if s.Contains(0) {
		t.Error("zero selection should contain nothing")
	}
	s.Add(3)
	if !s.Contains(3) || s.Len() != 1 {
		t.Error("Add on zero selection failed")
	}
}

func TestSelection_FaceIDsSorted(t *testing.T) {
	s := NewSelection(5, 1, 3, 1)
	if got := s.FaceIDs(); !slices.Equal(got, []FaceID{1, 3, 5}) {
		t.Errorf("FaceIDs() = %v, want [1 3 5]", got)
	}
}

func TestSelection_Equal(t *testing.T) {
	a := NewSelection(1, 2, 3)
	b := NewSelection(3, 2, 1)
	c := NewSelection(1, 2, 4)
	if !a.Equal(b) {
		t.Error("same faces should be equal")
	}
	if a.Equal(c) {
		t.Error("different faces should not be equal")
	}
	if a.Equal(NewSelection(1, 2)) {
		t.Error("different sizes should not be equal")
	}
}

func TestSelection_RoundTripExpands(t *testing.T) {
	g := Grid(4, 4)

	// Center vertex of the 5x5 vertex grid.
	start := VertexSet{12: {}}
	faces := FacesIncidentToVertices(start, g)
	if faces.Len() != len(g.VertexFaces(12)) {
		t.Fatalf("expected %d faces, got %d", len(g.VertexFaces(12)), faces.Len())
	}

	verts := faces.ResolveToVertices(g)
	if _, ok := verts[12]; !ok {
		t.Fatal("round trip lost the original vertex")
	}
	if len(verts) <= len(start) {
		t.Errorf("vertex -> face -> vertex should expand, got %d vertices", len(verts))
	}

	for v := range verts {
		shared := false
		for _, f := range g.VertexFaces(v) {
			if faces.Contains(f) {
				shared = true
			}
		}
		if !shared {
			t.Errorf("vertex %d is not on a selected face", v)
		}
	}
}

func TestVertexSet_Sorted(t *testing.T) {
	s := VertexSet{9: {}, 2: {}, 4: {}}
	if got := s.Sorted(); !slices.Equal(got, []VertexID{2, 4, 9}) {
		t.Errorf("Sorted() = %v", got)
	}
}
