package mesh

import (
	"maps"
	"slices"
)

// Incidence is the face/vertex adjacency needed to convert between
// vertex sets and face sets.
type Incidence interface {
	FaceVertices(f FaceID) [3]VertexID
	VertexFaces(v VertexID) []FaceID
}

// VertexSet is an unordered set of vertices.
type VertexSet map[VertexID]struct{}

// Sorted returns the vertices in ascending order.
func (s VertexSet) Sorted() []VertexID {
	return slices.Sorted(maps.Keys(s))
}

// Selection is an unordered set of faces marking a region of a mesh.
// The zero value is an empty selection ready to use.
type Selection struct {
	faces map[FaceID]struct{}
}

// NewSelection returns a selection holding the given faces.
func NewSelection(faces ...FaceID) Selection {
	s := Selection{faces: make(map[FaceID]struct{}, len(faces))}
	for _, f := range faces {
		s.faces[f] = struct{}{}
	}
	return s
}

// Add inserts f into the selection.
func (s *Selection) Add(f FaceID) {
	if s.faces == nil {
		s.faces = make(map[FaceID]struct{})
	}
	s.faces[f] = struct{}{}
}

// Contains reports whether f is selected.
func (s Selection) Contains(f FaceID) bool {
	_, ok := s.faces[f]
	return ok
}

// Len returns the number of selected faces.
func (s Selection) Len() int { return len(s.faces) }

// IsEmpty reports whether no face is selected.
func (s Selection) IsEmpty() bool { return len(s.faces) == 0 }

// FaceIDs returns the selected faces in ascending order.
func (s Selection) FaceIDs() []FaceID {
	return slices.Sorted(maps.Keys(s.faces))
}

// Equal reports set equality.
func (s Selection) Equal(other Selection) bool {
	if len(s.faces) != len(other.faces) {
		return false
	}
	for f := range s.faces {
		if _, ok := other.faces[f]; !ok {
			return false
		}
	}
	return true
}

// ResolveToVertices returns every vertex lying on a selected face.
//
// Going vertices -> faces -> vertices is not idempotent: the result also
// contains the neighbours of the original vertices.
func (s Selection) ResolveToVertices(inc Incidence) VertexSet {
	out := make(VertexSet, len(s.faces)*2)
	for f := range s.faces {
		for _, v := range inc.FaceVertices(f) {
			out[v] = struct{}{}
		}
	}
	return out
}

// FacesIncidentToVertices returns every face touching at least one of the
// given vertices.
func FacesIncidentToVertices(vertices VertexSet, inc Incidence) Selection {
	s := Selection{faces: make(map[FaceID]struct{}, len(vertices)*2)}
	for v := range vertices {
		for _, f := range inc.VertexFaces(v) {
			s.faces[f] = struct{}{}
		}
	}
	return s
}
