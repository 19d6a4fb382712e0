package sculpt

import (
	"iter"

	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
)

// EdgeGraph exposes the half-edges of a mesh and their lengths.
// *mesh.Graph implements it.
type EdgeGraph interface {
	Halfedges() iter.Seq[mesh.HalfedgeID]
	HalfedgeLength(h mesh.HalfedgeID) float32
}

func halfedgeLengths(g EdgeGraph) []float64 {
	var lengths []float64
	for h := range g.Halfedges() {
		lengths = append(lengths, float64(g.HalfedgeLength(h)))
	}
	return lengths
}

// MeanEdgeLength averages the length of every directed half-edge. When
// each edge has exactly two half-edges this equals the mean over
// undirected edges. It returns NaN for a mesh without half-edges.
func MeanEdgeLength(g EdgeGraph) float32 {
	return float32(stat.Mean(halfedgeLengths(g), nil))
}

// EdgeReport classifies a mesh's half-edges against a Params band.
type EdgeReport struct {
	Halfedges  int
	TooShort   int // shorter than the minimum, candidates for collapse
	TooLong    int // longer than the maximum, candidates for split
	MeanLength float32
	StdDev     float32
}

// InBand returns the number of half-edges within the band.
func (r EdgeReport) InBand() int {
	return r.Halfedges - r.TooShort - r.TooLong
}

// ReportEdges measures every half-edge of g against p.
func ReportEdges(g EdgeGraph, p Params) EdgeReport {
	lengths := halfedgeLengths(g)
	r := EdgeReport{Halfedges: len(lengths)}
	for _, l := range lengths {
		sq := float32(l * l)
		switch {
		case p.NeedsCollapse(sq):
			r.TooShort++
		case p.NeedsSplit(sq):
			r.TooLong++
		}
	}
	if len(lengths) > 0 {
		mean, std := stat.MeanStdDev(lengths, nil)
		r.MeanLength = float32(mean)
		r.StdDev = float32(std)
	}
	return r
}
