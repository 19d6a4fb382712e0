// Package export writes selection and stroke data as CSV.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/freestyle-sculpt/pkg/deform"
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

// WeightRecord is one selected vertex.
type WeightRecord struct {
	Vertex   uint32  `csv:"vertex"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
	Z        float32 `csv:"z"`
	Distance float32 `csv:"distance"`
	Weight   float32 `csv:"weight"`
}

// WeightRecords resolves ws against g and returns one record per vertex in
// ascending id order. Distance is Euclidean from center.
func WeightRecords(g *mesh.Graph, ws sculpt.WeightedSelection, center math.Vec3) []WeightRecord {
	vertices := ws.Selection.ResolveToVertices(g).Sorted()
	records := make([]WeightRecord, 0, len(vertices))
	for _, v := range vertices {
		p := g.Position(v)
		records = append(records, WeightRecord{
			Vertex:   uint32(v),
			X:        p.X,
			Y:        p.Y,
			Z:        p.Z,
			Distance: p.Distance(center),
			Weight:   ws.Weight(p),
		})
	}
	return records
}

// WriteWeights writes the weight records of ws after a header row. An
// empty selection yields only the header.
func WriteWeights(w io.Writer, g *mesh.Graph, ws sculpt.WeightedSelection, center math.Vec3) error {
	records := WeightRecords(g, ws, center)
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	return nil
}

// StepRecord is one deformation step of a stroke.
type StepRecord struct {
	Step    int `csv:"step"`
	Moved   int `csv:"moved"`
	Clamped int `csv:"clamped"`
	Skipped int `csv:"skipped"`
}

// StepWriter appends stroke steps to w, writing the header once.
type StepWriter struct {
	w             io.Writer
	headerWritten bool
	next          int
}

// NewStepWriter returns a writer appending to w.
func NewStepWriter(w io.Writer) *StepWriter {
	return &StepWriter{w: w}
}

// Write appends one record per result.
func (sw *StepWriter) Write(results ...deform.Result) error {
	if len(results) == 0 {
		return nil
	}
	records := make([]StepRecord, len(results))
	for i, r := range results {
		records[i] = StepRecord{Step: sw.next, Moved: r.Moved, Clamped: r.Clamped, Skipped: r.Skipped}
		sw.next++
	}

	if !sw.headerWritten {
		if err := gocsv.Marshal(records, sw.w); err != nil {
			return fmt.Errorf("writing steps: %w", err)
		}
		sw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, sw.w); err != nil {
		return fmt.Errorf("writing steps: %w", err)
	}
	return nil
}
