// Package session ties a working mesh, its sculpt parameters and a brush
// together for the command-line tools.
package session

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/freestyle-sculpt/internal/config"
	"github.com/Faultbox/freestyle-sculpt/internal/logger"
	"github.com/Faultbox/freestyle-sculpt/pkg/deform"
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

// ErrMiss is returned when a stroke ray does not touch the mesh.
var ErrMiss = errors.New("ray does not hit the mesh")

// Session is one sculpting run over a single mesh.
type Session struct {
	ID       string
	Mesh     *mesh.Graph
	Params   sculpt.Params
	Selector sculpt.MeshSelector

	cfg *config.Config
	log *zap.Logger
}

// New creates a session over g. Parameters are taken from the config when
// it fixes a maximum edge length and derived from g otherwise. A nil log
// discards output.
func New(cfg *config.Config, g *mesh.Graph, log *zap.Logger) (*Session, error) {
	if g.FaceCount() == 0 {
		return nil, mesh.ErrNoTriangles
	}
	selector, err := NewSelector(cfg.Brush)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Session{
		ID:       uuid.NewString(),
		Mesh:     g,
		Selector: selector,
		cfg:      cfg,
	}
	s.log = log.With(zap.String("session", s.ID))
	s.Params = s.paramsFor(g)

	s.log.Info("session started",
		zap.Int("vertices", g.VertexCount()),
		zap.Int("faces", g.FaceCount()),
		zap.Float32("maxEdge", s.Params.MaxEdgeLength()),
		zap.Float32("maxMove", s.Params.MaxMoveDist()),
	)
	return s, nil
}

func (s *Session) paramsFor(g *mesh.Graph) sculpt.Params {
	if l := s.cfg.Params.MaxEdgeLength; l > 0 {
		return sculpt.NewParams(l)
	}
	return sculpt.ParamsFromMeshGraph(g)
}

// RefreshParams re-derives parameters after the mesh changed. Fixed edge
// lengths from the config are kept.
func (s *Session) RefreshParams() sculpt.Params {
	s.Params = s.paramsFor(s.Mesh)
	s.log.Debug("params refreshed", zap.Float32("maxEdge", s.Params.MaxEdgeLength()))
	return s.Params
}

// BuildMesh generates the working mesh described by cfg.
func BuildMesh(cfg config.MeshConfig) (*mesh.Graph, error) {
	switch cfg.Shape {
	case config.ShapeIcoSphere:
		return mesh.IcoSphere(cfg.Radius, cfg.Subdivisions), nil
	case config.ShapeGrid:
		return mesh.Grid(cfg.GridCells, cfg.GridSize), nil
	default:
		return nil, fmt.Errorf("unknown mesh shape %q", cfg.Shape)
	}
}

// NewSelector builds the brush described by cfg.
func NewSelector(cfg config.BrushConfig) (sculpt.MeshSelector, error) {
	curve, err := sculpt.FalloffByName(cfg.Curve)
	if err != nil {
		return nil, err
	}
	switch cfg.Metric {
	case config.MetricSphere:
		return sculpt.Sphere(cfg.Radius, cfg.Falloff, curve), nil
	case config.MetricEllipsoid:
		axes := vec(cfg.Axes)
		angle := cfg.RotationDeg * gomath.Pi / 180
		rot := math.QuatFromAxisAngle(vec(cfg.RotationAxis), angle)
		return sculpt.NewMetricWithFalloff(sculpt.NewEllipsoid(axes, rot), cfg.Radius, cfg.Falloff, curve), nil
	default:
		return nil, fmt.Errorf("unknown brush metric %q", cfg.Metric)
	}
}

// NewField builds the deformation field of a stroke centered at center on
// a surface facing normal.
func NewField(cfg config.StrokeConfig, center, normal math.Vec3) (deform.Field, error) {
	switch cfg.Field {
	case config.FieldTranslate:
		return deform.Translate{Offset: vec(cfg.Direction).Normalize().Scale(cfg.Strength)}, nil
	case config.FieldInflate:
		return deform.Inflate{Center: center, Strength: cfg.Strength}, nil
	case config.FieldDraw:
		return deform.Translate{Offset: normal.Normalize().Scale(cfg.Strength)}, nil
	default:
		return nil, fmt.Errorf("unknown stroke field %q", cfg.Field)
	}
}

// SelectAt runs the brush at pos. face is passed through to the selector.
func (s *Session) SelectAt(pos math.Vec3, face mesh.FaceID) sculpt.WeightedSelection {
	ws := s.Selector.Select(s.Mesh, pos, face)
	s.log.Debug("selection",
		zap.Float32("x", pos.X), zap.Float32("y", pos.Y), zap.Float32("z", pos.Z),
		zap.Int("faces", ws.Selection.Len()),
	)
	return ws
}

// Pick casts r against the mesh and selects around the hit point.
func (s *Session) Pick(r math.Ray) (sculpt.WeightedSelection, mesh.Hit, error) {
	hit, ok := s.Mesh.CastRay(r)
	if !ok {
		return sculpt.EmptySelection(), mesh.Hit{}, ErrMiss
	}
	return s.SelectAt(hit.Point, hit.Face), hit, nil
}

// StrokeResult summarizes a Stroke.
type StrokeResult struct {
	Hit   mesh.Hit
	Steps []deform.Result
}

// Moved returns the number of vertex moves over all steps.
func (r StrokeResult) Moved() int {
	n := 0
	for _, st := range r.Steps {
		n += st.Moved
	}
	return n
}

// Stroke picks the surface under r and applies the configured field for
// the configured number of steps. Each step reselects at the original hit
// point so the brush follows the deformed surface.
func (s *Session) Stroke(r math.Ray) (StrokeResult, error) {
	hit, ok := s.Mesh.CastRay(r)
	if !ok {
		return StrokeResult{}, ErrMiss
	}
	field, err := NewField(s.cfg.Stroke, hit.Point, s.surfaceNormal(hit.Face))
	if err != nil {
		return StrokeResult{}, err
	}

	res := StrokeResult{Hit: hit}
	for step := range s.cfg.Stroke.Steps {
		ws := s.SelectAt(hit.Point, hit.Face)
		if ws.Selection.IsEmpty() {
			s.log.Debug("empty selection, stroke stopped", zap.Int("step", step))
			break
		}
		out := deform.Apply(s.Mesh, ws, field, s.Params)
		res.Steps = append(res.Steps, out)
		s.log.Debug("stroke step",
			zap.Int("step", step),
			zap.Int("moved", out.Moved),
			zap.Int("clamped", out.Clamped),
			zap.Int("skipped", out.Skipped),
		)
	}

	s.log.Info("stroke done",
		zap.Uint32("face", uint32(hit.Face)),
		zap.Int("steps", len(res.Steps)),
		zap.Int("moved", res.Moved()),
	)
	return res, nil
}

// surfaceNormal averages the vertex normals of face f.
func (s *Session) surfaceNormal(f mesh.FaceID) math.Vec3 {
	var n math.Vec3
	for _, v := range s.Mesh.FaceVertices(f) {
		n = n.Add(s.Mesh.VertexNormal(v))
	}
	return n.Normalize()
}

// Report summarizes the current edge lengths against the session params.
func (s *Session) Report() sculpt.EdgeReport {
	return sculpt.ReportEdges(s.Mesh, s.Params)
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
