// Package config handles sculpting configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

// Mesh shapes the CLI can generate.
const (
	ShapeIcoSphere = "icosphere"
	ShapeGrid      = "grid"
)

// Brush metrics.
const (
	MetricSphere    = "sphere"
	MetricEllipsoid = "ellipsoid"
)

// Deformation fields.
const (
	FieldTranslate = "translate"
	FieldInflate   = "inflate"
	FieldDraw      = "draw" // along the surface normal at the hit
)

// Config holds all sculpting settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Brush   BrushConfig   `yaml:"brush"`
	Params  ParamsConfig  `yaml:"params"`
	Stroke  StrokeConfig  `yaml:"stroke"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig describes the generated working mesh.
type MeshConfig struct {
	Shape        string  `yaml:"shape"`
	Radius       float32 `yaml:"radius"`       // icosphere radius
	Subdivisions int     `yaml:"subdivisions"` // icosphere refinement level
	GridCells    int     `yaml:"grid_cells"`   // quads per grid side
	GridSize     float32 `yaml:"grid_size"`    // grid side length
}

// BrushConfig describes the selector.
type BrushConfig struct {
	Radius       float32    `yaml:"radius"`
	Falloff      float32    `yaml:"falloff"`
	Curve        string     `yaml:"curve"`
	Metric       string     `yaml:"metric"`
	Axes         [3]float32 `yaml:"axes"`          // ellipsoid semi-axes
	RotationAxis [3]float32 `yaml:"rotation_axis"` // ellipsoid orientation
	RotationDeg  float32    `yaml:"rotation_deg"`
}

// ParamsConfig controls sculpt parameter derivation.
type ParamsConfig struct {
	MaxEdgeLength float32 `yaml:"max_edge_length"` // 0 derives from the mesh
}

// StrokeConfig describes the deformation applied by a stroke.
type StrokeConfig struct {
	Field     string     `yaml:"field"`
	Strength  float32    `yaml:"strength"`
	Direction [3]float32 `yaml:"direction"` // translate only
	Steps     int        `yaml:"steps"`
}

// OutputConfig holds optional output files.
type OutputConfig struct {
	WeightsCSV string `yaml:"weights_csv"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Shape:        ShapeIcoSphere,
			Radius:       1,
			Subdivisions: 4,
			GridCells:    32,
			GridSize:     2,
		},
		Brush: BrushConfig{
			Radius:       0.5,
			Falloff:      0.2,
			Curve:        "linear",
			Metric:       MetricSphere,
			Axes:         [3]float32{1, 1, 1},
			RotationAxis: [3]float32{0, 1, 0},
		},
		Params: ParamsConfig{
			MaxEdgeLength: 0,
		},
		Stroke: StrokeConfig{
			Field:     FieldInflate,
			Strength:  0.05,
			Direction: [3]float32{0, 1, 0},
			Steps:     1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	switch c.Mesh.Shape {
	case ShapeIcoSphere:
		if !(c.Mesh.Radius > 0) {
			invalid("mesh.radius must be positive, got %v", c.Mesh.Radius)
		}
		if c.Mesh.Subdivisions < 0 || c.Mesh.Subdivisions > 7 {
			invalid("mesh.subdivisions must be in [0, 7], got %d", c.Mesh.Subdivisions)
		}
	case ShapeGrid:
		if c.Mesh.GridCells < 1 {
			invalid("mesh.grid_cells must be at least 1, got %d", c.Mesh.GridCells)
		}
		if !(c.Mesh.GridSize > 0) {
			invalid("mesh.grid_size must be positive, got %v", c.Mesh.GridSize)
		}
	default:
		invalid("mesh.shape %q is not one of %s, %s", c.Mesh.Shape, ShapeIcoSphere, ShapeGrid)
	}

	if c.Brush.Radius < 0 {
		invalid("brush.radius must not be negative, got %v", c.Brush.Radius)
	}
	if c.Brush.Falloff < 0 {
		invalid("brush.falloff must not be negative, got %v", c.Brush.Falloff)
	}
	if _, ferr := sculpt.FalloffByName(c.Brush.Curve); ferr != nil {
		invalid("brush.curve: %w", ferr)
	}
	switch c.Brush.Metric {
	case MetricSphere:
	case MetricEllipsoid:
		for i, a := range c.Brush.Axes {
			if !(a > 0) {
				invalid("brush.axes[%d] must be positive, got %v", i, a)
			}
		}
	default:
		invalid("brush.metric %q is not one of %s, %s", c.Brush.Metric, MetricSphere, MetricEllipsoid)
	}

	if c.Params.MaxEdgeLength < 0 {
		invalid("params.max_edge_length must not be negative, got %v", c.Params.MaxEdgeLength)
	}

	switch c.Stroke.Field {
	case FieldTranslate, FieldInflate, FieldDraw:
	default:
		invalid("stroke.field %q is not one of %s, %s, %s", c.Stroke.Field, FieldTranslate, FieldInflate, FieldDraw)
	}
	if c.Stroke.Steps < 1 {
		invalid("stroke.steps must be at least 1, got %d", c.Stroke.Steps)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		invalid("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return err
}
