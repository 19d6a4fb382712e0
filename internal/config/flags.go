package config

import "flag"

// Flags holds the command-line overrides registered on a FlagSet.
// Only flags the user actually set override the config.
type Flags struct {
	fs *flag.FlagSet

	config       *string
	debug        *bool
	radius       *float64
	falloff      *float64
	curve        *string
	metric       *string
	shape        *string
	subdivisions *int
	maxEdge      *float64
	field        *string
	strength     *float64
	steps        *int
	weightsCSV   *string
	logFile      *string
}

// RegisterFlags adds the config override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:           fs,
		config:       fs.String("config", "", "Path to config file"),
		debug:        fs.Bool("debug", false, "Enable debug logging"),
		radius:       fs.Float64("radius", 0, "Brush radius"),
		falloff:      fs.Float64("falloff", 0, "Brush falloff width"),
		curve:        fs.String("curve", "", "Falloff curve name"),
		metric:       fs.String("metric", "", "Brush metric (sphere, ellipsoid)"),
		shape:        fs.String("shape", "", "Mesh shape (icosphere, grid)"),
		subdivisions: fs.Int("subdiv", 0, "Icosphere subdivisions"),
		maxEdge:      fs.Float64("max-edge", 0, "Maximum edge length (0 derives from the mesh)"),
		field:        fs.String("field", "", "Stroke field (translate, inflate, draw)"),
		strength:     fs.Float64("strength", 0, "Stroke strength"),
		steps:        fs.Int("steps", 0, "Stroke steps"),
		weightsCSV:   fs.String("weights-csv", "", "Write per-vertex weights to this CSV file"),
		logFile:      fs.String("log-file", "", "Also log to this file"),
	}
}

// configPath returns the explicit config path if provided via --config.
func (f *Flags) configPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies explicitly set flags to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "radius":
			cfg.Brush.Radius = float32(*f.radius)
		case "falloff":
			cfg.Brush.Falloff = float32(*f.falloff)
		case "curve":
			cfg.Brush.Curve = *f.curve
		case "metric":
			cfg.Brush.Metric = *f.metric
		case "shape":
			cfg.Mesh.Shape = *f.shape
		case "subdiv":
			cfg.Mesh.Subdivisions = *f.subdivisions
		case "max-edge":
			cfg.Params.MaxEdgeLength = float32(*f.maxEdge)
		case "field":
			cfg.Stroke.Field = *f.field
		case "strength":
			cfg.Stroke.Strength = float32(*f.strength)
		case "steps":
			cfg.Stroke.Steps = *f.steps
		case "weights-csv":
			cfg.Output.WeightsCSV = *f.weightsCSV
		case "log-file":
			cfg.Logging.LogFile = *f.logFile
		}
	})
}
