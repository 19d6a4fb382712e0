// sculptctl is a CLI utility for exercising sculpt brushes on generated meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/freestyle-sculpt/internal/config"
	"github.com/Faultbox/freestyle-sculpt/internal/export"
	"github.com/Faultbox/freestyle-sculpt/internal/logger"
	"github.com/Faultbox/freestyle-sculpt/internal/session"
	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "params":
		cmdParams(args)
	case "select", "sel":
		cmdSelect(args)
	case "stroke":
		cmdStroke(args)
	case "config":
		cmdConfig(args)
	case "curves":
		cmdCurves()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sculptctl - sculpt brush utility

Usage:
  sculptctl <command> [options]

Commands:
  params                       Show sculpt parameters and edge statistics
  select -at x,y,z             Select around a point and report weights
  stroke -from x,y,z -dir x,y,z Cast a ray and deform the surface it hits
  config [-save]               Print (or save) the effective configuration
  curves                       List falloff curve names

Common options:
  -config <file>   Config file (default: ./sculpt.yaml)
  -radius, -falloff, -curve, -metric, -shape, -subdiv, -max-edge
  -field, -strength, -steps, -weights-csv, -debug, -log-file

Examples:
  sculptctl params -subdiv 5
  sculptctl select -at 0,1,0 -radius 0.3 -curve smoothstep -weights-csv w.csv
  sculptctl stroke -from 0,5,0 -dir 0,-1,0 -field inflate -steps 4`)
}

// setup parses args into a fresh flag set and returns the loaded config.
func setup(name string, args []string, extra func(fs *flag.FlagSet)) (*config.Config, *flag.FlagSet) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	return cfg, fs
}

func openSession(cfg *config.Config) *session.Session {
	g, err := session.BuildMesh(cfg.Mesh)
	if err != nil {
		fatal("building mesh", err)
	}
	s, err := session.New(cfg, g, logger.Log)
	if err != nil {
		fatal("starting session", err)
	}
	return s
}

func fatal(msg string, err error) {
	logger.Log.Error(msg, zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}

func cmdParams(args []string) {
	cfg, _ := setup("params", args, nil)
	defer logger.Sync()

	s := openSession(cfg)
	report := s.Report()

	out, err := yaml.Marshal(s.Params)
	if err != nil {
		fatal("encoding params", err)
	}
	fmt.Printf("Mesh:      %s (%d vertices, %d faces)\n", cfg.Mesh.Shape, s.Mesh.VertexCount(), s.Mesh.FaceCount())
	fmt.Printf("Max edge:  %.4f\n", s.Params.MaxEdgeLength())
	fmt.Printf("Max move:  %.4f\n", s.Params.MaxMoveDist())
	fmt.Println()
	fmt.Print(string(out))
	fmt.Println()
	fmt.Println("Edges:")
	fmt.Printf("  half-edges  %d\n", report.Halfedges)
	fmt.Printf("  mean        %.4f (stddev %.4f)\n", report.MeanLength, report.StdDev)
	fmt.Printf("  too short   %d\n", report.TooShort)
	fmt.Printf("  too long    %d\n", report.TooLong)
	fmt.Printf("  in band     %d\n", report.InBand())
}

func cmdSelect(args []string) {
	var at string
	var face int
	cfg, _ := setup("select", args, func(fs *flag.FlagSet) {
		fs.StringVar(&at, "at", "0,1,0", "Brush center as x,y,z")
		fs.IntVar(&face, "face", -1, "Face under the brush (-1 = none)")
	})
	defer logger.Sync()

	center, err := parseVec3(at)
	if err != nil {
		fatal("parsing -at", err)
	}
	inputFace := mesh.NoFace
	if face >= 0 {
		inputFace = mesh.FaceID(face)
	}

	s := openSession(cfg)
	ws := s.SelectAt(center, inputFace)
	records := export.WeightRecords(s.Mesh, ws, center)

	full := 0
	for _, r := range records {
		if r.Weight == 1 {
			full++
		}
	}
	fmt.Printf("Center:    %v\n", center)
	fmt.Printf("Faces:     %d\n", ws.Selection.Len())
	fmt.Printf("Vertices:  %d (%d at full weight)\n", len(records), full)

	if cfg.Output.WeightsCSV != "" {
		writeWeights(cfg.Output.WeightsCSV, s, ws, center)
	}
}

func writeWeights(path string, s *session.Session, ws sculpt.WeightedSelection, center math.Vec3) {
	if err := saveWeights(path, s.Mesh, ws, center); err != nil {
		fatal("writing weights", err)
	}
	logger.Log.Info("weights written", zap.String("path", path))
}

// saveWeights writes the weights CSV to path. Close errors are reported.
func saveWeights(path string, g *mesh.Graph, ws sculpt.WeightedSelection, center math.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteWeights(f, g, ws, center); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdStroke(args []string) {
	var from, dir string
	cfg, _ := setup("stroke", args, func(fs *flag.FlagSet) {
		fs.StringVar(&from, "from", "0,5,0", "Ray origin as x,y,z")
		fs.StringVar(&dir, "dir", "0,-1,0", "Ray direction as x,y,z")
	})
	defer logger.Sync()

	origin, err := parseVec3(from)
	if err != nil {
		fatal("parsing -from", err)
	}
	direction, err := parseVec3(dir)
	if err != nil {
		fatal("parsing -dir", err)
	}

	s := openSession(cfg)
	res, err := s.Stroke(math.NewRay(origin, direction))
	if err != nil {
		fatal("stroke", err)
	}

	fmt.Printf("Hit:       face %d at %v (t=%.4f)\n", res.Hit.Face, res.Hit.Point, res.Hit.Distance)
	fmt.Printf("Moved:     %d vertex moves over %d steps\n", res.Moved(), len(res.Steps))
	fmt.Println()
	if err := export.NewStepWriter(os.Stdout).Write(res.Steps...); err != nil {
		fatal("writing steps", err)
	}

	if cfg.Output.WeightsCSV != "" {
		ws := s.SelectAt(res.Hit.Point, res.Hit.Face)
		writeWeights(cfg.Output.WeightsCSV, s, ws, res.Hit.Point)
	}
}

func cmdConfig(args []string) {
	var save bool
	cfg, _ := setup("config", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&save, "save", false, "Save to the user config directory")
	})
	defer logger.Sync()

	if save {
		if err := cfg.Save(); err != nil {
			fatal("saving config", err)
		}
		fmt.Printf("Saved to %s/sculpt.yaml\n", config.ConfigDir())
		return
	}

	out, err := cfg.YAML()
	if err != nil {
		fatal("encoding config", err)
	}
	fmt.Print(string(out))
}

func cmdCurves() {
	for _, name := range sculpt.FalloffNames() {
		fmt.Println(name)
	}
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
