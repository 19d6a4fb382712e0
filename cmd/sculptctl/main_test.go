package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
	"github.com/Faultbox/freestyle-sculpt/pkg/mesh"
	"github.com/Faultbox/freestyle-sculpt/pkg/sculpt"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math.Vec3
		wantErr bool
	}{
		{in: "0,1,0", want: math.Vec3{Y: 1}},
		{in: " 1.5, -2 ,3", want: math.Vec3{X: 1.5, Y: -2, Z: 3}},
		{in: "1,2", wantErr: true},
		{in: "1,two,3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseVec3(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVec3(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVec3(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaveWeights(t *testing.T) {
	g := mesh.Grid(2, 2)
	ws := sculpt.Sphere(0.1, 0.1, sculpt.Linear).Select(g, math.Vec3{}, mesh.NoFace)

	path := filepath.Join(t.TempDir(), "weights.csv")
	if err := saveWeights(path, g, ws, math.Vec3{}); err != nil {
		t.Fatalf("saveWeights failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading weights: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "vertex,x,y,z,distance,weight" || len(lines) != 8 {
		t.Errorf("unexpected weights file:\n%s", data)
	}
}

func TestSaveWeightsBadPath(t *testing.T) {
	g := mesh.Grid(1, 1)
	path := filepath.Join(t.TempDir(), "missing", "weights.csv")
	if err := saveWeights(path, g, sculpt.EmptySelection(), math.Vec3{}); err == nil {
		t.Error("expected error for missing directory")
	}
}
