package sculpt

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

// ErrUnknownFalloff is returned by FalloffByName for unregistered names.
var ErrUnknownFalloff = errors.New("unknown falloff curve")

// FalloffFunc shapes the weight across the falloff band. It receives the
// normalized distance t in [0, 1], 0 at the brush radius and 1 at the
// outer edge of influence, and conventionally returns 1 at t=0 and 0 at
// t=1. Output is not clamped by the selector.
type FalloffFunc func(t float32) float32

// Linear decays evenly from 1 to 0.
func Linear(t float32) float32 { return 1 - t }

// Smoothstep decays with zero slope at both ends.
func Smoothstep(t float32) float32 {
	return 1 - t*t*(3-2*t)
}

// Smootherstep decays with zero slope and curvature at both ends.
func Smootherstep(t float32) float32 {
	return 1 - t*t*t*(t*(t*6-15)+10)
}

// Sharp decays quadratically, dropping fast near the radius.
func Sharp(t float32) float32 {
	u := 1 - t
	return u * u
}

// Root decays slowly near the radius and steeply at the edge.
func Root(t float32) float32 {
	return math.Sqrt(1 - t)
}

// Constant keeps full weight across the band.
func Constant(float32) float32 { return 1 }

var falloffs = map[string]FalloffFunc{
	"linear":       Linear,
	"smoothstep":   Smoothstep,
	"smootherstep": Smootherstep,
	"sharp":        Sharp,
	"root":         Root,
	"constant":     Constant,
}

// FalloffByName returns a built-in curve by name, case-insensitive.
func FalloffByName(name string) (FalloffFunc, error) {
	fn, ok := falloffs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFalloff, name)
	}
	return fn, nil
}

// FalloffNames lists the built-in curve names in sorted order.
func FalloffNames() []string {
	names := make([]string, 0, len(falloffs))
	for name := range falloffs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
