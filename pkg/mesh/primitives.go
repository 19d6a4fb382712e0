package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/freestyle-sculpt/pkg/math"
)

var icosahedronFaces = [20][3]uint32{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// IcoSphere returns a closed sphere of the given radius centered at the
// origin, made by subdividing an icosahedron. Subdivision 0 is the
// icosahedron itself, whose edges all share one length.
func IcoSphere(radius float32, subdivisions int) *Graph {
	phi := float32((1 + gomath.Sqrt(5)) / 2)
	raw := []math.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	positions := make([]math.Vec3, len(raw))
	for i, p := range raw {
		positions[i] = p.Normalize().Scale(radius)
	}
	triangles := icosahedronFaces[:]

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			p := positions[a].Add(positions[b]).Normalize().Scale(radius)
			idx := uint32(len(positions))
			positions = append(positions, p)
			midpoints[key] = idx
			return idx
		}

		next := make([][3]uint32, 0, len(triangles)*4)
		for _, t := range triangles {
			ab := midpoint(t[0], t[1])
			bc := midpoint(t[1], t[2])
			ca := midpoint(t[2], t[0])
			next = append(next,
				[3]uint32{t[0], ab, ca},
				[3]uint32{t[1], bc, ab},
				[3]uint32{t[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		triangles = next
	}

	return mustBuild("icosphere", positions, triangles)
}

// Grid returns a flat square of n×n quads in the XZ plane, centered at the
// origin with side length size and normals pointing along +Y.
func Grid(n int, size float32) *Graph {
	if n < 1 {
		n = 1
	}
	stride := uint32(n + 1)
	step := size / float32(n)
	half := size / 2

	positions := make([]math.Vec3, 0, (n+1)*(n+1))
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			positions = append(positions, math.Vec3{
				X: float32(x)*step - half,
				Z: float32(z)*step - half,
			})
		}
	}

	triangles := make([][3]uint32, 0, 2*n*n)
	for z := uint32(0); z < uint32(n); z++ {
		for x := uint32(0); x < uint32(n); x++ {
			a := z*stride + x
			b := (z+1)*stride + x
			c := a + 1
			d := b + 1
			triangles = append(triangles, [3]uint32{a, b, c}, [3]uint32{c, b, d})
		}
	}

	return mustBuild("grid", positions, triangles)
}

func mustBuild(name string, positions []math.Vec3, triangles [][3]uint32) *Graph {
	g, err := FromTriangles(positions, triangles)
	if err != nil {
		panic(fmt.Sprintf("mesh: building %s: %v", name, err))
	}
	return g
}
