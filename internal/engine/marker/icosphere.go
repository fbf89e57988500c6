// Package marker stamps small spheres at projected polytope vertices so
// 0-dimensional features show up in a triangle rasterizer.
package marker

import (
	gomath "math"
	"sync"

	"github.com/Faultbox/hyperview/pkg/math"
)

// Face is one triangle of a unit sphere template.
type Face [3]math.Vec3

// MaxRefinement caps the subdivision level (20*4^6 = 81920 triangles per
// marker).
const MaxRefinement = 6

var phi = float32((1 + gomath.Sqrt(5)) / 2)

// Icosahedron returns the 20 faces of the regular icosahedron inscribed in
// the unit sphere, wound counter-clockwise seen from outside.
func Icosahedron() []Face {
	v := [12]math.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for i := range v {
		v[i] = v[i].Normalize()
	}

	idx := [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	faces := make([]Face, len(idx))
	for i, f := range idx {
		faces[i] = Face{v[f[0]], v[f[1]], v[f[2]]}
	}
	return faces
}

// Refine splits every face into four, pushing the new edge midpoints back
// onto the unit sphere.
func Refine(faces []Face) []Face {
	out := make([]Face, 0, 4*len(faces))
	for _, f := range faces {
		ab := f[0].Add(f[1]).Normalize()
		bc := f[1].Add(f[2]).Normalize()
		ca := f[2].Add(f[0]).Normalize()
		out = append(out,
			Face{f[0], ab, ca},
			Face{ab, f[1], bc},
			Face{ca, bc, f[2]},
			Face{ab, bc, ca},
		)
	}
	return out
}

// Icosphere returns the unit icosahedron refined the given number of times:
// 20*4^refinement faces. Negative levels count as 0 and levels above
// MaxRefinement are capped. Results are cached and shared; callers must not
// modify them.
func Icosphere(refinement int) []Face {
	refinement = max(0, min(refinement, MaxRefinement))

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.levels == nil {
		cache.levels = [][]Face{Icosahedron()}
	}
	for len(cache.levels) <= refinement {
		cache.levels = append(cache.levels, Refine(cache.levels[len(cache.levels)-1]))
	}
	return cache.levels[refinement]
}

// TriangleCount returns 20*4^refinement.
func TriangleCount(refinement int) int {
	return 20 << (2 * uint(max(0, min(refinement, MaxRefinement))))
}

var cache struct {
	mu     sync.Mutex
	levels [][]Face
}
