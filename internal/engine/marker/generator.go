package marker

import (
	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/parallel"
)

const (
	// DefaultRadius is the marker radius in projected units.
	DefaultRadius = 0.025
	// DefaultRefinement gives 80 triangles per marker.
	DefaultRefinement = 1
)

// Generator stamps a scaled icosphere at every projected vertex.
type Generator struct {
	Radius float32
	// Refinement is the icosphere subdivision level. Values outside
	// [0, MaxRefinement] are clamped, so a marker always has
	// TriangleCount(Refinement) triangles.
	Refinement int
	// Workers bounds the goroutines used by Generate; <= 0 means GOMAXPROCS.
	Workers int
}

// New returns a generator with the default radius and refinement.
func New() *Generator {
	return &Generator{Radius: DefaultRadius, Refinement: DefaultRefinement}
}

// Generate returns a triangle list with one icosphere per vertex, in input
// order. Every corner of a marker carries its vertex's colour.
func (g *Generator) Generate(vertices []mesh.ColouredPoint) []mesh.ColouredPoint {
	template := Icosphere(g.Refinement)
	per := 3 * len(template)
	out := make([]mesh.ColouredPoint, per*len(vertices))

	parallel.For(len(vertices), g.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := vertices[i]
			centre := v.Position.XYZ()
			dst := out[i*per : (i+1)*per]
			for j, f := range template {
				for k, corner := range f {
					dst[3*j+k] = mesh.Point3(centre.Add(corner.Scale(g.Radius)), v.Colour)
				}
			}
		}
	})
	return out
}
