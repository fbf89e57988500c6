// Package polytope provides the meshes fed to the viewer: a built-in
// tesseract and YAML mesh files.
package polytope

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/triangulate"
	"github.com/Faultbox/hyperview/pkg/math"
)

// ErrEmptyMesh is returned for a mesh with nothing to draw.
var ErrEmptyMesh = errors.New("polytope: mesh has no vertices, edges or faces")

// Style colours the parts of a generated mesh.
type Style struct {
	Face   mesh.RGBA
	Edge   mesh.RGBA
	Vertex mesh.RGBA
	// EdgeSubdivisions is the number of extra points inserted along every
	// edge, so curved projections stay smooth.
	EdgeSubdivisions int
}

// DefaultStyle returns translucent blue faces with dark edges and red
// vertices.
func DefaultStyle() Style {
	return Style{
		Face:             mesh.RGBA{R: 0, G: 0, B: 1, A: 0.2},
		Edge:             mesh.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1},
		Vertex:           mesh.RGBA{R: 0.8, G: 0.1, B: 0.1, A: 1},
		EdgeSubdivisions: 16,
	}
}

// Tesseract builds the hypercube [-1, 1]^4: 16 vertices, 32 edges and 24
// square facets, each fanned into four triangles.
func Tesseract(style Style) (*mesh.Mesh, error) {
	corner := func(bits int) math.Vec4 {
		c := func(b int) float32 {
			if bits&(1<<b) != 0 {
				return 1
			}
			return -1
		}
		return math.Vec4{X: c(3), Y: c(2), Z: c(1), W: c(0)}
	}

	m := &mesh.Mesh{}
	for i := 0; i < 16; i++ {
		m.Vertices = append(m.Vertices, mesh.ColouredPoint{Position: corner(i), Colour: style.Vertex})
	}

	// Edges join corners differing in exactly one coordinate.
	for i := 0; i < 16; i++ {
		for b := 0; b < 4; b++ {
			j := i | 1<<b
			if j == i {
				continue
			}
			m.Edges = append(m.Edges, Subdivide(corner(i), corner(j), style.Edge, style.EdgeSubdivisions))
		}
	}

	// Facets span two free axes with the other two fixed.
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			var fixed []int
			for k := 0; k < 4; k++ {
				if k != a && k != b {
					fixed = append(fixed, k)
				}
			}
			for f := 0; f < 4; f++ {
				base := 0
				if f&1 != 0 {
					base |= 1 << fixed[0]
				}
				if f&2 != 0 {
					base |= 1 << fixed[1]
				}
				loop := []mesh.ColouredPoint{
					{Position: corner(base), Colour: style.Face},
					{Position: corner(base | 1<<a), Colour: style.Face},
					{Position: corner(base | 1<<a | 1<<b), Colour: style.Face},
					{Position: corner(base | 1<<b), Colour: style.Face},
				}
				tris, err := triangulate.FanClosed(loop)
				if err != nil {
					return nil, fmt.Errorf("tesseract facet %d%d/%d: %w", a, b, f, err)
				}
				m.Faces = append(m.Faces, tris...)
			}
		}
	}
	return m, nil
}

// Subdivide returns the edge from a to b as a run of n+2 evenly spaced
// points.
func Subdivide(a, b math.Vec4, c mesh.RGBA, n int) mesh.Polyline {
	n = max(0, n)
	pts := make([]mesh.ColouredPoint, n+2)
	for i := range pts {
		t := float32(i) / float32(n+1)
		pts[i] = mesh.ColouredPoint{Position: a.Add(b.Sub(a).Scale(t)), Colour: c}
	}
	return mesh.Polyline{Points: pts}
}
