// Package mesh defines the vertex data exchanged between the polytope
// providers, the 4D pipeline and the renderer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hyperview/pkg/math"
)

// ErrShortPolyline is returned for an edge run with fewer than two points.
var ErrShortPolyline = errors.New("mesh: polyline needs at least 2 points")

// RGBA is a straight (non-premultiplied) colour with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Lerp interpolates between two colours.
func (c RGBA) Lerp(other RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + t*(other.R-c.R),
		G: c.G + t*(other.G-c.G),
		B: c.B + t*(other.B-c.B),
		A: c.A + t*(other.A-c.A),
	}
}

// ColouredPoint is the uniform vertex representation for faces, edges and
// vertex markers.
type ColouredPoint struct {
	Position math.Vec4
	Colour   RGBA
}

// Point3 builds a renderer-ready point from a projected 3D position.
func Point3(p math.Vec3, c RGBA) ColouredPoint {
	return ColouredPoint{Position: p.Vec4(), Colour: c}
}

// Triangle is one face triangle.
type Triangle [3]ColouredPoint

// Polyline is an ordered run of points along one edge. Edges may be
// subdivided into several points.
type Polyline struct {
	Points []ColouredPoint
}

// Len returns the point count of the run.
func (p Polyline) Len() int {
	return len(p.Points)
}

// Mesh is the read-only input of the pipeline. The three sequences are
// independent and of unrelated lengths.
type Mesh struct {
	Vertices []ColouredPoint
	Edges    []Polyline
	Faces    []Triangle
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	for i, e := range m.Edges {
		if e.Len() < 2 {
			return fmt.Errorf("edge %d has %d points: %w", i, e.Len(), ErrShortPolyline)
		}
	}
	return nil
}

// PointCount returns the number of raw 4D points the projector handles per
// regeneration.
func (m *Mesh) PointCount() int {
	n := len(m.Vertices) + 3*len(m.Faces)
	for _, e := range m.Edges {
		n += e.Len()
	}
	return n
}

// Flatten lays out all points in one slice: face corners first, then
// vertices, then every edge run in order. The returned Layout maps the
// projected slice back onto the three sequences.
func (m *Mesh) Flatten() ([]ColouredPoint, Layout) {
	points := make([]ColouredPoint, 0, m.PointCount())
	for _, f := range m.Faces {
		points = append(points, f[0], f[1], f[2])
	}
	lay := Layout{Faces: len(points)}

	points = append(points, m.Vertices...)
	lay.Vertices = len(m.Vertices)

	lay.EdgeRuns = make([]int, len(m.Edges))
	for i, e := range m.Edges {
		points = append(points, e.Points...)
		lay.EdgeRuns[i] = e.Len()
	}
	return points, lay
}

// Layout describes how Flatten packed a mesh.
type Layout struct {
	Faces    int
	Vertices int
	EdgeRuns []int
}

// Split cuts a flattened (and projected) slice back into face corners,
// vertices and edge runs. The returned slices alias points.
func (l Layout) Split(points []ColouredPoint) (faces, vertices []ColouredPoint, edges [][]ColouredPoint) {
	faces = points[:l.Faces:l.Faces]
	off := l.Faces
	vertices = points[off : off+l.Vertices : off+l.Vertices]
	off += l.Vertices
	edges = make([][]ColouredPoint, len(l.EdgeRuns))
	for i, n := range l.EdgeRuns {
		edges[i] = points[off : off+n : off+n]
		off += n
	}
	return faces, vertices, edges
}
