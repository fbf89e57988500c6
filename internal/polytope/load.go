package polytope

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/triangulate"
	"github.com/Faultbox/hyperview/pkg/math"
)

// File is the YAML layout of a mesh file:
//
//	colours:
//	  face: [0, 0, 1, 0.3]
//	vertices:
//	  - [1, 1, 1, 1]
//	edges:
//	  - points: [[1, 1, 1, 1], [1, 1, 1, -1]]
//	facets:
//	  - points: [[...], [...], [...], [...]]
//	    colour: [1, 0, 0, 0.5]
//	triangles:
//	  - points: [[...], [...], [...]]
//
// Facets are fan-triangulated around their centroid and closed back to the
// first point. Any element without a colour uses the file's default colour
// for its kind.
type File struct {
	Colours struct {
		Face   []float32 `yaml:"face"`
		Edge   []float32 `yaml:"edge"`
		Vertex []float32 `yaml:"vertex"`
	} `yaml:"colours"`
	EdgeSubdivisions int           `yaml:"edge_subdivisions"`
	Vertices         [][]float32   `yaml:"vertices"`
	Edges            []FileElement `yaml:"edges"`
	Facets           []FileElement `yaml:"facets"`
	Triangles        []FileElement `yaml:"triangles"`
}

// FileElement is a point list with an optional colour.
type FileElement struct {
	Points [][]float32 `yaml:"points"`
	Colour []float32   `yaml:"colour"`
}

// LoadFile reads a YAML mesh file. style supplies defaults for colours the
// file leaves out.
func LoadFile(path string, style Style) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML mesh document.
func Parse(data []byte, style Style) (*mesh.Mesh, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Build(style)
}

// Build converts the decoded file into a mesh.
func (f *File) Build(style Style) (*mesh.Mesh, error) {
	var err error
	if style.Face, err = colourOr(f.Colours.Face, style.Face); err != nil {
		return nil, fmt.Errorf("colours.face: %w", err)
	}
	if style.Edge, err = colourOr(f.Colours.Edge, style.Edge); err != nil {
		return nil, fmt.Errorf("colours.edge: %w", err)
	}
	if style.Vertex, err = colourOr(f.Colours.Vertex, style.Vertex); err != nil {
		return nil, fmt.Errorf("colours.vertex: %w", err)
	}
	if f.EdgeSubdivisions > 0 {
		style.EdgeSubdivisions = f.EdgeSubdivisions
	}

	m := &mesh.Mesh{}
	for i, v := range f.Vertices {
		p, err := vec4(v)
		if err != nil {
			return nil, fmt.Errorf("vertices[%d]: %w", i, err)
		}
		m.Vertices = append(m.Vertices, mesh.ColouredPoint{Position: p, Colour: style.Vertex})
	}

	for i, e := range f.Edges {
		pts, err := e.points(style.Edge)
		if err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("edges[%d]: %w", i, mesh.ErrShortPolyline)
		}
		// A bare two-point edge is subdivided; explicit runs are kept.
		if len(pts) == 2 {
			line := Subdivide(pts[0].Position, pts[1].Position, pts[0].Colour, style.EdgeSubdivisions)
			m.Edges = append(m.Edges, line)
			continue
		}
		m.Edges = append(m.Edges, mesh.Polyline{Points: pts})
	}

	for i, fc := range f.Facets {
		pts, err := fc.points(style.Face)
		if err != nil {
			return nil, fmt.Errorf("facets[%d]: %w", i, err)
		}
		tris, err := triangulate.FanClosed(pts)
		if err != nil {
			return nil, fmt.Errorf("facets[%d]: %w", i, err)
		}
		m.Faces = append(m.Faces, tris...)
	}

	for i, tr := range f.Triangles {
		pts, err := tr.points(style.Face)
		if err != nil {
			return nil, fmt.Errorf("triangles[%d]: %w", i, err)
		}
		if len(pts) != 3 {
			return nil, fmt.Errorf("triangles[%d]: has %d points, want 3", i, len(pts))
		}
		m.Faces = append(m.Faces, mesh.Triangle{pts[0], pts[1], pts[2]})
	}

	if len(m.Vertices)+len(m.Edges)+len(m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

func (e FileElement) points(def mesh.RGBA) ([]mesh.ColouredPoint, error) {
	c, err := colourOr(e.Colour, def)
	if err != nil {
		return nil, fmt.Errorf("colour: %w", err)
	}
	pts := make([]mesh.ColouredPoint, len(e.Points))
	for i, raw := range e.Points {
		p, err := vec4(raw)
		if err != nil {
			return nil, fmt.Errorf("points[%d]: %w", i, err)
		}
		pts[i] = mesh.ColouredPoint{Position: p, Colour: c}
	}
	return pts, nil
}

func vec4(v []float32) (math.Vec4, error) {
	if len(v) != 4 {
		return math.Vec4{}, fmt.Errorf("point has %d coordinates, want 4", len(v))
	}
	return math.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}, nil
}

func colourOr(v []float32, def mesh.RGBA) (mesh.RGBA, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mesh.RGBA{R: v[0], G: v[1], B: v[2], A: 1}, nil
	case 4:
		return mesh.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
	default:
		return def, fmt.Errorf("colour has %d components, want 3 or 4", len(v))
	}
}

// Name returns the display name of a model file, or "tesseract" for the
// built-in model.
func Name(path string) string {
	if path == "" {
		return "tesseract"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
