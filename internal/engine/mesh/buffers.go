package mesh

import "fmt"

// EdgeMode selects how edges are turned into drawable geometry.
type EdgeMode int

const (
	// EdgeTubes sweeps a solid tube along every edge (triangle list).
	EdgeTubes EdgeMode = iota
	// EdgeLines emits raw 2-point line segments (line list).
	EdgeLines
)

// String returns the config name of the mode.
func (m EdgeMode) String() string {
	if m == EdgeLines {
		return "lines"
	}
	return "tubes"
}

// ParseEdgeMode maps a config name to an EdgeMode.
func ParseEdgeMode(name string) (EdgeMode, error) {
	switch name {
	case "", "tubes":
		return EdgeTubes, nil
	case "lines":
		return EdgeLines, nil
	default:
		return EdgeTubes, fmt.Errorf("unknown edge mode %q", name)
	}
}

// Buffers holds the output of one regeneration pass. A Buffers value is
// never modified after it is published; the next pass replaces it whole.
type Buffers struct {
	// Faces is a triangle list.
	Faces []ColouredPoint
	// Markers is a triangle list of vertex icospheres.
	Markers []ColouredPoint
	// Edges is a triangle list in EdgeTubes mode and a line list in
	// EdgeLines mode.
	Edges    []ColouredPoint
	EdgeMode EdgeMode
}

// Empty reports whether there is nothing to draw.
func (b *Buffers) Empty() bool {
	return b == nil || len(b.Faces)+len(b.Markers)+len(b.Edges) == 0
}

// Triangles returns every triangle corner of the buffers, in draw order.
// Line-mode edges are not included.
func (b *Buffers) Triangles() []ColouredPoint {
	if b == nil {
		return nil
	}
	out := make([]ColouredPoint, 0, len(b.Faces)+len(b.Markers)+len(b.Edges))
	out = append(out, b.Faces...)
	out = append(out, b.Markers...)
	if b.EdgeMode == EdgeTubes {
		out = append(out, b.Edges...)
	}
	return out
}
