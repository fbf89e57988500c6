// Package tube turns projected edge runs into drawable geometry: solid
// tubes swept along each run, or plain line segments.
package tube

import (
	gomath "math"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/parallel"
	"github.com/Faultbox/hyperview/pkg/math"
)

const (
	// DefaultRadius is the tube radius in projected units.
	DefaultRadius = 0.01
	// DefaultSegments is the number of ring points around a tube.
	DefaultSegments = 8
	// MinSegments is the smallest ring that still encloses a volume.
	MinSegments = 3

	// axisEpsilon is the smallest component of a unit direction treated as
	// non-zero when picking the perpendicular.
	axisEpsilon = 1e-6
)

// FallbackAxis replaces the direction of a zero-length segment.
var FallbackAxis = math.Vec3{Z: 1}

// Generator builds edge geometry.
type Generator struct {
	Radius float32
	// Segments is the ring resolution; values below MinSegments are raised
	// to MinSegments. A tube segment has 2*max(Segments, MinSegments)
	// triangles.
	Segments int
	Mode     mesh.EdgeMode
	// Workers bounds the goroutines used by Generate; <= 0 means GOMAXPROCS.
	Workers int
}

// New returns a tube generator with the default radius and resolution.
func New() *Generator {
	return &Generator{Radius: DefaultRadius, Segments: DefaultSegments, Mode: mesh.EdgeTubes}
}

// VerticesPerSegment returns how many output points one segment of a run
// produces in the generator's mode.
func (g *Generator) VerticesPerSegment() int {
	if g.Mode == mesh.EdgeLines {
		return 2
	}
	return 6 * g.segments()
}

func (g *Generator) segments() int {
	return max(MinSegments, g.Segments)
}

// Generate converts every run into geometry, in input order. Runs with
// fewer than two points produce nothing. In EdgeTubes mode the result is a
// triangle list with 2*Segments triangles per segment; in EdgeLines mode it
// is a line list with one pair per segment.
func (g *Generator) Generate(runs [][]mesh.ColouredPoint) []mesh.ColouredPoint {
	per := g.VerticesPerSegment()
	offsets := make([]int, len(runs)+1)
	for i, r := range runs {
		offsets[i+1] = offsets[i] + max(0, len(r)-1)*per
	}
	out := make([]mesh.ColouredPoint, offsets[len(runs)])

	parallel.For(len(runs), g.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst := out[offsets[i]:offsets[i+1]]
			if g.Mode == mesh.EdgeLines {
				lines(dst, runs[i])
			} else {
				g.tube(dst, runs[i])
			}
		}
	})
	return out
}

func lines(dst []mesh.ColouredPoint, run []mesh.ColouredPoint) {
	for i := 0; i+1 < len(run); i++ {
		dst[2*i] = run[i]
		dst[2*i+1] = run[i+1]
	}
}

// tube writes the lateral surface of the run. The ring at a joint is built
// from the next segment's direction so adjacent sections meet on the same
// ring.
func (g *Generator) tube(dst []mesh.ColouredPoint, run []mesh.ColouredPoint) {
	segs := g.segments()
	start := make([]math.Vec3, segs)
	end := make([]math.Vec3, segs)

	n := 0
	for i := 0; i+1 < len(run); i++ {
		a := run[i].Position.XYZ()
		b := run[i+1].Position.XYZ()
		dir := direction(a, b)
		next := dir
		if i+2 < len(run) {
			next = direction(b, run[i+2].Position.XYZ())
		}

		g.ring(start, a, dir)
		g.ring(end, b, next)

		ca, cb := run[i].Colour, run[i+1].Colour
		for k := 0; k < segs; k++ {
			k1 := (k + 1) % segs
			dst[n+0] = mesh.Point3(start[k], ca)
			dst[n+1] = mesh.Point3(end[k], cb)
			dst[n+2] = mesh.Point3(start[k1], ca)
			dst[n+3] = mesh.Point3(start[k1], ca)
			dst[n+4] = mesh.Point3(end[k], cb)
			dst[n+5] = mesh.Point3(end[k1], cb)
			n += 6
		}
	}
}

// ring fills dst with Segments points of radius Radius around centre in the
// plane perpendicular to axis.
func (g *Generator) ring(dst []math.Vec3, centre, axis math.Vec3) {
	first := centre.Add(Perpendicular(axis).Scale(g.Radius))
	step := 2 * gomath.Pi / float64(len(dst))
	for k := range dst {
		dst[k] = first.RotateAbout(centre, axis, float32(step*float64(k)))
	}
}

// direction returns the unit direction from a to b, or FallbackAxis when the
// points coincide.
func direction(a, b math.Vec3) math.Vec3 {
	d := b.Sub(a).Normalize()
	if d == (math.Vec3{}) {
		return FallbackAxis
	}
	return d
}

// Perpendicular returns a unit vector orthogonal to the unit vector d. The
// free coordinate is taken on the first of x, y, z where d is non-zero and
// solved from d·p = 0 with the other two coordinates set to 1.
func Perpendicular(d math.Vec3) math.Vec3 {
	var p math.Vec3
	switch {
	case abs(d.X) > axisEpsilon:
		p = math.Vec3{X: -(d.Y + d.Z) / d.X, Y: 1, Z: 1}
	case abs(d.Y) > axisEpsilon:
		p = math.Vec3{X: 1, Y: -(d.X + d.Z) / d.Y, Z: 1}
	case abs(d.Z) > axisEpsilon:
		p = math.Vec3{X: 1, Y: 1, Z: -(d.X + d.Y) / d.Z}
	default:
		return math.Vec3{X: 1}
	}
	return p.Normalize()
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
