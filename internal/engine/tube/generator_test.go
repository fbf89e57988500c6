package tube

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/pkg/math"
)

var (
	red  = mesh.RGBA{R: 1, A: 1}
	blue = mesh.RGBA{B: 1, A: 1}
)

func run(points ...math.Vec3) []mesh.ColouredPoint {
	out := make([]mesh.ColouredPoint, len(points))
	for i, p := range points {
		c := red
		if i%2 == 1 {
			c = blue
		}
		out[i] = mesh.Point3(p, c)
	}
	return out
}

func isFinite(p math.Vec4) bool {
	for _, c := range []float32{p.X, p.Y, p.Z, p.W} {
		if gomath.IsNaN(float64(c)) || gomath.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func TestGenerate_StraightSegment(t *testing.T) {
	directions := []math.Vec3{
		{X: 1},
		{Y: 2},
		{Z: -3},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 0.5, Z: -2},
		{X: -0.3, Y: 4, Z: 0},
	}
	for _, segs := range []int{3, 8, 16} {
		for _, d := range directions {
			a := math.Vec3{X: 0.5, Y: -1, Z: 2}
			b := a.Add(d)
			g := &Generator{Radius: 0.05, Segments: segs, Mode: mesh.EdgeTubes}
			out := g.Generate([][]mesh.ColouredPoint{run(a, b)})

			if got, want := len(out)/3, 2*segs; got != want {
				t.Fatalf("segments=%d dir=%v: %d triangles, want %d", segs, d, got, want)
			}
			for _, p := range out {
				dist := p.Position.XYZ().DistanceToLine(a, d)
				if dist < 0.05-1e-4 || dist > 0.05+1e-4 {
					t.Fatalf("segments=%d dir=%v: tube vertex %v at distance %v from axis, want 0.05",
						segs, d, p.Position, dist)
				}
			}
		}
	}
}

func TestGenerate_NearerEndpointColour(t *testing.T) {
	a, b := math.Vec3{}, math.Vec3{X: 1}
	g := &Generator{Radius: 0.1, Segments: 6}
	for _, p := range g.Generate([][]mesh.ColouredPoint{run(a, b)}) {
		pos := p.Position.XYZ()
		want := red
		if pos.Distance(b) < pos.Distance(a) {
			want = blue
		}
		if p.Colour != want {
			t.Fatalf("vertex %v has colour %v, want %v", pos, p.Colour, want)
		}
	}
}

func TestGenerate_JointsShareRings(t *testing.T) {
	pts := []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {X: 1, Y: 1, Z: 2}}
	g := &Generator{Radius: 0.1, Segments: 5}
	out := g.Generate([][]mesh.ColouredPoint{run(pts...)})
	per := g.VerticesPerSegment()
	if len(out) != per*(len(pts)-1) {
		t.Fatalf("Generate() = %d points, want %d", len(out), per*(len(pts)-1))
	}

	// End ring of one section is the start ring of the next.
	for s := 0; s+1 < len(pts)-1; s++ {
		cur := out[s*per : (s+1)*per]
		next := out[(s+1)*per : (s+2)*per]
		for k := 0; k < g.Segments; k++ {
			endK := cur[6*k+1].Position.XYZ()
			startK := next[6*k].Position.XYZ()
			if endK.Distance(startK) > 1e-5 {
				t.Errorf("joint %d ring point %d: end %v != next start %v", s, k, endK, startK)
			}
		}
	}
}

func TestGenerate_Degenerate(t *testing.T) {
	p := math.Vec3{X: 1, Y: 2, Z: 3}
	g := New()
	out := g.Generate([][]mesh.ColouredPoint{
		run(p, p),
		run(p, p, p.Add(math.Vec3{Z: 1})),
		run(p), // too short, skipped
		nil,
	})
	if want := 3 * g.VerticesPerSegment(); len(out) != want {
		t.Fatalf("Generate() = %d points, want %d", len(out), want)
	}
	for i, q := range out {
		if !isFinite(q.Position) {
			t.Fatalf("point %d = %v, want finite", i, q.Position)
		}
	}
}

func TestGenerate_Lines(t *testing.T) {
	pts := run(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2}, math.Vec3{X: 3})
	g := &Generator{Mode: mesh.EdgeLines}
	out := g.Generate([][]mesh.ColouredPoint{pts, pts[:2]})
	if len(out) != 2*3+2 {
		t.Fatalf("Generate(lines) = %d points, want 8", len(out))
	}
	for i := 0; i < 3; i++ {
		if out[2*i] != pts[i] || out[2*i+1] != pts[i+1] {
			t.Errorf("segment %d = (%v, %v), want (%v, %v)", i, out[2*i], out[2*i+1], pts[i], pts[i+1])
		}
	}
}

func TestPerpendicular(t *testing.T) {
	for _, d := range []math.Vec3{
		{X: 1}, {Y: 1}, {Z: 1}, {X: -1},
		math.Vec3{X: 1, Y: 1}.Normalize(),
		math.Vec3{Y: 1, Z: -1}.Normalize(),
		math.Vec3{X: 1e-7, Y: 1}.Normalize(),
		math.Vec3{X: 0.2, Y: -0.4, Z: 0.9}.Normalize(),
	} {
		p := Perpendicular(d)
		if l := p.Length(); l < 0.9999 || l > 1.0001 {
			t.Errorf("Perpendicular(%v) length = %v, want 1", d, l)
		}
		if dot := p.Dot(d); dot > 1e-5 || dot < -1e-5 {
			t.Errorf("Perpendicular(%v) . d = %v, want 0", d, dot)
		}
	}
	if got := Perpendicular(math.Vec3{}); got != (math.Vec3{X: 1}) {
		t.Errorf("Perpendicular(0) = %v, want fallback x axis", got)
	}
}

func TestGenerate_SegmentsClamped(t *testing.T) {
	a, b := math.Vec3{}, math.Vec3{X: 1}
	for _, segs := range []int{-2, 0, 1, 2} {
		g := &Generator{Radius: 0.05, Segments: segs, Mode: mesh.EdgeTubes}
		out := g.Generate([][]mesh.ColouredPoint{run(a, b)})
		if got, want := len(out)/3, 2*MinSegments; got != want {
			t.Errorf("Segments=%d: %d triangles, want %d", segs, got, want)
		}
		if got := g.VerticesPerSegment(); got != 6*MinSegments {
			t.Errorf("Segments=%d: VerticesPerSegment() = %d, want %d", segs, got, 6*MinSegments)
		}
	}
}
