// Package export writes snapshots of the generated geometry: STL for the
// solid triangles, and SVG and PNG flat-shaded renderings seen through the
// viewer camera.
package export

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/Faultbox/hyperview/internal/engine/lighting"
	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/pkg/math"
)

// Snapshot is one regeneration pass plus the view it was seen with.
type Snapshot struct {
	Buffers    *mesh.Buffers
	MVP        math.Mat4
	Light      lighting.Light
	Background mesh.RGBA
	Caption    string
}

// screenPoint is a vertex in pixel coordinates, y down.
type screenPoint struct {
	X, Y  float32
	Depth float32 // NDC z
}

type screenTriangle struct {
	P      [3]screenPoint
	Colour color.NRGBA
	depth  float32
}

type screenLine struct {
	A, B   screenPoint
	Colour color.NRGBA
	depth  float32
}

// toScreen maps a homogeneous point through mvp onto a width x height
// image. ok is false for points at or behind the eye.
func toScreen(mvp math.Mat4, p math.Vec4, width, height int) (screenPoint, bool) {
	clip := mvp.MulVec4(p)
	if clip.W <= 0 {
		return screenPoint{}, false
	}
	inv := 1 / clip.W
	return screenPoint{
		X:     (clip.X*inv + 1) * 0.5 * float32(width),
		Y:     (1 - clip.Y*inv) * 0.5 * float32(height),
		Depth: clip.Z * inv,
	}, true
}

// layout projects every drawable primitive of the snapshot and sorts
// triangles back to front. Triangles are shaded by the light using their
// normal in the projected 3D space.
func (s Snapshot) layout(width, height int) ([]screenTriangle, []screenLine) {
	b := s.Buffers
	if b.Empty() {
		return nil, nil
	}

	corners := b.Triangles()
	tris := make([]screenTriangle, 0, len(corners)/3)
	for i := 0; i+2 < len(corners); i += 3 {
		var t screenTriangle
		visible := true
		for k := 0; k < 3; k++ {
			p, ok := toScreen(s.MVP, corners[i+k].Position, width, height)
			if !ok {
				visible = false
				break
			}
			t.P[k] = p
			t.depth += p.Depth / 3
		}
		if !visible {
			continue
		}
		a, b2, c := corners[i].Position.XYZ(), corners[i+1].Position.XYZ(), corners[i+2].Position.XYZ()
		normal := b2.Sub(a).Cross(c.Sub(a))
		avg := corners[i].Colour.Lerp(corners[i+1].Colour, 0.5).Lerp(corners[i+2].Colour, 1.0/3)
		t.Colour = shade(avg, s.Light.Intensity(normal))
		tris = append(tris, t)
	}
	slices.SortStableFunc(tris, func(x, y screenTriangle) int {
		return cmp.Compare(y.depth, x.depth)
	})

	var lines []screenLine
	if b.EdgeMode == mesh.EdgeLines {
		for i := 0; i+1 < len(b.Edges); i += 2 {
			pa, oka := toScreen(s.MVP, b.Edges[i].Position, width, height)
			pb, okb := toScreen(s.MVP, b.Edges[i+1].Position, width, height)
			if !oka || !okb {
				continue
			}
			lines = append(lines, screenLine{
				A: pa, B: pb,
				Colour: nrgba(b.Edges[i].Colour.Lerp(b.Edges[i+1].Colour, 0.5)),
				depth:  (pa.Depth + pb.Depth) / 2,
			})
		}
		slices.SortStableFunc(lines, func(x, y screenLine) int {
			return cmp.Compare(y.depth, x.depth)
		})
	}
	return tris, lines
}

func shade(c mesh.RGBA, intensity float32) color.NRGBA {
	return nrgba(mesh.RGBA{R: c.R * intensity, G: c.G * intensity, B: c.B * intensity, A: c.A})
}

func nrgba(c mesh.RGBA) color.NRGBA {
	return color.NRGBA{R: unit(c.R), G: unit(c.G), B: unit(c.B), A: unit(c.A)}
}

func unit(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
