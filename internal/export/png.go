package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// lineWidth is the pixel width of line-mode edges.
const lineWidth = 1.5

// Render rasterizes the snapshot with alpha blending, back to front.
func Render(s Snapshot, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(nrgba(s.Background)), image.Point{}, draw.Src)

	tris, lines := s.layout(width, height)
	z := vector.NewRasterizer(width, height)
	for _, t := range tris {
		z.Reset(width, height)
		z.MoveTo(t.P[0].X, t.P[0].Y)
		z.LineTo(t.P[1].X, t.P[1].Y)
		z.LineTo(t.P[2].X, t.P[2].Y)
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(t.Colour), image.Point{})
	}
	for _, l := range lines {
		z.Reset(width, height)
		if !strokePath(z, l) {
			continue
		}
		z.Draw(img, img.Bounds(), image.NewUniform(l.Colour), image.Point{})
	}

	if s.Caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{R: 40, G: 40, B: 40, A: 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, height-8),
		}
		d.DrawString(s.Caption)
	}
	return img
}

// strokePath adds a thin quad along the line. Returns false for a
// zero-length line.
func strokePath(z *vector.Rasterizer, l screenLine) bool {
	dx, dy := l.B.X-l.A.X, l.B.Y-l.A.Y
	n := dx*dx + dy*dy
	if n == 0 {
		return false
	}
	inv := lineWidth / 2 / sqrt(n)
	nx, ny := -dy*inv, dx*inv
	z.MoveTo(l.A.X+nx, l.A.Y+ny)
	z.LineTo(l.B.X+nx, l.B.Y+ny)
	z.LineTo(l.B.X-nx, l.B.Y-ny)
	z.LineTo(l.A.X-nx, l.A.Y-ny)
	z.ClosePath()
	return true
}

// WritePNG renders the snapshot and encodes it as PNG.
func WritePNG(w io.Writer, s Snapshot, width, height int) error {
	return png.Encode(w, Render(s, width, height))
}

func sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
