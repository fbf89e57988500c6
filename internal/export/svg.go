package export

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG draws the snapshot as flat-shaded polygons, back to front.
func WriteSVG(w io.Writer, s Snapshot, width, height int) error {
	tris, lines := s.layout(width, height)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fill(nrgba(s.Background)))

	xs := make([]int, 3)
	ys := make([]int, 3)
	canvas.Gstyle("stroke:none")
	for _, t := range tris {
		for k, p := range t.P {
			xs[k], ys[k] = round(p.X), round(p.Y)
		}
		canvas.Polygon(xs, ys, fill(t.Colour))
	}
	canvas.Gend()

	if len(lines) > 0 {
		canvas.Gstyle("stroke-width:1;stroke-linecap:round")
		for _, l := range lines {
			canvas.Line(round(l.A.X), round(l.A.Y), round(l.B.X), round(l.B.Y), stroke(l.Colour))
		}
		canvas.Gend()
	}

	if s.Caption != "" {
		canvas.Text(8, height-8, s.Caption, "font-family:monospace;font-size:13px;fill:rgb(40,40,40)")
	}
	canvas.End()
	return nil
}

func fill(c color.NRGBA) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f", c.R, c.G, c.B, float32(c.A)/255)
}

func stroke(c color.NRGBA) string {
	return fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.3f", c.R, c.G, c.B, float32(c.A)/255)
}

func round(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
