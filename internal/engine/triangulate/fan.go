// Package triangulate turns planar facet loops into triangles.
package triangulate

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
)

// ErrTooFewPoints is returned for a loop with fewer than three points.
var ErrTooFewPoints = errors.New("triangulate: loop needs at least 3 points")

// Centroid returns the arithmetic mean of the positions and colours.
func Centroid(loop []mesh.ColouredPoint) mesh.ColouredPoint {
	var c mesh.ColouredPoint
	if len(loop) == 0 {
		return c
	}
	for _, p := range loop {
		c.Position = c.Position.Add(p.Position)
		c.Colour.R += p.Colour.R
		c.Colour.G += p.Colour.G
		c.Colour.B += p.Colour.B
		c.Colour.A += p.Colour.A
	}
	inv := 1 / float32(len(loop))
	c.Position = c.Position.Scale(inv)
	c.Colour = mesh.RGBA{R: c.Colour.R * inv, G: c.Colour.G * inv, B: c.Colour.B * inv, A: c.Colour.A * inv}
	return c
}

// Fan triangulates a loop around its centroid. For a loop of n points it
// always returns n-1 triangles (loop[i-1], loop[i], centroid), i = 1..n-1;
// the closing edge from the last point back to the first is not spanned, so
// callers that want full coverage pass the first point again at the end or
// use FanClosed.
//
// The loop is assumed planar and star-shaped around its centroid. Other
// input yields folded or overlapping triangles; nothing is filtered.
func Fan(loop []mesh.ColouredPoint) ([]mesh.Triangle, error) {
	if len(loop) < 3 {
		return nil, fmt.Errorf("fan of %d points: %w", len(loop), ErrTooFewPoints)
	}
	centroid := Centroid(loop)

	tris := make([]mesh.Triangle, 0, len(loop)-1)
	for i := 1; i < len(loop); i++ {
		tris = append(tris, mesh.Triangle{loop[i-1], loop[i], centroid})
	}
	return tris, nil
}

// FanClosed is Fan plus the closing triangle (loop[n-1], loop[0], centroid),
// n triangles in total.
func FanClosed(loop []mesh.ColouredPoint) ([]mesh.Triangle, error) {
	tris, err := Fan(loop)
	if err != nil {
		return nil, err
	}
	return append(tris, mesh.Triangle{loop[len(loop)-1], loop[0], tris[0][2]}), nil
}
