package export

import (
	"io"

	"github.com/hschendel/stl"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/pkg/math"
)

// Solid converts the triangle geometry of b (faces, markers and tubes) to an
// STL solid. Line-mode edges have no volume and are left out.
func Solid(name string, b *mesh.Buffers) *stl.Solid {
	corners := b.Triangles()
	solid := &stl.Solid{
		Name:      name,
		Triangles: make([]stl.Triangle, 0, len(corners)/3),
	}
	for i := 0; i+2 < len(corners); i += 3 {
		a, bb, c := corners[i].Position.XYZ(), corners[i+1].Position.XYZ(), corners[i+2].Position.XYZ()
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal:   vec(bb.Sub(a).Cross(c.Sub(a)).Normalize()),
			Vertices: [3]stl.Vec3{vec(a), vec(bb), vec(c)},
		})
	}
	return solid
}

// WriteSTL writes the triangles of b as a binary STL file.
func WriteSTL(w io.Writer, name string, b *mesh.Buffers) error {
	return Solid(name, b).WriteAll(w)
}

func vec(v math.Vec3) stl.Vec3 {
	return stl.Vec3{v.X, v.Y, v.Z}
}
