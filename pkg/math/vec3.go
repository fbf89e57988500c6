// Package math provides the vector and matrix types shared by the 4D pipeline and the renderer.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// RotateAbout rotates the point v by angle radians around the line through
// origin with direction axis. axis must be normalized.
func (v Vec3) RotateAbout(origin, axis Vec3, angle float32) Vec3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	u, w, n := axis.X, axis.Y, axis.Z
	a, b, cc := origin.X, origin.Y, origin.Z
	x, y, z := v.X, v.Y, v.Z

	ux := u*x + w*y + n*z
	return Vec3{
		X: (a*(w*w+n*n)-u*(b*w+cc*n-ux))*t + x*c + (-cc*w+b*n-n*y+w*z)*s,
		Y: (b*(u*u+n*n)-w*(a*u+cc*n-ux))*t + y*c + (cc*u-a*n+n*x-u*z)*s,
		Z: (cc*(u*u+w*w)-n*(a*u+b*w-ux))*t + z*c + (-b*u+a*w-w*x+u*y)*s,
	}
}

// DistanceToLine returns the distance from v to the infinite line through
// origin with direction dir.
func (v Vec3) DistanceToLine(origin, dir Vec3) float32 {
	d := dir.Normalize()
	rel := v.Sub(origin)
	return rel.Sub(d.Scale(rel.Dot(d))).Length()
}

// Vec4 returns v as a homogeneous point (w = 1).
func (v Vec3) Vec4() Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}
