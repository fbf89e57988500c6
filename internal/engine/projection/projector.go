// Package projection rotates 4D points and maps them stereographically
// into 3D.
package projection

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/parallel"
	"github.com/Faultbox/hyperview/pkg/math"
)

// Strategy selects how a rotated 4D point is brought down to 3D.
type Strategy int

const (
	// Stereographic divides xyz by (w - pole offset).
	Stereographic Strategy = iota
	// SphericalRoundTrip converts to hyperspherical angles, rebuilds a unit
	// point from them and then divides as Stereographic. The result equals
	// Stereographic applied to the normalized point.
	SphericalRoundTrip
)

// String returns the config name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Stereographic:
		return "stereographic"
	case SphericalRoundTrip:
		return "spherical"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a config name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "stereographic":
		return Stereographic, nil
	case "spherical":
		return SphericalRoundTrip, nil
	default:
		return 0, fmt.Errorf("unknown projection %q", name)
	}
}

const (
	// DefaultPoleOffset is the w coordinate of the projection pole.
	DefaultPoleOffset = 1
	// DefaultEpsilon is the smallest divisor magnitude allowed.
	DefaultEpsilon = 1e-4
)

// Projector maps 4D points to 3D under a rotation.
type Projector struct {
	Strategy   Strategy
	PoleOffset float32
	Epsilon    float32
	// Workers bounds the goroutines used by Project; <= 0 means GOMAXPROCS.
	Workers int
}

// New returns a stereographic projector with the default pole and epsilon.
func New() *Projector {
	return &Projector{
		Strategy:   Stereographic,
		PoleOffset: DefaultPoleOffset,
		Epsilon:    DefaultEpsilon,
	}
}

// Point rotates p by m and projects it.
func (p *Projector) Point(m math.Mat4, v math.Vec4) math.Vec3 {
	r := m.MulVec4(v)
	if p.Strategy == SphericalRoundTrip {
		r = sphericalRoundTrip(r)
	}
	return p.stereographic(r)
}

// Project rotates and projects every point into a new slice of the same
// length and order. Colours are carried through and positions come back as
// homogeneous 3D points (W = 1).
func (p *Projector) Project(m math.Mat4, points []mesh.ColouredPoint) []mesh.ColouredPoint {
	out := make([]mesh.ColouredPoint, len(points))
	parallel.For(len(points), p.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = mesh.Point3(p.Point(m, points[i].Position), points[i].Colour)
		}
	})
	return out
}

func (p *Projector) stereographic(r math.Vec4) math.Vec3 {
	d := r.W - p.PoleOffset
	eps := p.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	if d < eps && d > -eps {
		d = float32(gomath.Copysign(float64(eps), float64(d)))
	}
	return r.XYZ().Scale(1 / d)
}

// sphericalRoundTrip converts r to hyperspherical angles and back to a unit
// 4D point. A zero partial norm falls back to angle 0 or pi following the
// sign of its leading coordinate.
func sphericalRoundTrip(r math.Vec4) math.Vec4 {
	x, y, z, w := float64(r.X), float64(r.Y), float64(r.Z), float64(r.W)

	a1 := angle(x, gomath.Sqrt(x*x+y*y+z*z+w*w))
	a2 := angle(y, gomath.Sqrt(y*y+z*z+w*w))
	a3 := angle(z, gomath.Sqrt(z*z+w*w))
	if w < 0 {
		a3 = 2*gomath.Pi - a3
	}

	s1, s2 := gomath.Sin(a1), gomath.Sin(a2)
	return math.Vec4{
		X: float32(gomath.Cos(a1)),
		Y: float32(s1 * gomath.Cos(a2)),
		Z: float32(s1 * s2 * gomath.Cos(a3)),
		W: float32(s1 * s2 * gomath.Sin(a3)),
	}
}

func angle(coord, norm float64) float64 {
	if norm == 0 {
		if coord < 0 {
			return gomath.Pi
		}
		return 0
	}
	c := coord / norm
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return gomath.Acos(c)
}
