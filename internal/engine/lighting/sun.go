// Package lighting provides the directional light used to shade the
// projected geometry.
package lighting

import (
	"math"

	hmath "github.com/Faultbox/hyperview/pkg/math"
)

// Light is a single directional light with an ambient floor.
type Light struct {
	// Direction points from the scene towards the light, normalized.
	Direction hmath.Vec3
	// Ambient is the fraction of the base colour kept on faces turned away
	// from the light.
	Ambient float32
}

// DefaultAmbient keeps back faces readable.
const DefaultAmbient = 0.35

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude is rotation around the Y axis, latitude is elevation
// from the XZ plane. Returns a normalized direction pointing towards the sun.
func SunDirection(longitude, latitude float32) hmath.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	return hmath.Vec3{
		X: float32(math.Cos(latRad) * math.Sin(lonRad)),
		Y: float32(math.Sin(latRad)),
		Z: float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}

// NewSun returns a light from longitude/latitude degrees.
func NewSun(longitude, latitude float32) Light {
	return Light{Direction: SunDirection(longitude, latitude), Ambient: DefaultAmbient}
}

// Intensity returns the brightness factor for a surface with the given
// normal. Both sides of a face are lit, since the projected faces have no
// consistent orientation.
func (l Light) Intensity(normal hmath.Vec3) float32 {
	n := normal.Normalize()
	d := n.Dot(l.Direction)
	if d < 0 {
		d = -d
	}
	return l.Ambient + (1-l.Ambient)*d
}
