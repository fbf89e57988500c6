package config

import (
	"fmt"

	"github.com/Faultbox/hyperview/internal/engine/lighting"
	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/scene"
	"github.com/Faultbox/hyperview/internal/polytope"
	"github.com/Faultbox/hyperview/pkg/math"
)

// SceneOptions returns the pipeline settings for a viewport of the given
// size in screen points.
func (c *Config) SceneOptions(width, height int) scene.Options {
	g := c.Geometry
	return scene.Options{
		Projection:       g.Strategy(),
		PoleOffset:       g.PoleOffset,
		Epsilon:          g.Epsilon,
		MarkerRadius:     g.MarkerRadius,
		MarkerRefinement: g.MarkerRefinement,
		TubeRadius:       g.TubeRadius,
		TubeSegments:     g.TubeSegments,
		EdgeMode:         g.Edges(),
		Workers:          g.Workers,
		DragScale:        c.View.DragScale,
		Width:            width,
		Height:           height,
	}
}

// OpenModel builds the configured polytope: the model file if one is set,
// otherwise the tesseract.
func (c *Config) OpenModel() (*mesh.Mesh, error) {
	style := c.Model.Style()
	if c.Model.Path == "" {
		return polytope.Tesseract(style)
	}
	m, err := polytope.LoadFile(c.Model.Path, style)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", c.Model.Path, err)
	}
	return m, nil
}

// NewScene creates a scene for m with the configured camera and light.
func (c *Config) NewScene(m *mesh.Mesh, width, height int) (*scene.Scene, error) {
	s, err := scene.New(m, c.SceneOptions(width, height))
	if err != nil {
		return nil, err
	}
	v := c.View
	cam := s.Camera
	cam.FieldOfView = v.FieldOfViewRadians()
	cam.Eye = vec3(v.Eye)
	cam.Centre = vec3(v.Centre)
	if v.ScrollSensitivity > 0 {
		cam.ScrollSensitivity = v.ScrollSensitivity
	}
	cam.Reset()
	s.Light = lighting.NewSun(v.LightLongitude, v.LightLatitude)
	return s, nil
}

// BackgroundColour returns the clear colour.
func (v ViewConfig) BackgroundColour() mesh.RGBA {
	return rgba(v.Background)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
