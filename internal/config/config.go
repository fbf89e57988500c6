// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/hyperview/internal/engine/marker"
	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/projection"
	"github.com/Faultbox/hyperview/internal/engine/tube"
	"github.com/Faultbox/hyperview/internal/logger"
	"github.com/Faultbox/hyperview/internal/polytope"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	View     ViewConfig     `yaml:"view"`
	Geometry GeometryConfig `yaml:"geometry"`
	Model    ModelConfig    `yaml:"model"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewConfig holds camera, input and light settings.
type ViewConfig struct {
	FieldOfView       float32    `yaml:"field_of_view"` // degrees
	Eye               [3]float32 `yaml:"eye"`
	Centre            [3]float32 `yaml:"centre"`
	DragScale         float32    `yaml:"drag_scale"` // radians per viewport width
	ScrollSensitivity float32    `yaml:"scroll_sensitivity"`
	LightLongitude    float32    `yaml:"light_longitude"`
	LightLatitude     float32    `yaml:"light_latitude"`
	Background        [4]float32 `yaml:"background"`
}

// GeometryConfig holds projection and mesh generation settings.
type GeometryConfig struct {
	Projection       string  `yaml:"projection"` // stereographic | spherical
	PoleOffset       float32 `yaml:"pole_offset"`
	Epsilon          float32 `yaml:"epsilon"`
	MarkerRadius     float32 `yaml:"marker_radius"`
	MarkerRefinement int     `yaml:"marker_refinement"`
	TubeRadius       float32 `yaml:"tube_radius"`
	TubeSegments     int     `yaml:"tube_segments"`
	EdgeMode         string  `yaml:"edge_mode"` // tubes | lines
	Workers          int     `yaml:"workers"`   // 0 = GOMAXPROCS
}

// ModelConfig selects the polytope and colours the built-in one.
type ModelConfig struct {
	Path             string     `yaml:"path"` // empty = built-in tesseract
	EdgeSubdivisions int        `yaml:"edge_subdivisions"`
	FaceColour       [4]float32 `yaml:"face_colour"`
	EdgeColour       [4]float32 `yaml:"edge_colour"`
	VertexColour     [4]float32 `yaml:"vertex_colour"`
}

// ExportConfig holds snapshot settings.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	style := polytope.DefaultStyle()
	return &Config{
		Window: WindowConfig{
			Title:  "hyperview",
			Width:  1280,
			Height: 800,
			VSync:  true,
		},
		View: ViewConfig{
			FieldOfView:       60,
			Centre:            [3]float32{0, 0, 5},
			DragScale:         1,
			ScrollSensitivity: 0.003,
			LightLongitude:    45,
			LightLatitude:     45,
			Background:        [4]float32{1, 1, 1, 1},
		},
		Geometry: GeometryConfig{
			Projection:       projection.Stereographic.String(),
			PoleOffset:       projection.DefaultPoleOffset,
			Epsilon:          projection.DefaultEpsilon,
			MarkerRadius:     marker.DefaultRadius,
			MarkerRefinement: marker.DefaultRefinement,
			TubeRadius:       tube.DefaultRadius,
			TubeSegments:     tube.DefaultSegments,
			EdgeMode:         mesh.EdgeTubes.String(),
		},
		Model: ModelConfig{
			EdgeSubdivisions: style.EdgeSubdivisions,
			FaceColour:       colour(style.Face),
			EdgeColour:       colour(style.Edge),
			VertexColour:     colour(style.Vertex),
		},
		Export: ExportConfig{
			Dir:    "export",
			Width:  1024,
			Height: 1024,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.View.FieldOfView > 0 && c.View.FieldOfView < 180, "view: field_of_view %v must be in (0, 180)", c.View.FieldOfView)
	check(c.View.Eye != c.View.Centre, "view: eye and centre coincide")

	g := c.Geometry
	if _, err := projection.ParseStrategy(g.Projection); err != nil {
		errs = append(errs, fmt.Errorf("geometry: %w", err))
	}
	if _, err := mesh.ParseEdgeMode(g.EdgeMode); err != nil {
		errs = append(errs, fmt.Errorf("geometry: %w", err))
	}
	check(g.Epsilon > 0, "geometry: epsilon %v must be positive", g.Epsilon)
	check(g.MarkerRadius > 0, "geometry: marker_radius %v must be positive", g.MarkerRadius)
	check(g.MarkerRefinement >= 0 && g.MarkerRefinement <= marker.MaxRefinement,
		"geometry: marker_refinement %d must be in [0, %d]", g.MarkerRefinement, marker.MaxRefinement)
	check(g.TubeRadius > 0, "geometry: tube_radius %v must be positive", g.TubeRadius)
	check(g.TubeSegments >= tube.MinSegments, "geometry: tube_segments %d must be at least %d", g.TubeSegments, tube.MinSegments)
	check(g.Workers >= 0, "geometry: workers %d must not be negative", g.Workers)

	check(c.Model.EdgeSubdivisions >= 0, "model: edge_subdivisions %d must not be negative", c.Model.EdgeSubdivisions)
	check(c.Export.Width > 0 && c.Export.Height > 0, "export: size %dx%d must be positive", c.Export.Width, c.Export.Height)

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}

// FieldOfViewRadians returns the vertical field of view in radians.
func (v ViewConfig) FieldOfViewRadians() float32 {
	return v.FieldOfView * gomath.Pi / 180
}

// Strategy returns the configured projection strategy.
func (g GeometryConfig) Strategy() projection.Strategy {
	s, _ := projection.ParseStrategy(g.Projection)
	return s
}

// Edges returns the configured edge mode.
func (g GeometryConfig) Edges() mesh.EdgeMode {
	m, _ := mesh.ParseEdgeMode(g.EdgeMode)
	return m
}

// Style returns the colours and subdivision used for built-in models and
// as defaults for model files.
func (m ModelConfig) Style() polytope.Style {
	return polytope.Style{
		Face:             rgba(m.FaceColour),
		Edge:             rgba(m.EdgeColour),
		Vertex:           rgba(m.VertexColour),
		EdgeSubdivisions: m.EdgeSubdivisions,
	}
}

func colour(c mesh.RGBA) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func rgba(c [4]float32) mesh.RGBA {
	return mesh.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
