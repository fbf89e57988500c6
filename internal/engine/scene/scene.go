// Package scene owns the per-view state of the viewer: the polytope mesh,
// its 4D orientation, the camera and the generated geometry. Input handlers
// mutate the state on the control goroutine; Regenerate rebuilds the
// geometry in full and publishes it for the renderer.
package scene

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/engine/camera"
	"github.com/Faultbox/hyperview/internal/engine/lighting"
	"github.com/Faultbox/hyperview/internal/engine/marker"
	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/projection"
	"github.com/Faultbox/hyperview/internal/engine/rotation"
	"github.com/Faultbox/hyperview/internal/engine/tube"
	"github.com/Faultbox/hyperview/internal/logger"
	"github.com/Faultbox/hyperview/pkg/math"
)

var errNilMesh = errors.New("scene: nil mesh")

// Options configures a scene.
type Options struct {
	Projection       projection.Strategy
	PoleOffset       float32
	Epsilon          float32
	MarkerRadius     float32
	MarkerRefinement int
	TubeRadius       float32
	TubeSegments     int
	EdgeMode         mesh.EdgeMode
	Workers          int

	// DragScale converts a drag across the whole viewport into radians.
	DragScale float32

	Width, Height int
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		Projection:       projection.Stereographic,
		PoleOffset:       projection.DefaultPoleOffset,
		Epsilon:          projection.DefaultEpsilon,
		MarkerRadius:     marker.DefaultRadius,
		MarkerRefinement: marker.DefaultRefinement,
		TubeRadius:       tube.DefaultRadius,
		TubeSegments:     tube.DefaultSegments,
		EdgeMode:         mesh.EdgeTubes,
		DragScale:        1,
		Width:            1280,
		Height:           800,
	}
}

// Constants is the per-frame block handed to the renderer.
type Constants struct {
	MVP   math.Mat4
	Light lighting.Light
}

// Scene is one visualized polytope.
type Scene struct {
	Rotation  *rotation.State
	Camera    *camera.ViewCamera
	Projector *projection.Projector
	Markers   *marker.Generator
	Tubes     *tube.Generator
	Light     lighting.Light
	DragScale float32

	mesh   *mesh.Mesh
	points []mesh.ColouredPoint
	layout mesh.Layout

	width, height int

	buffers    atomic.Pointer[mesh.Buffers]
	dirty      bool
	generation uint64

	log *zap.Logger
}

// New creates a scene for m. The mesh is read-only from here on.
func New(m *mesh.Mesh, opts Options) (*Scene, error) {
	s := &Scene{
		Rotation: rotation.New(),
		Camera:   camera.NewViewCamera(),
		Projector: &projection.Projector{
			Strategy:   opts.Projection,
			PoleOffset: opts.PoleOffset,
			Epsilon:    opts.Epsilon,
			Workers:    opts.Workers,
		},
		Markers: &marker.Generator{
			Radius:     opts.MarkerRadius,
			Refinement: opts.MarkerRefinement,
			Workers:    opts.Workers,
		},
		Tubes: &tube.Generator{
			Radius:   opts.TubeRadius,
			Segments: opts.TubeSegments,
			Mode:     opts.EdgeMode,
			Workers:  opts.Workers,
		},
		Light:     lighting.NewSun(45, 45),
		DragScale: opts.DragScale,
		log:       logger.Named("scene"),
	}
	if s.DragScale == 0 {
		s.DragScale = 1
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	s.Resize(opts.Width, opts.Height)
	if err := s.SetMesh(m); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMesh replaces the polytope. The orientation is kept.
func (s *Scene) SetMesh(m *mesh.Mesh) error {
	if m == nil {
		return errNilMesh
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.mesh = m
	s.points, s.layout = m.Flatten()
	s.dirty = true
	s.log.Info("mesh loaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("edges", len(m.Edges)),
		zap.Int("faces", len(m.Faces)),
		zap.Int("points", len(s.points)))
	return nil
}

// Mesh returns the current polytope.
func (s *Scene) Mesh() *mesh.Mesh {
	return s.mesh
}

// Resize records the viewport size used to normalize drags and for the
// camera aspect ratio.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.Camera.SetViewport(width, height)
}

// Viewport returns the current viewport size.
func (s *Scene) Viewport() (width, height int) {
	return s.width, s.height
}

// HandleDrag rotates the polytope by a pointer motion in screen points,
// y pointing down. The motion is normalized by the viewport so a drag across
// the whole view turns DragScale radians. Without a viewport it does nothing.
func (s *Scene) HandleDrag(delta math.Vec2, mode rotation.Mode) error {
	if delta.IsZero() || s.width <= 0 || s.height <= 0 {
		return nil
	}
	perView := math.Vec2{X: 1 / float32(s.width), Y: -1 / float32(s.height)}
	angle := delta.Mul(perView).Scale(s.DragScale)
	if err := s.Rotation.ApplyDrag(angle.X, angle.Y, mode); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// HandleScroll pans the view. Only the constant block changes.
func (s *Scene) HandleScroll(delta math.Vec2) {
	s.Camera.HandleScroll(delta.X, delta.Y)
}

// HandlePinch changes the field of view.
func (s *Scene) HandlePinch(magnification float32) {
	s.Camera.HandlePinch(magnification)
}

// Invalidate forces the next Update to regenerate.
func (s *Scene) Invalidate() {
	s.dirty = true
}

// Dirty reports whether the published buffers are stale.
func (s *Scene) Dirty() bool {
	return s.dirty
}

// Generation returns how many regeneration passes have run.
func (s *Scene) Generation() uint64 {
	return s.generation
}

// Update regenerates if anything changed since the last pass. Call it once
// per frame; any number of input events in between collapse into one pass.
func (s *Scene) Update() bool {
	if !s.dirty {
		return false
	}
	s.Regenerate()
	return true
}

// Regenerate projects every point of the mesh under the current rotation,
// rebuilds faces, markers and edges, and publishes the result.
func (s *Scene) Regenerate() *mesh.Buffers {
	start := time.Now()

	projected := s.Projector.Project(s.Rotation.Matrix(), s.points)
	faces, vertices, edges := s.layout.Split(projected)

	b := &mesh.Buffers{
		Faces:    faces,
		Markers:  s.Markers.Generate(vertices),
		Edges:    s.Tubes.Generate(edges),
		EdgeMode: s.Tubes.Mode,
	}
	s.buffers.Store(b)
	s.dirty = false
	s.generation++

	if ce := s.log.Check(zap.DebugLevel, "regenerated"); ce != nil {
		ce.Write(
			zap.Uint64("generation", s.generation),
			zap.Int("faces", len(b.Faces)/3),
			zap.Int("markers", len(b.Markers)/3),
			zap.Int("edge_points", len(b.Edges)),
			zap.Stringer("edge_mode", b.EdgeMode),
			zap.Stringer("projection", s.Projector.Strategy),
			zap.Float32("drift", s.Rotation.Drift()),
			zap.Duration("took", time.Since(start)))
	}
	return b
}

// Buffers returns the last published geometry, or nil before the first
// pass. Safe to call from any goroutine; the value is never modified.
func (s *Scene) Buffers() *mesh.Buffers {
	return s.buffers.Load()
}

// Constants returns the per-frame constant block.
func (s *Scene) Constants() Constants {
	return Constants{MVP: s.Camera.MVP(), Light: s.Light}
}

// ResetPan recentres the model. The orientation is kept.
func (s *Scene) ResetPan() {
	s.Camera.Reset()
}

// ToggleEdgeMode switches between tubes and lines.
func (s *Scene) ToggleEdgeMode() mesh.EdgeMode {
	if s.Tubes.Mode == mesh.EdgeTubes {
		s.Tubes.Mode = mesh.EdgeLines
	} else {
		s.Tubes.Mode = mesh.EdgeTubes
	}
	s.dirty = true
	return s.Tubes.Mode
}

// ToggleProjection switches between the stereographic and spherical
// round-trip projections.
func (s *Scene) ToggleProjection() projection.Strategy {
	if s.Projector.Strategy == projection.Stereographic {
		s.Projector.Strategy = projection.SphericalRoundTrip
	} else {
		s.Projector.Strategy = projection.Stereographic
	}
	s.dirty = true
	return s.Projector.Strategy
}

// AdjustRefinement changes the marker refinement by delta, clamped to
// [0, marker.MaxRefinement].
func (s *Scene) AdjustRefinement(delta int) int {
	r := min(max(s.Markers.Refinement+delta, 0), marker.MaxRefinement)
	if r != s.Markers.Refinement {
		s.Markers.Refinement = r
		s.dirty = true
	}
	return r
}

// Caption describes what the scene shows, for window titles and exports.
func (s *Scene) Caption(model string) string {
	return fmt.Sprintf("%s | %s | %s edges | refinement %d | drags %d",
		model,
		s.Projector.Strategy,
		s.Tubes.Mode,
		s.Markers.Refinement,
		s.Rotation.Drags())
}
