package config

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/projection"
	"github.com/Faultbox/hyperview/pkg/math"
)

func TestSceneOptions(t *testing.T) {
	cfg := Default()
	cfg.Geometry.Projection = "spherical"
	cfg.Geometry.EdgeMode = "lines"
	cfg.Geometry.Workers = 3
	cfg.View.DragScale = 2

	opts := cfg.SceneOptions(640, 480)
	if opts.Projection != projection.SphericalRoundTrip {
		t.Errorf("Projection = %v, want spherical", opts.Projection)
	}
	if opts.EdgeMode != mesh.EdgeLines {
		t.Errorf("EdgeMode = %v, want lines", opts.EdgeMode)
	}
	if opts.Workers != 3 || opts.DragScale != 2 {
		t.Errorf("Workers, DragScale = %d, %v", opts.Workers, opts.DragScale)
	}
	if opts.Width != 640 || opts.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", opts.Width, opts.Height)
	}
}

func TestOpenModel(t *testing.T) {
	cfg := Default()
	m, err := cfg.OpenModel()
	if err != nil {
		t.Fatalf("OpenModel() error = %v", err)
	}
	if len(m.Vertices) != 16 {
		t.Errorf("built-in model has %d vertices, want the tesseract's 16", len(m.Vertices))
	}

	path := filepath.Join(t.TempDir(), "edge.yaml")
	doc := "edges:\n  - points: [[0, 0, 0, 0], [1, 0, 0, 0]]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Model.Path = path
	m, err = cfg.OpenModel()
	if err != nil {
		t.Fatalf("OpenModel(%s) error = %v", path, err)
	}
	if len(m.Edges) != 1 || len(m.Vertices) != 0 {
		t.Errorf("loaded %d edges, %d vertices; want 1, 0", len(m.Edges), len(m.Vertices))
	}

	cfg.Model.Path = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.OpenModel(); err == nil {
		t.Error("OpenModel(missing) error = nil")
	}
}

func TestNewScene(t *testing.T) {
	cfg := Default()
	cfg.View.FieldOfView = 90
	cfg.View.Centre = [3]float32{0, 0, 8}
	cfg.View.ScrollSensitivity = 0.01

	m, err := cfg.OpenModel()
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.NewScene(m, 800, 400)
	if err != nil {
		t.Fatalf("NewScene() error = %v", err)
	}

	if got := s.Camera.FieldOfView; gomath.Abs(float64(got)-gomath.Pi/2) > 1e-6 {
		t.Errorf("FieldOfView = %v, want pi/2", got)
	}
	if s.Camera.Model != math.Translate(math.Vec3{Z: 8}) {
		t.Errorf("model not placed at the configured centre")
	}
	if s.Camera.ScrollSensitivity != 0.01 {
		t.Errorf("ScrollSensitivity = %v", s.Camera.ScrollSensitivity)
	}
	if s.Camera.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", s.Camera.Aspect)
	}
	if s.Light.Direction.Y <= 0 {
		t.Errorf("light direction %v should point up at latitude 45", s.Light.Direction)
	}
	if b := s.Regenerate(); b.Empty() {
		t.Error("tesseract scene regenerated to empty buffers")
	}
}
