package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/hyperview/internal/engine/mesh"
	"github.com/Faultbox/hyperview/internal/engine/projection"
	"github.com/Faultbox/hyperview/internal/polytope"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("window size = %dx%d, want 1280x800", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Geometry.Strategy() != projection.Stereographic {
		t.Errorf("projection = %v, want stereographic", cfg.Geometry.Strategy())
	}
	if cfg.Geometry.Edges() != mesh.EdgeTubes {
		t.Errorf("edge mode = %v, want tubes", cfg.Geometry.Edges())
	}
	if cfg.Geometry.PoleOffset != 1 {
		t.Errorf("pole offset = %v, want 1", cfg.Geometry.PoleOffset)
	}
	if cfg.Model.Path != "" {
		t.Errorf("model path = %q, want built-in", cfg.Model.Path)
	}
	if diff := cmp.Diff(polytope.DefaultStyle(), cfg.Model.Style()); diff != "" {
		t.Errorf("Model.Style() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.View.FieldOfViewRadians(); got < 1.0471 || got > 1.0473 {
		t.Errorf("FieldOfViewRadians() = %v, want pi/3", got)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
view:
  field_of_view: 45
  background: [0, 0, 0, 1]
geometry:
  projection: spherical
  edge_mode: lines
  marker_refinement: 3
  workers: 2
model:
  path: models/cell24.yaml
  face_colour: [1, 0, 0, 0.5]
logging:
  level: "debug"
  log_file: "hyperview.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 || !cfg.Window.Fullscreen {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.View.FieldOfView != 45 {
		t.Errorf("field_of_view = %v, want 45", cfg.View.FieldOfView)
	}
	if cfg.View.Background != [4]float32{0, 0, 0, 1} {
		t.Errorf("background = %v", cfg.View.Background)
	}
	if cfg.Geometry.Strategy() != projection.SphericalRoundTrip {
		t.Errorf("projection = %v, want spherical", cfg.Geometry.Strategy())
	}
	if cfg.Geometry.Edges() != mesh.EdgeLines {
		t.Errorf("edge mode = %v, want lines", cfg.Geometry.Edges())
	}
	if cfg.Geometry.MarkerRefinement != 3 || cfg.Geometry.Workers != 2 {
		t.Errorf("geometry = %+v", cfg.Geometry)
	}
	// Untouched keys keep their defaults.
	if cfg.Geometry.TubeSegments != Default().Geometry.TubeSegments {
		t.Errorf("tube_segments = %d, want default", cfg.Geometry.TubeSegments)
	}
	if got, want := cfg.Model.Style().Face, (mesh.RGBA{R: 1, A: 0.5}); got != want {
		t.Errorf("face colour = %v, want %v", got, want)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "hyperview.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        "window:\n  width: not a number\n  invalid syntax here\n",
		"unknown key":   "geometry:\n  tube_radus: 0.1\n",
		"short colour":  "model:\n  face_colour: [1, 0]\n",
		"wrong section": "graphics:\n  width: 800\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatal(err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile(empty) = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty file changed config (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"fov", func(c *Config) { c.View.FieldOfView = 180 }, "field_of_view"},
		{"eye", func(c *Config) { c.View.Eye = c.View.Centre }, "coincide"},
		{"projection", func(c *Config) { c.Geometry.Projection = "orthographic" }, "projection"},
		{"edge mode", func(c *Config) { c.Geometry.EdgeMode = "ribbons" }, "edge mode"},
		{"epsilon", func(c *Config) { c.Geometry.Epsilon = 0 }, "epsilon"},
		{"marker radius", func(c *Config) { c.Geometry.MarkerRadius = -1 }, "marker_radius"},
		{"refinement", func(c *Config) { c.Geometry.MarkerRefinement = 99 }, "marker_refinement"},
		{"tube radius", func(c *Config) { c.Geometry.TubeRadius = 0 }, "tube_radius"},
		{"tube segments", func(c *Config) { c.Geometry.TubeSegments = 2 }, "tube_segments"},
		{"workers", func(c *Config) { c.Geometry.Workers = -1 }, "workers"},
		{"subdivisions", func(c *Config) { c.Model.EdgeSubdivisions = -1 }, "edge_subdivisions"},
		{"export", func(c *Config) { c.Export.Height = 0 }, "export"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "cell.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Model.Path != "cell.yaml" {
					t.Errorf("expected model cell.yaml, got %s", cfg.Model.Path)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "lines and spherical flags",
			setup: func() { *flagLines, *flagSpherical = true, true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Geometry.Edges() != mesh.EdgeLines {
					t.Errorf("expected line edges, got %s", cfg.Geometry.EdgeMode)
				}
				if cfg.Geometry.Strategy() != projection.SphericalRoundTrip {
					t.Errorf("expected spherical projection, got %s", cfg.Geometry.Projection)
				}
			},
			teardown: func() { *flagLines, *flagSpherical = false, false },
		},
		{
			name:  "refinement flag",
			setup: func() { *flagRefinement = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Geometry.MarkerRefinement != 0 {
					t.Errorf("expected refinement 0, got %d", cfg.Geometry.MarkerRefinement)
				}
			},
			teardown: func() { *flagRefinement = -1 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth, *flagHeight = 2560, 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth, *flagHeight = 0, 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "window:\n  width: 1600\n  height: 900\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("geometry:\n  tube_segments: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("Load() accepted tube_segments 1")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Geometry.Projection = "spherical"
	cfg.Model.FaceColour = [4]float32{0.5, 0.5, 0, 1}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("saved config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir follows XDG_CONFIG_HOME only on Unix")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	*flagSave = true
	defer func() { *flagSave = false }()
	if !SaveRequested() {
		t.Fatal("SaveRequested() = false with --save-config")
	}

	cfg := Default()
	cfg.Window.Width = 1024
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("Save() path = %s, want %s", path, want)
	}
	if got := findConfigFile(); got != path && got != "./config.yaml" {
		t.Errorf("findConfigFile() = %q, want the saved file", got)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() = %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("saved width = %d, want 1024", loaded.Window.Width)
	}
}
