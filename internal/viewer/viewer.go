// Package viewer implements the interactive main loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/config"
	"github.com/Faultbox/hyperview/internal/engine/input"
	"github.com/Faultbox/hyperview/internal/engine/renderer"
	"github.com/Faultbox/hyperview/internal/engine/scene"
	"github.com/Faultbox/hyperview/internal/engine/window"
	"github.com/Faultbox/hyperview/internal/export"
	"github.com/Faultbox/hyperview/internal/logger"
	"github.com/Faultbox/hyperview/internal/polytope"
)

// Viewer is the interactive polytope viewer.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	exporter *export.Exporter

	// pendingModel receives paths picked in the file dialog, which runs
	// off the main thread.
	pendingModel chan string
	modelName    string

	// captureScreen saves the next rendered frame.
	captureScreen bool

	log *zap.Logger
}

// New creates the window, the renderer and the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:       cfg,
		input:        input.New(),
		pendingModel: make(chan string, 1),
		modelName:    polytope.Name(cfg.Model.Path),
		exporter: &export.Exporter{
			Dir:    cfg.Export.Dir,
			Width:  cfg.Export.Width,
			Height: cfg.Export.Height,
		},
		log: logger.Named("viewer"),
	}

	m, err := cfg.OpenModel()
	if err != nil {
		return nil, err
	}

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after the window, since the OpenGL context must exist.
	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbWidth,
		Height:     fbHeight,
		Background: cfg.View.BackgroundColour(),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	width, height := v.window.GetSize()
	v.scene, err = cfg.NewScene(m, width, height)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	v.updateTitle()
	v.log.Info("viewer initialized")
	return v, nil
}

// Run runs the main loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			if err := v.handle(event); err != nil {
				return err
			}
		}

		select {
		case path := <-v.pendingModel:
			v.openModel(path)
		default:
		}

		// Any number of events since the last frame collapse into one pass.
		if v.scene.Update() {
			v.updateTitle()
		}

		v.renderer.Begin()
		v.renderer.Draw(v.scene.Buffers(), v.scene.Constants())
		if v.captureScreen {
			v.captureScreen = false
			v.capture()
		}
		v.renderer.End()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Uint64("generation", v.scene.Generation()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handle(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		v.scene.Resize(event.Width, event.Height)
		v.renderer.Resize(v.window.DrawableSize())

	case input.EventDrag:
		if err := v.scene.HandleDrag(event.Delta, event.Mode); err != nil {
			return fmt.Errorf("drag: %w", err)
		}

	case input.EventScroll:
		v.scene.HandleScroll(event.Delta)

	case input.EventPinch:
		v.scene.HandlePinch(event.Magnification)

	case input.EventKeyDown:
		v.handleKey(event.Key)
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		v.running = false
	case sdl.K_TAB:
		mode := v.scene.ToggleEdgeMode()
		v.log.Info("edge mode", zap.Stringer("mode", mode))
	case sdl.K_p:
		s := v.scene.ToggleProjection()
		v.log.Info("projection", zap.Stringer("strategy", s))
	case sdl.K_LEFTBRACKET:
		v.log.Info("marker refinement", zap.Int("level", v.scene.AdjustRefinement(-1)))
	case sdl.K_RIGHTBRACKET:
		v.log.Info("marker refinement", zap.Int("level", v.scene.AdjustRefinement(1)))
	case sdl.K_r:
		v.scene.ResetPan()
	case sdl.K_o:
		v.showOpenDialog()
	case sdl.K_e:
		v.export()
	case sdl.K_F12:
		v.captureScreen = true
	}
}

// showOpenDialog runs the native file picker in a goroutine. The chosen
// path is loaded on the main thread by Run.
func (v *Viewer) showOpenDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Polytope meshes", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Polytope").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case v.pendingModel <- filename:
		default:
		}
	}()
}

func (v *Viewer) openModel(path string) {
	m, err := polytope.LoadFile(path, v.config.Model.Style())
	if err == nil {
		err = v.scene.SetMesh(m)
	}
	if err != nil {
		v.log.Error("failed to open model", zap.String("path", path), zap.Error(err))
		return
	}
	v.modelName = polytope.Name(path)
	v.updateTitle()
}

func (v *Viewer) export() {
	s := export.Snapshot{
		Buffers:    v.scene.Buffers(),
		MVP:        v.scene.Camera.MVP(),
		Light:      v.scene.Light,
		Background: v.config.View.BackgroundColour(),
		Caption:    v.caption(),
	}
	if _, err := v.exporter.Write(export.BaseName(time.Now()), s); err != nil {
		v.log.Error("export failed", zap.Error(err))
	}
}

func (v *Viewer) capture() {
	pixels, width, height := v.renderer.ReadPixels()
	if _, err := v.exporter.WriteCapture(export.BaseName(time.Now()), pixels, width, height); err != nil {
		v.log.Error("screen capture failed", zap.Error(err))
	}
}

func (v *Viewer) caption() string {
	return v.scene.Caption(v.modelName)
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(v.config.Window.Title + " - " + v.caption())
}

// Close releases the renderer and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
