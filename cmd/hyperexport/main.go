// Package main renders the polytope without a window and writes STL, SVG
// and PNG snapshots.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/config"
	"github.com/Faultbox/hyperview/internal/engine/scene"
	"github.com/Faultbox/hyperview/internal/export"
	"github.com/Faultbox/hyperview/internal/logger"
	"github.com/Faultbox/hyperview/internal/polytope"
)

var (
	flagDrags   = flag.String("drags", "", `Drags to apply before exporting, e.g. "120,0;0,80,yz/wx"`)
	flagOut     = flag.String("out", "", "Output directory (default from config)")
	flagFormats = flag.String("formats", "stl,svg,png", "Comma-separated output formats")
	flagName    = flag.String("name", "", "Output file base name (default timestamped)")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Fatal("failed to save config", zap.Error(err))
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	if err := run(cfg); err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	formats, err := parseFormats(*flagFormats)
	if err != nil {
		return err
	}
	drags, err := scene.ParseDrags(*flagDrags)
	if err != nil {
		return err
	}

	m, err := cfg.OpenModel()
	if err != nil {
		return err
	}
	// Drags are normalized by the export image, as if it were the window.
	s, err := cfg.NewScene(m, cfg.Export.Width, cfg.Export.Height)
	if err != nil {
		return err
	}
	if err := s.Replay(drags); err != nil {
		return err
	}
	s.Update()

	e := &export.Exporter{
		Dir:     cfg.Export.Dir,
		Width:   cfg.Export.Width,
		Height:  cfg.Export.Height,
		Formats: formats,
	}
	if *flagOut != "" {
		e.Dir = *flagOut
	}
	base := *flagName
	if base == "" {
		base = export.BaseName(time.Now())
	}

	c := s.Constants()
	paths, err := e.Write(base, export.Snapshot{
		Buffers:    s.Buffers(),
		MVP:        c.MVP,
		Light:      c.Light,
		Background: cfg.View.BackgroundColour(),
		Caption:    s.Caption(polytope.Name(cfg.Model.Path)),
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func parseFormats(list string) ([]export.Format, error) {
	var formats []export.Format
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
