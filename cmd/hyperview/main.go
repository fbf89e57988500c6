// Package main is the entry point for the hyperview polytope viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/config"
	"github.com/Faultbox/hyperview/internal/logger"
	"github.com/Faultbox/hyperview/internal/viewer"
)

func main() {
	// Parse CLI flags first
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

	logger.Info("=== hyperview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Fatal("failed to save config", zap.Error(err))
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Fatal("failed to create viewer", zap.Error(err))
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		v.Close()
		logger.Fatal("viewer error", zap.Error(err))
	}

	logger.Info("viewer closed normally")
}
