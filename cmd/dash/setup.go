package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-dash/internal/config"
	"github.com/vovakirdan/tile-dash/internal/level"
)

// loadSetup loads the config and builds the level loader.
func loadSetup() (config.DashConfig, *level.Loader, error) {
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return config.DashConfig{}, nil, err
	}

	dir := cfg.Level.Dir
	if flagLevelsDir != "" {
		dir = flagLevelsDir
	}
	dir, err = expandHome(dir)
	if err != nil {
		return config.DashConfig{}, nil, err
	}
	cfg.Level.Dir = dir

	return cfg, level.NewDefaultLoader(dir), nil
}

// newLogger creates a logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dash",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens the log file for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("log: cannot create directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log: cannot open %s: %w", path, err)
	}
	return f, nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
