package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/game"
	"github.com/vovakirdan/tile-dash/internal/platform/tui"
)

func runPlay(cmd *cobra.Command, args []string) error {
	if flagFPS < 1 {
		return fmt.Errorf("--fps must be at least 1, got %d", flagFPS)
	}

	cfg, loader, err := loadSetup()
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so play sessions log to a file
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	width, height := 0, 0 // Let the model size itself until the first resize
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	session := game.NewSession(cfg, loader,
		game.WithLogger(logger),
		game.WithLevel(flagLevel),
	)

	logger.Info("starting",
		"level", session.Level(),
		"fps", flagFPS,
		"levels_dir", cfg.Level.Dir,
		"collision", cfg.Level.Collision,
	)

	err = tui.Run(session, tui.Options{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		HoldTicks: cfg.Input.HoldTicks,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("program failed", "error", err)
		return fmt.Errorf("error running game: %w", err)
	}

	logger.Info("exited", "level", session.Level())
	return nil
}
