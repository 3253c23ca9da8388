package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/game"
	"github.com/vovakirdan/tile-dash/internal/platform/tui"
)

var (
	flagTicks     int
	flagJumpEvery int
	flagColor     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [level]",
	Short: "Print one frame of a level as text",
	Long: `Starts the given level (default 1), runs it for --ticks ticks without
a terminal and prints the resulting frame.

Examples:
  dash render
  dash render 2 --ticks 200
  dash render 1 --ticks 90 --jump-every 30 --color`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to simulate before rendering")
	renderCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every N ticks (0 = never)")
	renderCmd.Flags().BoolVar(&flagColor, "color", false, "Render with ANSI colors")
}

func runRender(cmd *cobra.Command, args []string) error {
	id := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid level %q", args[0])
		}
		id = n
	}

	cfg, loader, err := loadSetup()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	session := game.NewSession(cfg, loader, game.WithLogger(logger), game.WithLevel(id))
	session.Restart()
	if err := session.LastError(); err != nil {
		return err
	}

	for i := 0; i < flagTicks && session.State() == game.StatePlaying; i++ {
		in := core.NewInputFrame()
		if flagJumpEvery > 0 && i%flagJumpEvery == 0 {
			in.Set(core.ActionJump)
		}
		session.Step(in)
	}

	cols, rows := session.Viewport()
	screen := core.NewScreen(cols, rows)
	session.Render(screen)

	out := cmd.OutOrStdout()
	if flagColor {
		fmt.Fprintln(out, tui.RenderScreen(screen))
	} else {
		fmt.Fprintln(out, screen.String())
	}

	snap := session.Snapshot()
	logger.Debug("rendered", "level", snap.Level, "tick", snap.Tick, "state", snap.State, "offset", snap.Offset)
	return nil
}
