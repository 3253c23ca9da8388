// dash is a side-scrolling tile platformer for the terminal.
//
// Usage:
//
//	dash                     - Play (menu: 1 new game, 2 restart, 3 next level)
//	dash levels              - List available levels
//	dash config              - Print the default configuration
//	dash render [level]      - Print one frame of a level as text
//
// Global flags:
//
//	--config <path>    - Custom config YAML
//	--levels <dir>     - Levels directory (overrides level.dir)
//	--fps <rate>       - Set tick rate (default: 60)
//	--log-file <path>  - Log file for play sessions (default: ~/.dash/dash.log)
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagFPS       int
	flagLogFile   string
	flagDebug     bool
	flagLevel     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Tile Dash - a side-scrolling platformer in your terminal",
	Long: `Tile Dash scrolls a tile level past your runner. Jump over gaps and
avoid the danger tiles until you reach the end of the level.

Controls:
  1          - New game (menu)
  2/R        - Restart level
  3          - Next level (menu)
  Space/W/Up - Jump
  P          - Pause
  Esc/B      - Back to menu
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Examples:
  dash
  dash --level 2
  dash --levels ./my-levels
  dash levels
  dash render 1 --ticks 120`,
	Args:          cobra.NoArgs,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Levels directory (default: level.dir from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.dash/dash.log", "Log file for play sessions")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.Flags().IntVar(&flagLevel, "level", 1, "Level selected in the menu at start")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(renderCmd)
}
