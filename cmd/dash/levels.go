package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-dash/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the levels found in the levels directory and the built-in set.
A file in the levels directory replaces the built-in level with the same number.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	_, loader, err := loadSetup()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	ids, err := loader.ListIDs()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-4s  %-4s  %-6s  %s\n", "Level", "Rows", "Cols", "Danger", "Source")
	fmt.Fprintf(out, "  %-5s  %-4s  %-4s  %-6s  %s\n", "-----", "----", "----", "------", "------")

	for _, id := range ids {
		lvl, err := loader.Load(id)
		if err != nil {
			logger.Warn("skipping level", "level", id, "error", err)
			continue
		}
		fmt.Fprintf(out, "  %-5d  %-4d  %-4d  %-6d  %s\n",
			id,
			lvl.Tiles.Rows(),
			lvl.Tiles.Width(),
			lvl.Tiles.Count(level.TileDanger),
			lvl.Source,
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'dash --level <n>' to start on a level.")
	return nil
}
