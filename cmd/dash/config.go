package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-dash/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Prints the default configuration YAML. Save it to
~/.dash/configs/dash.yaml or ./configs/dash.yaml to customize the game.

With --resolved, prints the configuration after loading --config and the
search path instead.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the loaded configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !flagResolved {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	_, err = out.Write(data)
	return err
}
