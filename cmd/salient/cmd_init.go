package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newInitCmd creates the "salient init" subcommand. It writes the default
// config.toml so the ranking parameters are visible and editable.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Long:  "Create ~/.salient/config.toml with the default vocabulary size,\nembedding dimension, seed, and threshold. Existing config is left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := ResolvePaths()
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			if _, err := os.Stat(paths.ConfigPath); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "config already exists at %s\n", paths.ConfigPath)
				return nil
			}

			if err := DefaultConfig().Write(paths.ConfigPath); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", paths.ConfigPath)
			return nil
		},
	}
}
