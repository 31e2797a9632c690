package main

import (
	"context"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newWatchCmd creates the "salient watch" subcommand: a live view that
// re-ranks the feed file whenever it changes on disk.
func newWatchCmd() *cobra.Command {
	var (
		threshold float64
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Live-rank a feed file as it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := defaultProfileStore()
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			defer func() { _ = store.Close() }()

			cfg, err := loadConfigFromDefaultPath()
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Threshold
			}
			if all {
				threshold = math.Inf(-1)
			}

			ranker, _, err := newRankerFromConfig(ctx, cfg, store)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}

			model := newWatchModel(args[0], threshold, ranker)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum relevance score to include (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "include every post regardless of score")

	return cmd
}
