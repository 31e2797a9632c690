package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"salient/pkg/profile"
)

// newHistoryCmdWithStore creates the "salient history" subcommand.
// Without arguments it lists recent runs; with a run ID it prints the
// stored results of that run in rank order.
func newHistoryCmdWithStore(store *profile.Store) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent ranking runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, closeStore, err := withStore(store)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			defer closeStore()

			if len(args) == 1 {
				return printRunResults(ctx, cmd, s, args[0])
			}

			runs, err := s.Runs(ctx, limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  threshold %+.2f  kept %d/%d\n",
					r.CreatedAt, r.ID, r.Threshold, r.KeptCount, r.PostCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list")
	return cmd
}

// printRunResults prints the stored results of one run.
func printRunResults(ctx context.Context, cmd *cobra.Command, s *profile.Store, runID string) error {
	results, err := s.Results(ctx, runID)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results for run %s.\n", runID)
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%+.3f] %s\n", r.Position, r.Score, r.Post)
	}
	return nil
}
