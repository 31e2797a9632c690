package main

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"salient/pkg/profile"
)

// newRankCmdWithStore creates the "salient rank" subcommand. A nil store is
// resolved lazily from the default profile database at execution time so
// tests can inject their own.
func newRankCmdWithStore(store *profile.Store) *cobra.Command {
	var (
		threshold float64
		all       bool
		noSave    bool
	)

	cmd := &cobra.Command{
		Use:   "rank <file>",
		Short: "Rank posts by interest relevance",
		Long: "Score every post in the file against the stored interest profile and\n" +
			"print them sorted by relevance, with per-word attention weights.\n" +
			"Plain files hold one post per line; .yaml/.yml files are parsed as a feed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s := store
			if s == nil {
				var err error
				if s, err = defaultProfileStore(); err != nil {
					return fmt.Errorf("rank: %w", err)
				}
				defer func() { _ = s.Close() }()
			}

			cfg, err := loadConfigFromDefaultPath()
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Threshold
			}
			if all {
				threshold = math.Inf(-1)
			}

			posts, err := readPostsFile(args[0])
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}

			ranker, applied, err := newRankerFromConfig(ctx, cfg, s)
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}
			if applied == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: no interests stored; ranking against a random profile (see `salient interests add`)")
			}

			ranked, err := ranker.RankPosts(posts, threshold)
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatRanked(ranked, DefaultTheme(), stdoutIsTTY()))

			if !noSave {
				runID, err := s.RecordRun(ctx, threshold, len(posts), ranked)
				if err != nil {
					return fmt.Errorf("rank: record run: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run %s (%d/%d posts kept)\n", runID, len(ranked), len(posts))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum relevance score to include (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "include every post regardless of score")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record this run in history")

	return cmd
}
