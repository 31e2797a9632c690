package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"salient/pkg/profile"
)

// newScoreCmdWithStore creates the "salient score" subcommand wired to a
// profile.Store. A nil store is resolved lazily at execution time.
func newScoreCmdWithStore(store *profile.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "score <text>",
		Short: "Score a single text",
		Long:  "Score one text against the stored interest profile and show the\nper-word attention weights that produced the score.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			text := strings.Join(args, " ")

			s := store
			if s == nil {
				var err error
				if s, err = defaultProfileStore(); err != nil {
					return fmt.Errorf("score: %w", err)
				}
				defer func() { _ = s.Close() }()
			}

			cfg, err := loadConfigFromDefaultPath()
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			ranker, _, err := newRankerFromConfig(ctx, cfg, s)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			score, weights, err := ranker.ScoreContent(text)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			th := DefaultTheme()
			colored := stdoutIsTTY()
			fmt.Fprintf(cmd.OutOrStdout(), "%+.4f  %s\n", score, formatAttention(text, weights, th, colored))
			return nil
		},
	}
}
