package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salient/internal/version"
)

// newRootCmd creates the root salient command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "salient",
		Short:         "Rank text by relevance to your interests",
		Long:          "salient scores and ranks free-form text against a stored interest profile\nusing attention over hashed word embeddings, with per-word weights for explanation.",
		Version:       fmt.Sprintf("salient %s", version.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newInitCmd(),
		newRankCmdWithStore(nil),
		newScoreCmdWithStore(nil),
		newInterestsCmdWithStore(nil),
		newHistoryCmdWithStore(nil),
		newWatchCmd(),
	)

	return cmd
}
