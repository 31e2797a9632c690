package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"salient/pkg/profile"
)

// withStore resolves the store for a subcommand: the injected one for tests,
// or the default profile database. The returned func closes a lazily opened
// store and is a no-op for injected ones.
func withStore(store *profile.Store) (*profile.Store, func(), error) {
	if store != nil {
		return store, func() {}, nil
	}
	s, err := defaultProfileStore()
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}

// newInterestsCmdWithStore creates the "salient interests" command group.
func newInterestsCmdWithStore(store *profile.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interests",
		Short: "Manage the interest profile",
		Long:  "Add, list, remove, or clear the interest statements that define what\n\"relevant\" means. Interests are stored as text and re-embedded on every run.",
	}

	cmd.AddCommand(
		newInterestsAddCmd(store),
		newInterestsListCmd(store),
		newInterestsRemoveCmd(store),
		newInterestsClearCmd(store),
	)
	return cmd
}

func newInterestsAddCmd(store *profile.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add an interest statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("interests add: statement is empty")
			}

			s, closeStore, err := withStore(store)
			if err != nil {
				return fmt.Errorf("interests add: %w", err)
			}
			defer closeStore()

			id, err := s.AddInterest(context.Background(), text)
			if err != nil {
				return fmt.Errorf("interests add: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added interest %d: %s\n", id, text)
			return nil
		},
	}
}

func newInterestsListCmd(store *profile.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored interests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, closeStore, err := withStore(store)
			if err != nil {
				return fmt.Errorf("interests list: %w", err)
			}
			defer closeStore()

			interests, err := s.Interests(context.Background())
			if err != nil {
				return fmt.Errorf("interests list: %w", err)
			}
			if len(interests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No interests stored.")
				return nil
			}
			for _, in := range interests {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", in.ID, in.Text)
			}
			return nil
		},
	}
}

func newInterestsRemoveCmd(store *profile.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove one interest by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("interests rm: invalid id %q", args[0])
			}

			s, closeStore, err := withStore(store)
			if err != nil {
				return fmt.Errorf("interests rm: %w", err)
			}
			defer closeStore()

			if err := s.RemoveInterest(context.Background(), id); err != nil {
				return fmt.Errorf("interests rm: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed interest %d\n", id)
			return nil
		},
	}
}

func newInterestsClearCmd(store *profile.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored interest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, closeStore, err := withStore(store)
			if err != nil {
				return fmt.Errorf("interests clear: %w", err)
			}
			defer closeStore()

			if err := s.ClearInterests(context.Background()); err != nil {
				return fmt.Errorf("interests clear: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared interests")
			return nil
		},
	}
}
