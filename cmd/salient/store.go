package main

import (
	"context"
	"fmt"

	"salient/pkg/attention"
	"salient/pkg/profile"
)

// defaultProfileStore opens (or creates) the profile store at the resolved
// default path. CLI commands share one database so interests added in one
// invocation shape the ranking in the next.
func defaultProfileStore() (*profile.Store, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	store, err := profile.Open(paths.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	return store, nil
}

// loadConfigFromDefaultPath reads the config at the resolved default path.
func loadConfigFromDefaultPath() (Config, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return Config{}, fmt.Errorf("resolve paths: %w", err)
	}
	return LoadConfig(paths.ConfigPath)
}

// newRankerFromConfig builds a seeded ranker from the config and applies the
// stored interest texts. With no stored interests the query vector stays at
// its random initialization, matching a profile that has not been set yet.
// Returns the ranker and the number of interests applied.
func newRankerFromConfig(ctx context.Context, cfg Config, store *profile.Store) (*attention.Ranker, int, error) {
	ranker, err := attention.New(cfg.VocabSize, cfg.EmbedDim, attention.WithSeed(cfg.Seed))
	if err != nil {
		return nil, 0, fmt.Errorf("build ranker: %w", err)
	}

	texts, err := store.InterestTexts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load interests: %w", err)
	}
	if len(texts) == 0 {
		return ranker, 0, nil
	}

	if err := ranker.UpdateInterests(texts); err != nil {
		return nil, 0, fmt.Errorf("apply interests: %w", err)
	}
	return ranker, len(texts), nil
}
