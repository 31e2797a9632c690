package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the ranking parameters read from config.toml.
// Seed pins the embedding table so scores are comparable across invocations;
// interests are re-embedded against the same table every run.
type Config struct {
	VocabSize int     `toml:"vocab_size"`
	EmbedDim  int     `toml:"embed_dim"`
	Seed      int64   `toml:"seed"`
	Threshold float64 `toml:"threshold"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		VocabSize: 5000,
		EmbedDim:  128,
		Seed:      42,
		Threshold: 0.0,
	}
}

// LoadConfig reads the config at path, filling unset keys with defaults.
// A missing file is not an error; it just yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from ResolvePaths
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Write serializes the config to path, creating the parent directory.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
