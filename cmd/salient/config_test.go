package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("embed_dim = 64\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.EmbedDim != 64 {
		t.Errorf("EmbedDim = %d, want 64", cfg.EmbedDim)
	}
	if cfg.VocabSize != DefaultConfig().VocabSize {
		t.Errorf("VocabSize = %d, want default %d", cfg.VocabSize, DefaultConfig().VocabSize)
	}
	if cfg.Seed != DefaultConfig().Seed {
		t.Errorf("Seed = %d, want default %d", cfg.Seed, DefaultConfig().Seed)
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("vocab_size = = 5"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig on invalid TOML: want error")
	}
}

func TestConfig_WriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Config{VocabSize: 1000, EmbedDim: 32, Seed: 7, Threshold: 0.25}
	if err := want.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
