package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// salientDir is the default state directory under the user's home.
const salientDir = ".salient"

// Paths holds all resolved salient state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	Home       string // ~/.salient or SALIENT_HOME
	ConfigPath string // config.toml or SALIENT_CONFIG
	DBPath     string // profile.db or SALIENT_DB_PATH
}

// ResolvePaths returns all salient paths, respecting env var overrides.
// Environment variables:
//   - SALIENT_HOME: base directory for all salient state (default: ~/.salient)
//   - SALIENT_CONFIG: config file (default: $SALIENT_HOME/config.toml)
//   - SALIENT_DB_PATH: profile database (default: $SALIENT_HOME/profile.db)
func ResolvePaths() (*Paths, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}

	return &Paths{
		Home:       home,
		ConfigPath: resolvePathWithEnv("SALIENT_CONFIG", home, "config.toml"),
		DBPath:     resolvePathWithEnv("SALIENT_DB_PATH", home, "profile.db"),
	}, nil
}

// resolveHome returns the salient home directory from SALIENT_HOME or ~/.salient.
func resolveHome() (string, error) {
	if v := os.Getenv("SALIENT_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, salientDir), nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
