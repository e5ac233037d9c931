// Package config loads the ogb configuration from
// ~/.config/obsidian-git-bridge/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SyncConfig holds sync-related configuration
type SyncConfig struct {
	Strategy       string `toml:"strategy"`        // "rebase" or "merge"
	Remote         string `toml:"remote"`          // remote name, default "origin"
	IntervalMin    int    `toml:"interval_min"`    // plugin auto-backup cadence
	CommitTemplate string `toml:"commit_template"` // plugin commit message template
}

// VPSConfig holds server-side generation defaults
type VPSConfig struct {
	VaultDir    string `toml:"vault_dir"`  // base directory for vaults on the server
	ScriptDir   string `toml:"script_dir"` // where sync scripts are installed
	IntervalMin int    `toml:"interval_min"`
}

// Config holds the ogb configuration
type Config struct {
	VaultPath string     `toml:"vault_path"` // default vault; empty means auto-detect
	Auth      string     `toml:"auth"`       // "ssh" or "https"
	Sync      SyncConfig `toml:"sync"`
	VPS       VPSConfig  `toml:"vps"`
}

// Rebase reports whether pulls should rebase instead of merge.
func (c *Config) Rebase() bool {
	return c.Sync.Strategy != "merge"
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Auth: "ssh",
		Sync: SyncConfig{
			Strategy:    "rebase",
			Remote:      "origin",
			IntervalMin: 10,
		},
		VPS: VPSConfig{
			IntervalMin: 5,
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "obsidian-git-bridge", "config.toml"), nil
}

// Load reads config from ~/.config/obsidian-git-bridge/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.VaultPath, "vault_path"); err != nil {
		return Default(), err
	}
	if cfg.VaultPath != "" {
		expanded, err := expandPath(cfg.VaultPath)
		if err != nil {
			return Default(), fmt.Errorf("expand vault_path: %w", err)
		}
		cfg.VaultPath = expanded
	}

	if cfg.Auth != "ssh" && cfg.Auth != "https" {
		return Default(), fmt.Errorf("invalid auth %q: must be \"ssh\" or \"https\"", cfg.Auth)
	}
	if cfg.Sync.Strategy != "rebase" && cfg.Sync.Strategy != "merge" {
		return Default(), fmt.Errorf("invalid sync.strategy %q: must be \"rebase\" or \"merge\"", cfg.Sync.Strategy)
	}
	if cfg.Sync.Remote == "" {
		cfg.Sync.Remote = "origin"
	}
	if cfg.Sync.IntervalMin < 0 {
		return Default(), fmt.Errorf("invalid sync.interval_min %d: must not be negative", cfg.Sync.IntervalMin)
	}
	if cfg.VPS.IntervalMin != 0 && (cfg.VPS.IntervalMin < 1 || cfg.VPS.IntervalMin > 60) {
		return Default(), fmt.Errorf("invalid vps.interval_min %d: must be between 1 and 60", cfg.VPS.IntervalMin)
	}
	return cfg, nil
}
