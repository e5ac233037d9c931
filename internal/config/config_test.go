package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Auth != "ssh" {
		t.Errorf("expected auth %q, got %q", "ssh", cfg.Auth)
	}
	if cfg.Sync.Strategy != "rebase" {
		t.Errorf("expected sync.strategy %q, got %q", "rebase", cfg.Sync.Strategy)
	}
	if cfg.Sync.Remote != "origin" {
		t.Errorf("expected sync.remote %q, got %q", "origin", cfg.Sync.Remote)
	}
	if !cfg.Rebase() {
		t.Error("default config should rebase")
	}
}

func TestLoadNonexistent(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Auth != "ssh" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
vault_path = "~/Obsidian/Main"
auth = "https"

[sync]
strategy = "merge"
remote = "backup"
interval_min = 15
commit_template = "backup: {{date}}"

[vps]
vault_dir = "$HOME/vaults"
interval_min = 10
`)
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if cfg.VaultPath != filepath.Join(home, "Obsidian", "Main") {
		t.Errorf("vault_path not expanded: %q", cfg.VaultPath)
	}
	if cfg.Auth != "https" {
		t.Errorf("auth = %q", cfg.Auth)
	}
	if cfg.Sync.Strategy != "merge" || cfg.Rebase() {
		t.Errorf("sync.strategy = %q, Rebase() = %v", cfg.Sync.Strategy, cfg.Rebase())
	}
	if cfg.Sync.Remote != "backup" {
		t.Errorf("sync.remote = %q", cfg.Sync.Remote)
	}
	if cfg.Sync.IntervalMin != 15 {
		t.Errorf("sync.interval_min = %d", cfg.Sync.IntervalMin)
	}
	if cfg.VPS.VaultDir != "$HOME/vaults" || cfg.VPS.IntervalMin != 10 {
		t.Errorf("vps = %+v", cfg.VPS)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `vault_path = "/data/vault"`)
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.VaultPath != "/data/vault" {
		t.Errorf("vault_path = %q", cfg.VaultPath)
	}
	if cfg.Auth != "ssh" || cfg.Sync.Strategy != "rebase" || cfg.Sync.Remote != "origin" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad toml", "vault_path = [", "parse"},
		{"relative vault path", `vault_path = "notes"`, "must be absolute"},
		{"bad auth", `auth = "token"`, "invalid auth"},
		{"bad strategy", "[sync]\nstrategy = \"theirs\"", "invalid sync.strategy"},
		{"negative interval", "[sync]\ninterval_min = -1", "interval_min"},
		{"vps interval out of range", "[vps]\ninterval_min = 90", "between 1 and 60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not contain %q", err, tt.errPart)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("", "vault_path"); err != nil {
		t.Errorf("empty path rejected: %v", err)
	}
	if err := ValidatePath("~/Obsidian", "vault_path"); err != nil {
		t.Errorf("~ path rejected: %v", err)
	}
	if err := ValidatePath("/abs", "vault_path"); err != nil {
		t.Errorf("absolute path rejected: %v", err)
	}
	if err := ValidatePath("relative", "vault_path"); err == nil {
		t.Error("relative path accepted")
	}
}
