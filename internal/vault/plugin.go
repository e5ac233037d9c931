package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PluginConfig mirrors the obsidian-git plugin's data.json. Fields the
// plugin defaults sensibly are fixed here; only the backup interval and
// commit message vary per vault.
type PluginConfig struct {
	CommitMessage                  string `json:"commitMessage"`
	AutoBackupInterval             int    `json:"autoBackupInterval"`
	AutoPush                       bool   `json:"autoPush"`
	AutoPull                       bool   `json:"autoPull"`
	PullBeforePush                 bool   `json:"pullBeforePush"`
	DisablePush                    bool   `json:"disablePush"`
	DisablePopups                  bool   `json:"disablePopups"`
	ShowStatusBar                  bool   `json:"showStatusBar"`
	UpdateSubmodules               bool   `json:"updateSubmodules"`
	SyncMethod                     string `json:"syncMethod"`
	CustomMessageOnAutoBackup      bool   `json:"customMessageOnAutoBackup"`
	AutoBackupAfterFileChange      bool   `json:"autoBackupAfterFileChange"`
	TreeStructure                  bool   `json:"treeStructure"`
	RefreshSourceControl           bool   `json:"refreshSourceControl"`
	BasePath                       string `json:"basePath"`
	DifferentIntervalCommitAndPush bool   `json:"differentIntervalCommitAndPush"`
	ChangedFilesInStatusBar        bool   `json:"changedFilesInStatusBar"`
	ShowedMobileNotice             bool   `json:"showedMobileNotice"`
	RefreshSourceControlTimer      int    `json:"refreshSourceControlTimer"`
	ShowBranchStatusBar            bool   `json:"showBranchStatusBar"`
	SetLastSaveToLastCommit        bool   `json:"setLastSaveToLastCommit"`
	SubmoduleRecurseCheckout       bool   `json:"submoduleRecurseCheckout"`
	GitDir                         string `json:"gitDir"`
}

// DefaultCommitMessageTemplate is the plugin's commit message; {{date}}
// is expanded by the plugin at backup time.
const DefaultCommitMessageTemplate = "vault backup: {{date}}"

// DefaultBackupInterval is the auto-backup cadence in minutes.
const DefaultBackupInterval = 10

func defaultPluginConfig() PluginConfig {
	return PluginConfig{
		CommitMessage:             DefaultCommitMessageTemplate,
		AutoBackupInterval:        DefaultBackupInterval,
		AutoPush:                  true,
		AutoPull:                  true,
		PullBeforePush:            true,
		ShowStatusBar:             true,
		SyncMethod:                "merge",
		RefreshSourceControl:      true,
		ShowedMobileNotice:        true,
		RefreshSourceControlTimer: 7000,
		ShowBranchStatusBar:       true,
	}
}

type pluginManifest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	MinAppVersion string `json:"minAppVersion"`
	Description   string `json:"description"`
	Author        string `json:"author"`
	AuthorURL     string `json:"authorUrl"`
	IsDesktopOnly bool   `json:"isDesktopOnly"`
}

// ConfigurePlugin writes the obsidian-git plugin configuration into the
// vault, enabling auto-backup at the given interval with the given
// commit message template. Zero values select the defaults.
func ConfigurePlugin(vaultPath string, interval int, commitMessage string) error {
	if err := Validate(vaultPath); err != nil {
		return err
	}
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	if commitMessage == "" {
		commitMessage = DefaultCommitMessageTemplate
	}

	pluginDir := filepath.Join(ExpandPath(vaultPath), ".obsidian", "plugins", "obsidian-git")
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		return fmt.Errorf("failed to create plugin directory %s: %w", pluginDir, err)
	}

	config := defaultPluginConfig()
	config.AutoBackupInterval = interval
	config.CommitMessage = commitMessage

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plugin configuration: %w", err)
	}
	configPath := filepath.Join(pluginDir, "data.json")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plugin configuration %s: %w", configPath, err)
	}

	// The manifest only matters for plugin recognition; failing to
	// write it is not fatal.
	manifestPath := filepath.Join(pluginDir, "manifest.json")
	if _, err := os.Stat(manifestPath); err != nil {
		manifest := pluginManifest{
			ID:            "obsidian-git",
			Name:          "Obsidian Git",
			Version:       "2.24.1",
			MinAppVersion: "0.12.0",
			Description:   "Backup your vault with git.",
			Author:        "Vinzent03",
			AuthorURL:     "https://github.com/Vinzent03",
		}
		if data, err := json.MarshalIndent(manifest, "", "  "); err == nil {
			os.WriteFile(manifestPath, data, 0o644)
		}
	}
	return nil
}
