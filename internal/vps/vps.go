// Package vps generates the server-side half of the sync setup: a bash
// sync script, the cron entry that drives it, and copy-paste setup
// instructions for a headless mirror.
package vps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const (
	// DefaultVaultDir is where the mirror keeps cloned vaults.
	DefaultVaultDir = "$HOME/obsidian-vaults"
	// DefaultScriptDir is where the sync script lands.
	DefaultScriptDir = "$HOME/.local/bin"
	// DefaultSyncInterval is the cron cadence in minutes.
	DefaultSyncInterval = 5
)

var (
	ErrMissingVaultName = errors.New("vault name is required")
	ErrMissingRepoURL   = errors.New("repository URL is required")
)

var syncScriptTmpl = template.Must(template.New("sync").Parse(`#!/bin/bash
# =============================================================================
# Obsidian Git Bridge - VPS Sync Script
# Vault: {{.VaultName}}
# Generated: {{.Timestamp}}
# =============================================================================

set -euo pipefail

# Configuration
VAULT_NAME="{{.VaultName}}"
REPO_URL="{{.RepoURL}}"
VAULT_BASE_DIR="{{.VaultDir}}"
VAULT_DIR="$VAULT_BASE_DIR/$VAULT_NAME"
LOG_FILE="$HOME/.obsidian-git-bridge/logs/${VAULT_NAME}-sync.log"

# Ensure log directory exists
mkdir -p "$(dirname "$LOG_FILE")"

# Logging function
log() {
    echo "[$(date '+%Y-%m-%d %H:%M:%S')] $*" | tee -a "$LOG_FILE"
}

# =============================================================================
# MAIN SYNC LOGIC
# =============================================================================

log "Starting sync for vault: $VAULT_NAME"

# Create vault directory if it doesn't exist
if [ ! -d "$VAULT_DIR" ]; then
    log "Vault directory not found. Cloning repository..."
    mkdir -p "$VAULT_BASE_DIR"
    if ! git clone "$REPO_URL" "$VAULT_DIR"; then
        log "ERROR: Failed to clone repository"
        exit 1
    fi
    log "Repository cloned successfully"
else
    # Vault exists, pull latest changes
    cd "$VAULT_DIR"

    # Check if it's a git repository
    if [ ! -d ".git" ]; then
        log "ERROR: Directory exists but is not a git repository"
        exit 1
    fi

    # Configure git (if not already configured)
    if [ -z "$(git config --get user.email 2>/dev/null || true)" ]; then
        git config user.email "vps-sync@obsidian-git-bridge.local"
        git config user.name "VPS Sync Bot"
    fi

    # Pull latest changes
    log "Pulling latest changes..."
    if ! git pull origin "$(git branch --show-current)" --no-rebase; then
        log "WARNING: Pull failed or has conflicts, attempting merge"
        if ! git diff --name-only --diff-filter=U | head -1 | grep -q .; then
            log "No conflicts detected, continuing..."
        else
            log "WARNING: Merge conflicts detected, manual resolution may be required"
        fi
    fi

    # Check for local changes
    if [ -n "$(git status --porcelain)" ]; then
        log "Local changes detected, committing..."
        git add -A
        git commit -m "vps-sync: auto-commit $(date '+%Y-%m-%d %H:%M:%S')" || true
        git push origin "$(git branch --show-current)" || log "WARNING: Push failed"
    else
        log "No local changes to commit"
    fi
fi

log "Sync completed successfully"
exit 0
`))

type scriptData struct {
	VaultName string
	RepoURL   string
	VaultDir  string
	Timestamp string
}

// GenerateSyncScript renders the bash sync script for a vault. An empty
// vaultDir selects [DefaultVaultDir].
func GenerateSyncScript(vaultName, repoURL, vaultDir string) (string, error) {
	if vaultName == "" {
		return "", ErrMissingVaultName
	}
	if repoURL == "" {
		return "", ErrMissingRepoURL
	}
	if vaultDir == "" {
		vaultDir = DefaultVaultDir
	}

	var sb strings.Builder
	err := syncScriptTmpl.Execute(&sb, scriptData{
		VaultName: vaultName,
		RepoURL:   repoURL,
		VaultDir:  vaultDir,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render sync script: %w", err)
	}
	return sb.String(), nil
}

// WriteSyncScript renders the sync script and writes it executable at
// outputPath, creating parent directories as needed.
func WriteSyncScript(vaultName, repoURL, outputPath, vaultDir string) error {
	content, err := GenerateSyncScript(vaultName, repoURL, vaultDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create script directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write script to %s: %w", outputPath, err)
	}
	return nil
}

// GenerateCronEntry builds a crontab line running scriptPath every
// intervalMinutes, with output appended to the sync log. The interval
// must be between 1 and 60.
func GenerateCronEntry(scriptPath string, intervalMinutes int) (string, error) {
	if scriptPath == "" {
		return "", errors.New("script path is required")
	}
	if intervalMinutes < 1 || intervalMinutes > 60 {
		return "", fmt.Errorf("interval must be between 1 and 60 minutes, got %d", intervalMinutes)
	}

	var minuteExpr string
	if 60%intervalMinutes == 0 {
		minuteExpr = "*/" + strconv.Itoa(intervalMinutes)
	} else {
		var minutes []string
		for m := 0; m < 60; m += intervalMinutes {
			minutes = append(minutes, strconv.Itoa(m))
		}
		minuteExpr = strings.Join(minutes, ",")
	}

	logFile := fmt.Sprintf("$HOME/.obsidian-git-bridge/logs/cron-$(basename '%s' .sh).log", scriptPath)
	return fmt.Sprintf("%s * * * * %s >> %s 2>&1", minuteExpr, scriptPath, logFile), nil
}

// ScriptName derives the sync script file name from the vault name.
func ScriptName(vaultName string) string {
	slug := strings.ToLower(strings.ReplaceAll(vaultName, " ", "-"))
	return "obsidian-sync-" + slug + ".sh"
}

// GenerateSetupInstructions renders the full copy-paste setup guide for
// a headless mirror. Zero values select the defaults.
func GenerateSetupInstructions(vaultName, repoURL, vaultDir string, syncInterval int, scriptDir string) (string, error) {
	if vaultName == "" {
		return "", ErrMissingVaultName
	}
	if repoURL == "" {
		return "", ErrMissingRepoURL
	}
	if vaultDir == "" {
		vaultDir = DefaultVaultDir
	}
	if scriptDir == "" {
		scriptDir = DefaultScriptDir
	}
	if syncInterval <= 0 {
		syncInterval = DefaultSyncInterval
	}

	scriptPath := scriptDir + "/" + ScriptName(vaultName)
	script, err := GenerateSyncScript(vaultName, repoURL, vaultDir)
	if err != nil {
		return "", err
	}
	cronEntry, err := GenerateCronEntry(scriptPath, syncInterval)
	if err != nil {
		return "", err
	}

	rule := strings.Repeat("=", 79)
	var sb strings.Builder
	section := func(title string) {
		fmt.Fprintf(&sb, "%s\n%s\n%s\n\n", rule, title, rule)
	}

	section("OBSIDIAN GIT BRIDGE - VPS SETUP GUIDE")
	fmt.Fprintf(&sb, "Vault Name: %s\nRepository: %s\nGenerated: %s\n\n",
		vaultName, repoURL, time.Now().Format("2006-01-02 15:04:05"))

	section("STEP 1: CREATE SYNC SCRIPT")
	fmt.Fprintf(&sb, "Create the sync script directory:\n\n---\nmkdir -p %s\nmkdir -p $HOME/.obsidian-git-bridge/logs\n---\n\n", scriptDir)
	fmt.Fprintf(&sb, "Create the sync script:\n\n---\ncat > %s << 'SCRIPT_EOF'\n%s\nSCRIPT_EOF\n---\n\n", scriptPath, script)
	fmt.Fprintf(&sb, "Make the script executable:\n\n---\nchmod +x %s\n---\n\n", scriptPath)

	section("STEP 2: TEST THE SYNC SCRIPT")
	fmt.Fprintf(&sb, "Run the script manually to verify it works:\n\n---\n%s\n---\n\n", scriptPath)
	fmt.Fprintf(&sb, "Check the log output:\n\n---\ntail -f $HOME/.obsidian-git-bridge/logs/%s-sync.log\n---\n\n", vaultName)

	section("STEP 3: SET UP AUTOMATED SYNC (CRON)")
	fmt.Fprintf(&sb, "Add the following line to your crontab:\n\n---\ncrontab -e\n---\n\n")
	fmt.Fprintf(&sb, "Paste this line (syncs every %d minutes):\n\n---\n# Obsidian Git Bridge - %s\n%s\n---\n\n", syncInterval, vaultName, cronEntry)
	fmt.Fprintf(&sb, "To verify the cron entry was added:\n\n---\ncrontab -l | grep obsidian\n---\n\n")

	section("STEP 4: VERIFY SETUP")
	fmt.Fprintf(&sb, "1. Check that the vault was cloned:\n   ls -la %s/%s/\n\n", vaultDir, vaultName)
	fmt.Fprintf(&sb, "2. Check git status:\n   cd %s/%s && git status\n\n", vaultDir, vaultName)
	fmt.Fprintf(&sb, "3. Monitor logs:\n   tail -f $HOME/.obsidian-git-bridge/logs/%s-sync.log\n\n", vaultName)
	fmt.Fprintf(&sb, "4. Verify cron is running:\n   ps aux | grep cron\n\n")

	section("TROUBLESHOOTING")
	fmt.Fprintf(&sb, "Issue: \"Permission denied\" when running script\n  Fix: chmod +x %s\n\n", scriptPath)
	sb.WriteString("Issue: \"git: command not found\"\n  Fix: sudo apt-get install git  (or equivalent for your distro)\n\n")
	sb.WriteString("Issue: \"Could not resolve host\"\n  Fix: Check network connectivity and repository URL\n\n")
	fmt.Fprintf(&sb, "Issue: Sync conflicts\n  Fix: Manually resolve in %s/%s/\n\n", vaultDir, vaultName)

	section("FILES CREATED")
	fmt.Fprintf(&sb, "Sync Script:    %s\nVault Location: %s/%s/\nLog Files:      $HOME/.obsidian-git-bridge/logs/\nCron Entry:     %s\n\n", scriptPath, vaultDir, vaultName, cronEntry)

	section("SETUP COMPLETE")
	return sb.String(), nil
}

// VaultSpec names one vault for the docker-compose rendering.
type VaultSpec struct {
	Name    string
	RepoURL string
}

// GenerateDockerCompose renders a docker-compose.yml that syncs the
// given vaults in a loop inside an alpine/git container. The interval
// is in seconds.
func GenerateDockerCompose(vaults []VaultSpec, syncIntervalSeconds int) (string, error) {
	if len(vaults) == 0 {
		return "", errors.New("at least one vault is required")
	}
	if syncIntervalSeconds <= 0 {
		syncIntervalSeconds = 300
	}

	var env strings.Builder
	for _, v := range vaults {
		if v.Name == "" {
			return "", ErrMissingVaultName
		}
		if v.RepoURL == "" {
			return "", ErrMissingRepoURL
		}
		fmt.Fprintf(&env, "      - VAULT_%s=%s\n", strings.ToUpper(v.Name), v.RepoURL)
	}

	compose := fmt.Sprintf(`version: "3.8"

services:
  obsidian-git-bridge:
    image: alpine/git:latest
    container_name: obsidian-sync
    environment:
      - SYNC_INTERVAL=%d
%s    volumes:
      - ./vaults:/vaults
      - ./scripts:/scripts:ro
    command: |
      sh -c "
        apk add --no-cache bash curl &&
        while true; do
          for vault in /vaults/*/; do
            cd \"$$vault\" && git pull && git add -A &&
            git commit -m 'container sync' || true && git push || true
          done
          sleep $$SYNC_INTERVAL
        done
      "
    restart: unless-stopped
`, syncIntervalSeconds, env.String())
	return compose, nil
}
