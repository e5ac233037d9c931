package main

import (
	"fmt"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/prompt"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
)

// resolveVault picks the vault to operate on: the --vault flag wins,
// then the configured default, then auto-detection. A non-empty flag
// value may be a partial name, resolved fuzzily against the well-known
// locations.
func resolveVault() (string, error) {
	if vaultFlag != "" {
		return vault.Resolve(vaultFlag)
	}
	if cfg != nil && cfg.VaultPath != "" {
		if err := vault.Validate(cfg.VaultPath); err != nil {
			return "", fmt.Errorf("configured vault_path: %w", err)
		}
		return vault.ExpandPath(cfg.VaultPath), nil
	}
	return vault.Find()
}

// resolveVaultInteractive behaves like resolveVault but, when nothing
// is configured and the session is a terminal, lets the user pick among
// the discovered vaults or type a path by hand.
func resolveVaultInteractive() (string, error) {
	path, err := resolveVault()
	if err == nil {
		return path, nil
	}
	if !styles.Interactive() {
		return "", err
	}

	if known := vault.Discover(); len(known) > 1 {
		result, perr := prompt.Select("Select a vault:", known)
		if perr == nil && !result.Cancelled {
			return result.Value, nil
		}
	}

	result, perr := prompt.TextInput("No vault found. Enter the vault path:", "~/Obsidian/MyVault")
	if perr != nil || result.Cancelled || result.Value == "" {
		return "", err
	}
	path = vault.ExpandPath(result.Value)
	if verr := vault.Validate(path); verr != nil {
		return "", verr
	}
	return path, nil
}
