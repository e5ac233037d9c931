// Package vault locates and validates Obsidian vaults on disk.
//
// A vault is an ordinary directory that either carries a .obsidian
// configuration directory or contains markdown notes. The package also
// writes the vault-side artifacts the sync workflow needs: the
// .gitignore tuned for Obsidian's churn and the obsidian-git plugin
// configuration.
package vault
