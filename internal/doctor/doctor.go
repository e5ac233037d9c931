// Package doctor diagnoses common vault sync problems and fixes the
// ones it can.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
)

// Severity grades an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// FixAction names the remediation Run applies when fixing is enabled.
type FixAction string

const (
	FixNone      FixAction = ""
	FixInit      FixAction = "init"
	FixGitignore FixAction = "gitignore"
	FixIdentity  FixAction = "identity"
)

// Issue is a single diagnostic finding.
type Issue struct {
	Severity Severity
	Message  string
	Fixable  bool
	Fix      FixAction
	Fixed    bool
	Details  []string
}

// largeFileExtensions flags binaries that tend to bloat a notes repo.
var largeFileExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
	".pdf": true,
	".zip": true,
	".dmg": true,
	".iso": true,
}

// Run executes the full diagnostic battery against the vault. With fix
// set, fixable issues are remediated in place and marked Fixed; a
// failed fix leaves the issue reported but unfixed.
func Run(ctx context.Context, vaultPath string, fix bool) []Issue {
	vaultPath = vault.ExpandPath(vaultPath)

	var issues []Issue
	issues = append(issues, checkRepoInitialized(ctx, vaultPath)...)
	issues = append(issues, checkGitignore(vaultPath)...)
	issues = append(issues, checkRemote(ctx, vaultPath)...)
	issues = append(issues, checkIdentity(ctx, vaultPath)...)
	issues = append(issues, checkSSHKey()...)
	issues = append(issues, checkLargeFiles(vaultPath)...)

	if fix {
		for i := range issues {
			if issues[i].Fixable {
				applyFix(ctx, vaultPath, &issues[i])
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is error-grade and unfixed.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError && !issue.Fixed {
			return true
		}
	}
	return false
}

func checkRepoInitialized(ctx context.Context, vaultPath string) []Issue {
	if git.IsRepo(ctx, vaultPath) {
		return nil
	}
	return []Issue{{
		Severity: SeverityError,
		Message:  "Git repository not initialized",
		Fixable:  true,
		Fix:      FixInit,
	}}
}

func checkGitignore(vaultPath string) []Issue {
	if _, err := os.Stat(filepath.Join(vaultPath, ".gitignore")); err == nil {
		return nil
	}
	return []Issue{{
		Severity: SeverityWarning,
		Message:  ".gitignore not found (Obsidian workspace files may be tracked)",
		Fixable:  true,
		Fix:      FixGitignore,
	}}
}

func checkRemote(ctx context.Context, vaultPath string) []Issue {
	if !git.IsRepo(ctx, vaultPath) {
		return nil
	}
	remotes, err := git.ListRemotes(ctx, vaultPath)
	if err != nil {
		return []Issue{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Git error: %v", err),
		}}
	}
	if len(remotes) > 0 {
		return nil
	}
	return []Issue{{
		Severity: SeverityWarning,
		Message:  "No remote repository configured (run 'ogb setup-remote')",
	}}
}

func checkIdentity(ctx context.Context, vaultPath string) []Issue {
	if !git.IsRepo(ctx, vaultPath) {
		return nil
	}
	var issues []Issue
	for _, key := range []string{"user.name", "user.email"} {
		if git.ConfigValue(ctx, vaultPath, key) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Git %s not configured", key),
				Fixable:  true,
				Fix:      FixIdentity,
			})
		}
	}
	return issues
}

func checkSSHKey() []Issue {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(home, ".ssh", "id_*"))
	if err == nil && len(matches) > 0 {
		return nil
	}
	return []Issue{{
		Severity: SeverityInfo,
		Message:  "No SSH keys found (required for SSH authentication)",
	}}
}

func checkLargeFiles(vaultPath string) []Issue {
	var found []string
	filepath.WalkDir(vaultPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if largeFileExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			rel, relErr := filepath.Rel(vaultPath, path)
			if relErr != nil {
				rel = path
			}
			found = append(found, rel)
		}
		return nil
	})
	if len(found) == 0 {
		return nil
	}
	details := found
	if len(details) > 5 {
		details = details[:5]
	}
	return []Issue{{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Found %d large file(s) that may not belong in Git", len(found)),
		Details:  details,
	}}
}

func applyFix(ctx context.Context, vaultPath string, issue *Issue) {
	switch issue.Fix {
	case FixInit:
		if _, err := git.InitRepo(ctx, vaultPath); err == nil {
			issue.Fixed = true
		}
	case FixGitignore:
		if _, err := vault.ConfigureIgnore(vaultPath, nil, false); err == nil {
			issue.Fixed = true
		}
	case FixIdentity:
		if err := git.EnsureIdentity(ctx, vaultPath); err == nil {
			issue.Fixed = true
		}
	}
}
