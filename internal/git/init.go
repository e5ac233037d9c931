package git

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Default identity used when the repository has none configured. Committing
// is impossible without one, and a sync tool should not stop for it.
const (
	defaultUserName  = "Obsidian Git Bridge"
	defaultUserEmail = "vault@obsidian.git"
)

// DefaultInitialCommitMessage is used when no message is supplied to
// [InitialCommit].
const DefaultInitialCommitMessage = "Initial commit: Obsidian vault setup"

// InitResult reports the outcome of [InitRepo].
type InitResult struct {
	Path           string
	WasAlreadyInit bool
}

// InitRepo initializes a git repository at path, creating the directory if
// needed. Calling it on an existing repository is a reported no-op.
func InitRepo(ctx context.Context, path string) (InitResult, error) {
	if err := CheckGit(); err != nil {
		return InitResult{}, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return InitResult{}, fmt.Errorf("create vault directory: %w", err)
	}
	if IsRepo(ctx, path) {
		return InitResult{Path: path, WasAlreadyInit: true}, nil
	}
	// -b main pins the branch name so generated sync scripts don't depend
	// on the host's init.defaultBranch.
	if err := runGit(ctx, "", localTimeout, "init", "-b", "main", path); err != nil {
		return InitResult{}, fmt.Errorf("git init: %w", err)
	}
	return InitResult{Path: path}, nil
}

// ConfigValue reads a git config key as seen from the repository at
// path. A missing key yields the empty string.
func ConfigValue(ctx context.Context, path, key string) string {
	out, err := outputGit(ctx, path, quickTimeout, "config", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// EnsureIdentity sets a repo-local default user.name/user.email when the
// effective git configuration has none.
func EnsureIdentity(ctx context.Context, path string) error {
	for key, value := range map[string]string{
		"user.name":  defaultUserName,
		"user.email": defaultUserEmail,
	} {
		if ConfigValue(ctx, path, key) != "" {
			continue
		}
		if err := runGit(ctx, path, quickTimeout, "config", key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// CommitResult reports the outcome of [InitialCommit].
type CommitResult struct {
	Committed bool
	SHA       string
	Message   string
	Pushed    bool
}

// InitialCommit stages everything and creates a commit, then pushes if
// requested and an origin remote exists. A clean tree reports
// Committed=false without error.
func InitialCommit(ctx context.Context, path, message string, push bool) (CommitResult, error) {
	if err := CheckGit(); err != nil {
		return CommitResult{}, err
	}
	if !IsRepo(ctx, path) {
		return CommitResult{}, notARepo(path)
	}
	if message == "" {
		message = DefaultInitialCommitMessage
	}

	if isWorkTreeClean(ctx, path) {
		return CommitResult{}, nil
	}

	if err := EnsureIdentity(ctx, path); err != nil {
		return CommitResult{}, err
	}
	if err := runGit(ctx, path, localTimeout, "add", "-A"); err != nil {
		return CommitResult{}, fmt.Errorf("stage files: %w", err)
	}
	if err := runGit(ctx, path, localTimeout, "commit", "-m", message); err != nil {
		return CommitResult{}, fmt.Errorf("commit: %w", err)
	}

	result := CommitResult{Committed: true, Message: message}
	if out, err := outputGit(ctx, path, quickTimeout, "rev-parse", "HEAD"); err == nil {
		result.SHA = strings.TrimSpace(string(out))
	}

	if push && hasRemote(ctx, path, "origin") {
		if err := runGit(ctx, path, networkTimeout, "push", "-u", "origin", "HEAD"); err != nil {
			return result, pushError(err)
		}
		result.Pushed = true
	}
	return result, nil
}

// isWorkTreeClean reports whether `status --porcelain` is empty. An error
// counts as clean; callers that care about errors use GetStatus.
func isWorkTreeClean(ctx context.Context, path string) bool {
	out, err := outputGit(ctx, path, quickTimeout, "status", "--porcelain")
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(out)) == ""
}
