package git

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PullResult reports the outcome of [Pull].
type PullResult struct {
	Branch string
	Rebase bool
}

// Pull fetches from origin and integrates the tracking branch via rebase
// (default) or merge. It refuses to run over uncommitted tracked changes,
// requires a tracking branch, and on conflict aborts the integration so the
// tree is left exactly as it was before the call.
//
// Untracked files do not block the pull; they cannot collide with an
// integration and the subsequent commit stage handles them.
func Pull(ctx context.Context, path string, rebase bool) (PullResult, error) {
	if err := CheckGit(); err != nil {
		return PullResult{}, err
	}
	if !IsRepo(ctx, path) {
		return PullResult{}, notARepo(path)
	}

	if hasTrackedChanges(ctx, path) {
		return PullResult{}, fmt.Errorf("cannot pull with uncommitted changes: commit or stash your changes first")
	}

	branch, err := currentBranch(ctx, path)
	if err != nil {
		return PullResult{}, err
	}
	if branch == "" {
		return PullResult{}, fmt.Errorf("cannot pull in detached HEAD state: checkout a branch first")
	}

	if _, err := outputGit(ctx, path, quickTimeout, "rev-parse", "--abbrev-ref", "@{u}"); err != nil {
		return PullResult{}, fmt.Errorf("%w: set one with 'git branch --set-upstream-to=origin/%s'", ErrNoUpstream, branch)
	}

	if err := runGit(ctx, path, networkTimeout, "fetch", "origin"); err != nil {
		if isAuthFailure(err.Error()) {
			return PullResult{}, fmt.Errorf("%w during fetch: check your SSH keys or credentials", ErrAuthFailed)
		}
		return PullResult{}, fmt.Errorf("fetch failed: %w", err)
	}

	args := []string{"pull", "origin", branch}
	if rebase {
		args = append(args, "--rebase")
	} else {
		args = append(args, "--no-rebase")
	}
	if err := runGit(ctx, path, networkTimeout, args...); err != nil {
		switch {
		case isConflict(err.Error()):
			abortIntegration(ctx, path, rebase)
			return PullResult{}, fmt.Errorf("%w: resolve conflicts manually and re-run (%s)", ErrMergeConflict, firstLine(err.Error()))
		case isAuthFailure(err.Error()):
			return PullResult{}, fmt.Errorf("%w: check your SSH keys or credentials", ErrAuthFailed)
		default:
			return PullResult{}, fmt.Errorf("pull failed: %w", err)
		}
	}

	return PullResult{Branch: branch, Rebase: rebase}, nil
}

// PushResult reports the outcome of [Push].
type PushResult struct {
	Committed bool
	Message   string
}

// Push stages and commits any local changes (with a timestamped message when
// none is supplied), then pushes to origin. A clean tree produces no commit
// but the push is still attempted, flushing previously committed work.
func Push(ctx context.Context, path, message string, pushAll bool) (PushResult, error) {
	if err := CheckGit(); err != nil {
		return PushResult{}, err
	}
	if !IsRepo(ctx, path) {
		return PushResult{}, notARepo(path)
	}

	result := PushResult{}
	if !isWorkTreeClean(ctx, path) {
		if message == "" {
			message = fmt.Sprintf("Vault sync: %s", time.Now().Format("2006-01-02 15:04"))
		}
		if err := EnsureIdentity(ctx, path); err != nil {
			return PushResult{}, err
		}
		if err := runGit(ctx, path, localTimeout, "add", "-A"); err != nil {
			return PushResult{}, fmt.Errorf("stage files: %w", err)
		}
		if err := runGit(ctx, path, localTimeout, "commit", "-m", message); err != nil {
			return PushResult{}, fmt.Errorf("commit: %w", err)
		}
		result.Committed = true
		result.Message = message
	}

	args := []string{"push", "origin", "HEAD"}
	if pushAll {
		args = []string{"push", "origin", "--all"}
	}
	if err := runGit(ctx, path, networkTimeout, args...); err != nil {
		return result, pushError(err)
	}
	return result, nil
}

// SyncResult captures each stage of a [QuickSync] independently: a pull
// failure leaves the push never attempted, while a push failure after a
// successful pull keeps both outcomes visible.
type SyncResult struct {
	Pull    PullResult
	PullErr error

	PushAttempted bool
	Push          PushResult
	PushErr       error
}

// Success reports whether both stages completed.
func (r SyncResult) Success() bool {
	return r.PullErr == nil && r.PushErr == nil
}

// QuickSync pulls, and only on success commits and pushes. No stage is ever
// retried; any failure is terminal for this invocation.
func QuickSync(ctx context.Context, path, message string, rebase bool) SyncResult {
	var result SyncResult
	result.Pull, result.PullErr = Pull(ctx, path, rebase)
	if result.PullErr != nil {
		return result
	}
	result.PushAttempted = true
	result.Push, result.PushErr = Push(ctx, path, message, false)
	return result
}

// pushError classifies a push failure into rejected, auth, or generic.
func pushError(err error) error {
	switch {
	case isRejected(err.Error()):
		return fmt.Errorf("%w: pull first to integrate remote changes", ErrPushRejected)
	case isAuthFailure(err.Error()):
		return fmt.Errorf("%w during push: check your SSH keys or credentials", ErrAuthFailed)
	default:
		return fmt.Errorf("push failed: %w", err)
	}
}

// currentBranch returns the current branch name, empty when detached.
func currentBranch(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, quickTimeout, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("get current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// hasTrackedChanges reports whether the index or working tree carries
// changes to tracked files (untracked files are ignored).
func hasTrackedChanges(ctx context.Context, path string) bool {
	out, err := outputGit(ctx, path, quickTimeout, "status", "--porcelain")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" || strings.HasPrefix(line, "??") {
			continue
		}
		return true
	}
	return false
}

// abortIntegration backs out of a failed rebase or merge, best effort.
func abortIntegration(ctx context.Context, path string, rebase bool) {
	if rebase {
		_ = runGit(ctx, path, localTimeout, "rebase", "--abort")
		return
	}
	_ = runGit(ctx, path, localTimeout, "merge", "--abort")
}

// firstLine trims a multi-line git error down to its first line.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
