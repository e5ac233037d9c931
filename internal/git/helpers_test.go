package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, quickTimeout, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestVault creates a git repo with main branch, initial commit, and
// git config. Returns the resolved repo path.
func setupTestVault(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	vaultPath := filepath.Join(tmpDir, "vault")

	ctx := context.Background()
	if err := runGit(ctx, "", localTimeout, "init", "-b", "main", vaultPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	configureTestRepo(t, vaultPath)

	writeTestFile(t, vaultPath, "welcome.md", "# welcome\n")
	if err := runGit(ctx, vaultPath, localTimeout, "add", "welcome.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, vaultPath, localTimeout, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return vaultPath
}

// setupTestVaultWithOrigin creates a vault cloned from a bare origin, with
// one pushed commit so the branch tracks origin/main.
// Returns (vaultPath, originPath).
func setupTestVaultWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := resolveTempDir(t)

	originPath := filepath.Join(tmpDir, "origin.git")
	vaultPath := filepath.Join(tmpDir, "vault")

	ctx := context.Background()

	// -b main ensures a consistent default branch across git versions.
	if err := runGit(ctx, "", localTimeout, "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}
	if err := runGit(ctx, "", localTimeout, "clone", originPath, vaultPath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}

	configureTestRepo(t, vaultPath)

	writeTestFile(t, vaultPath, "welcome.md", "# welcome\n")
	if err := runGit(ctx, vaultPath, localTimeout, "add", "welcome.md"); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := runGit(ctx, vaultPath, localTimeout, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := runGit(ctx, vaultPath, networkTimeout, "push", "-u", "origin", "HEAD"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}

	return vaultPath, originPath
}

// cloneVault makes a second working clone of origin for simulating another
// device.
func cloneVault(t *testing.T, originPath, name string) string {
	t.Helper()
	clonePath := filepath.Join(resolveTempDir(t), name)
	if err := runGit(context.Background(), "", localTimeout, "clone", originPath, clonePath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}
	configureTestRepo(t, clonePath)
	return clonePath
}

// commitAndPush writes a file, commits it, and pushes to origin.
func commitAndPush(t *testing.T, repoPath, name, content, message string) {
	t.Helper()
	ctx := context.Background()
	writeTestFile(t, repoPath, name, content)
	if err := runGit(ctx, repoPath, localTimeout, "add", "-A"); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := runGit(ctx, repoPath, localTimeout, "commit", "-m", message); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := runGit(ctx, repoPath, networkTimeout, "push", "origin", "HEAD"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
