package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitRepoIdempotent(t *testing.T) {
	ctx := context.Background()
	vaultPath := filepath.Join(resolveTempDir(t), "vault")

	result, err := InitRepo(ctx, vaultPath)
	if err != nil {
		t.Fatalf("InitRepo() error: %v", err)
	}
	if result.WasAlreadyInit {
		t.Error("first init reported already initialized")
	}
	if _, err := os.Stat(filepath.Join(vaultPath, ".git")); err != nil {
		t.Errorf(".git directory missing after init: %v", err)
	}

	result, err = InitRepo(ctx, vaultPath)
	if err != nil {
		t.Fatalf("InitRepo() second call error: %v", err)
	}
	if !result.WasAlreadyInit {
		t.Error("second init did not report already initialized")
	}
	if _, err := os.Stat(filepath.Join(vaultPath, ".git")); err != nil {
		t.Errorf(".git directory missing after second init: %v", err)
	}
}

func TestInitRepoCreatesDirectory(t *testing.T) {
	vaultPath := filepath.Join(resolveTempDir(t), "nested", "vault")

	if _, err := InitRepo(context.Background(), vaultPath); err != nil {
		t.Fatalf("InitRepo() error: %v", err)
	}
	if !IsRepo(context.Background(), vaultPath) {
		t.Error("nested path not initialized")
	}
}

func TestInitialCommit(t *testing.T) {
	ctx := context.Background()
	vaultPath := filepath.Join(resolveTempDir(t), "vault")
	if _, err := InitRepo(ctx, vaultPath); err != nil {
		t.Fatalf("InitRepo() error: %v", err)
	}
	writeTestFile(t, vaultPath, "note.md", "# note\n")

	result, err := InitialCommit(ctx, vaultPath, "", false)
	if err != nil {
		t.Fatalf("InitialCommit() error: %v", err)
	}
	if !result.Committed {
		t.Fatal("nothing committed")
	}
	if result.SHA == "" {
		t.Error("commit SHA not captured")
	}
	if result.Message != DefaultInitialCommitMessage {
		t.Errorf("message = %q", result.Message)
	}

	status := GetStatus(ctx, vaultPath, StatusOptions{SkipFetch: true})
	if !status.IsClean() {
		t.Errorf("tree not clean after initial commit: %+v", status)
	}

	// A second call over a clean tree commits nothing and does not error.
	result, err = InitialCommit(ctx, vaultPath, "", false)
	if err != nil {
		t.Fatalf("InitialCommit() second call error: %v", err)
	}
	if result.Committed {
		t.Error("second call created a commit on a clean tree")
	}
}

func TestInitialCommitNotARepo(t *testing.T) {
	_, err := InitialCommit(context.Background(), t.TempDir(), "", false)
	if err == nil {
		t.Fatal("InitialCommit() on non-repo succeeded")
	}
}

func TestInitialCommitPushesToOrigin(t *testing.T) {
	ctx := context.Background()
	vault, _ := setupTestVaultWithOrigin(t)

	writeTestFile(t, vault, "second.md", "more notes\n")
	result, err := InitialCommit(ctx, vault, "add second note", true)
	if err != nil {
		t.Fatalf("InitialCommit() error: %v", err)
	}
	if !result.Committed || !result.Pushed {
		t.Errorf("committed=%v pushed=%v, want both", result.Committed, result.Pushed)
	}

	status := GetStatus(ctx, vault, StatusOptions{SkipFetch: true})
	if status.Ahead != 0 {
		t.Errorf("Ahead = %d after push, want 0", status.Ahead)
	}
}

func TestEnsureIdentitySetsDefaults(t *testing.T) {
	ctx := context.Background()
	vaultPath := filepath.Join(resolveTempDir(t), "vault")
	if _, err := InitRepo(ctx, vaultPath); err != nil {
		t.Fatalf("InitRepo() error: %v", err)
	}

	if err := EnsureIdentity(ctx, vaultPath); err != nil {
		t.Fatalf("EnsureIdentity() error: %v", err)
	}

	out, err := outputGit(ctx, vaultPath, quickTimeout, "config", "user.name")
	if err != nil {
		t.Fatalf("read user.name: %v", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		t.Error("user.name still unset")
	}
}

func TestEnsureIdentityKeepsExisting(t *testing.T) {
	ctx := context.Background()
	vault := setupTestVault(t)

	if err := EnsureIdentity(ctx, vault); err != nil {
		t.Fatalf("EnsureIdentity() error: %v", err)
	}

	out, err := outputGit(ctx, vault, quickTimeout, "config", "user.name")
	if err != nil {
		t.Fatalf("read user.name: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "Test User" {
		t.Errorf("user.name = %q, existing identity overwritten", got)
	}
}
