package vault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeVault(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(path, ".obsidian"), 0o755); err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "welcome.md"), []byte("# Welcome\n"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}
}

func TestIsVaultDir(t *testing.T) {
	withObsidian := t.TempDir()
	os.MkdirAll(filepath.Join(withObsidian, ".obsidian"), 0o755)
	if !IsVaultDir(withObsidian) {
		t.Error("directory with .obsidian not recognized")
	}

	withNotes := t.TempDir()
	os.WriteFile(filepath.Join(withNotes, "note.md"), []byte("hi\n"), 0o644)
	if !IsVaultDir(withNotes) {
		t.Error("directory with markdown files not recognized")
	}

	if IsVaultDir(t.TempDir()) {
		t.Error("empty directory recognized as vault")
	}
}

func TestFindProbesCandidates(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Find(); !errors.Is(err, ErrNoVault) {
		t.Errorf("empty home: error = %v, want ErrNoVault", err)
	}

	// Later candidate should lose to an earlier one.
	makeVault(t, filepath.Join(home, "notes"))
	makeVault(t, filepath.Join(home, "Obsidian"))

	path, err := Find()
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if path != filepath.Join(home, "Obsidian") {
		t.Errorf("Find() = %q, want ~/Obsidian", path)
	}
}

func TestValidate(t *testing.T) {
	vault := t.TempDir()
	makeVault(t, vault)
	if err := Validate(vault); err != nil {
		t.Errorf("valid vault rejected: %v", err)
	}

	if err := Validate(filepath.Join(vault, "missing")); err == nil {
		t.Error("missing path accepted")
	}

	file := filepath.Join(vault, "welcome.md")
	if err := Validate(file); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("file accepted as vault: %v", err)
	}

	if err := Validate(t.TempDir()); err == nil {
		t.Error("empty directory accepted as vault")
	}
}

func TestName(t *testing.T) {
	if got := Name("/home/user/Obsidian/MyVault"); got != "MyVault" {
		t.Errorf("Name() = %q", got)
	}
}

func TestGetInfo(t *testing.T) {
	vault := t.TempDir()
	makeVault(t, vault)
	os.MkdirAll(filepath.Join(vault, "daily"), 0o755)
	os.WriteFile(filepath.Join(vault, "daily", "today.md"), []byte("x\n"), 0o644)
	os.WriteFile(filepath.Join(vault, "image.png"), []byte{1}, 0o644)

	info, err := GetInfo(vault)
	if err != nil {
		t.Fatalf("GetInfo() error: %v", err)
	}
	if info.MarkdownFiles != 2 {
		t.Errorf("MarkdownFiles = %d, want 2", info.MarkdownFiles)
	}
	if info.HasGit {
		t.Error("HasGit = true without .git")
	}
	if info.HasPluginConfig {
		t.Error("HasPluginConfig = true without plugin config")
	}
	if info.Name != filepath.Base(vault) {
		t.Errorf("Name = %q", info.Name)
	}

	os.MkdirAll(filepath.Join(vault, ".git"), 0o755)
	if err := ConfigurePlugin(vault, 0, ""); err != nil {
		t.Fatalf("ConfigurePlugin() error: %v", err)
	}

	info, err = GetInfo(vault)
	if err != nil {
		t.Fatalf("GetInfo() error: %v", err)
	}
	if !info.HasGit || !info.HasPluginConfig {
		t.Errorf("HasGit=%v HasPluginConfig=%v, want both true", info.HasGit, info.HasPluginConfig)
	}
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	makeVault(t, filepath.Join(home, "Notes"))

	// Exact path wins.
	exact := t.TempDir()
	makeVault(t, exact)
	if got, err := Resolve(exact); err != nil || got != exact {
		t.Errorf("Resolve(exact) = %q, %v", got, err)
	}

	// Fuzzy match against discovered vault names.
	got, err := Resolve("nts")
	if err != nil {
		t.Fatalf("Resolve(fuzzy) error: %v", err)
	}
	if got != filepath.Join(home, "Notes") {
		t.Errorf("Resolve(fuzzy) = %q", got)
	}

	if _, err := Resolve("zzzz"); !errors.Is(err, ErrNoVault) {
		t.Errorf("Resolve(miss) error = %v, want ErrNoVault", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandPath("~/Obsidian"); got != filepath.Join(home, "Obsidian") {
		t.Errorf("ExpandPath(~/Obsidian) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
}
