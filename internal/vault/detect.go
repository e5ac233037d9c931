package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrNoVault is returned by Find when none of the well-known locations
// holds anything that looks like a vault.
var ErrNoVault = errors.New("no obsidian vault found")

// candidatePaths are the locations Find probes, in order.
func candidatePaths() []string {
	return []string{
		"~/Obsidian",
		"~/Documents/Obsidian",
		"~/.obsidian",
		"~/obsidian",
		"~/notes",
		"~/Notes",
	}
}

// Info describes a validated vault.
type Info struct {
	Path            string
	Name            string
	MarkdownFiles   int
	HasGit          bool
	HasPluginConfig bool
}

// ExpandPath resolves a leading ~ against the current user's home
// directory and cleans the result.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return filepath.Clean(path)
}

// IsVaultDir reports whether path looks like an Obsidian vault: it
// carries a .obsidian directory or at least one top-level .md file.
func IsVaultDir(path string) bool {
	if info, err := os.Stat(filepath.Join(path, ".obsidian")); err == nil && info.IsDir() {
		return true
	}
	matches, err := filepath.Glob(filepath.Join(path, "*.md"))
	return err == nil && len(matches) > 0
}

// Find probes the well-known vault locations and returns the first
// match.
func Find() (string, error) {
	for _, candidate := range candidatePaths() {
		path := ExpandPath(candidate)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		if IsVaultDir(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (checked %s)", ErrNoVault, strings.Join(candidatePaths(), ", "))
}

// Validate checks that path is an existing, writable directory that
// looks like a vault.
func Validate(path string) error {
	path = ExpandPath(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("vault path does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat vault path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", path)
	}

	// Probe writability the portable way.
	probe, err := os.CreateTemp(path, ".ogb-probe-*")
	if err != nil {
		return fmt.Errorf("vault directory is not writable: %s", path)
	}
	probe.Close()
	os.Remove(probe.Name())

	if !IsVaultDir(path) {
		return fmt.Errorf("directory does not appear to be an obsidian vault: %s (expected a .obsidian directory or markdown files)", path)
	}
	return nil
}

// Name returns the vault's display name, the base directory name.
func Name(path string) string {
	return filepath.Base(ExpandPath(path))
}

// GetInfo validates path and gathers vault statistics. An empty path
// triggers auto-detection.
func GetInfo(path string) (Info, error) {
	if path == "" {
		found, err := Find()
		if err != nil {
			return Info{}, err
		}
		path = found
	} else {
		path = ExpandPath(path)
	}
	if err := Validate(path); err != nil {
		return Info{}, err
	}

	count := 0
	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".obsidian" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			count++
		}
		return nil
	})

	gitInfo, err := os.Stat(filepath.Join(path, ".git"))
	hasGit := err == nil && gitInfo.IsDir()

	_, err = os.Stat(filepath.Join(path, ".obsidian", "plugins", "obsidian-git", "data.json"))
	hasPlugin := err == nil

	return Info{
		Path:            path,
		Name:            Name(path),
		MarkdownFiles:   count,
		HasGit:          hasGit,
		HasPluginConfig: hasPlugin,
	}, nil
}

// Resolve picks a vault for a possibly partial name. An exact path or
// an empty query falls through to Validate/Find; otherwise the query is
// fuzzy-matched against the vaults discovered in the well-known
// locations.
func Resolve(query string) (string, error) {
	if query == "" {
		return Find()
	}
	path := ExpandPath(query)
	if err := Validate(path); err == nil {
		return path, nil
	}

	known := Discover()
	if len(known) == 0 {
		return "", fmt.Errorf("%w matching %q", ErrNoVault, query)
	}
	names := make([]string, len(known))
	for i, p := range known {
		names[i] = filepath.Base(p)
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w matching %q", ErrNoVault, query)
	}
	return known[matches[0].Index], nil
}

// Discover returns every well-known location that holds a vault.
func Discover() []string {
	var found []string
	for _, candidate := range candidatePaths() {
		path := ExpandPath(candidate)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		if IsVaultDir(path) {
			found = append(found, path)
		}
	}
	return found
}
