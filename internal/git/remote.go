package git

import (
	"context"
	"fmt"
	"strings"
)

// Supported authentication methods for remote URLs.
const (
	AuthSSH   = "ssh"
	AuthHTTPS = "https"
)

// DefaultRemoteName is the conventional remote a vault syncs against.
const DefaultRemoteName = "origin"

// RemoteResult reports the outcome of [SetRemote].
type RemoteResult struct {
	Name    string
	URL     string
	Created bool
	Updated bool
}

// NormalizeRemoteURL rewrites url for the requested auth method. For "ssh",
// HTTPS URLs of the two well-known hosts are rewritten to SSH form with any
// ".git" suffix dropped; everything else passes through unchanged. For
// "https" the URL always passes through. Any other method is a
// configuration error.
func NormalizeRemoteURL(url, authMethod string) (string, error) {
	url = strings.TrimSpace(url)

	switch authMethod {
	case AuthSSH:
		for _, host := range []string{"github.com", "gitlab.com"} {
			prefix := "https://" + host + "/"
			if strings.HasPrefix(url, prefix) {
				repoPath := strings.TrimSuffix(strings.TrimPrefix(url, prefix), ".git")
				return fmt.Sprintf("git@%s:%s", host, repoPath), nil
			}
		}
		return url, nil
	case AuthHTTPS:
		return url, nil
	default:
		return "", fmt.Errorf("unknown auth method %q: use %q or %q", authMethod, AuthSSH, AuthHTTPS)
	}
}

// SetRemote idempotently creates or updates the named remote. A remote that
// already points at the normalized URL is a reported no-op; one with a
// different URL is updated in place rather than rejected.
func SetRemote(ctx context.Context, path, name, url, authMethod string) (RemoteResult, error) {
	if err := CheckGit(); err != nil {
		return RemoteResult{}, err
	}
	if !IsRepo(ctx, path) {
		return RemoteResult{}, notARepo(path)
	}

	normalized, err := NormalizeRemoteURL(url, authMethod)
	if err != nil {
		return RemoteResult{}, err
	}

	existing, err := GetRemoteURL(ctx, path, name)
	if err != nil {
		// Remote does not exist yet.
		if err := runGit(ctx, path, quickTimeout, "remote", "add", name, normalized); err != nil {
			return RemoteResult{}, fmt.Errorf("add remote %q: %w", name, err)
		}
		return RemoteResult{Name: name, URL: normalized, Created: true}, nil
	}

	if existing == normalized {
		return RemoteResult{Name: name, URL: normalized}, nil
	}

	if err := runGit(ctx, path, quickTimeout, "remote", "set-url", name, normalized); err != nil {
		return RemoteResult{}, fmt.Errorf("update remote %q: %w", name, err)
	}
	return RemoteResult{Name: name, URL: normalized, Updated: true}, nil
}

// GetRemoteURL returns the fetch URL of the named remote.
func GetRemoteURL(ctx context.Context, path, name string) (string, error) {
	out, err := outputGit(ctx, path, quickTimeout, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("remote %q not configured: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListRemotes returns the configured remote names in git's order.
func ListRemotes(ctx context.Context, path string) ([]string, error) {
	out, err := outputGit(ctx, path, quickTimeout, "remote")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// hasRemote reports whether the named remote exists.
func hasRemote(ctx context.Context, path, name string) bool {
	_, err := GetRemoteURL(ctx, path, name)
	return err == nil
}
