package git

import (
	"context"
	"time"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/cmd"
)

// Timeout tiers for git commands. Everything that can touch the network gets
// the long one; plumbing queries the short one.
const (
	quickTimeout   = 5 * time.Second
	localTimeout   = 30 * time.Second
	networkTimeout = 120 * time.Second
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command bounded by timeout, with context support and
// verbose logging.
func runGit(ctx context.Context, dir string, timeout time.Duration, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command bounded by timeout, returning stdout.
func outputGit(ctx context.Context, dir string, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
