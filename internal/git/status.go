package git

import (
	"context"
	"strconv"
	"strings"
)

// RepoStatus is a point-in-time snapshot of a repository. It is created
// fresh on every [GetStatus] call and never mutated afterwards.
type RepoStatus struct {
	IsGitRepo bool

	// Branch is the current branch name, empty in detached HEAD state.
	Branch string

	// Upstream is the tracking branch (e.g. "origin/main"), empty if none.
	Upstream string

	// Ahead and Behind count commits unique to each side of the symmetric
	// difference between the local branch and its tracking branch.
	Ahead  int
	Behind int

	Staged    []string
	Modified  []string
	Untracked []string

	// HasConflicts is set when unmerged index entries exist.
	HasConflicts bool

	// CanFastForward is true when the local tip is a direct ancestor of the
	// tracking branch tip.
	CanFastForward bool
}

// IsClean reports whether the working tree has no staged, modified,
// untracked, or conflicted entries.
func (s RepoStatus) IsClean() bool {
	return len(s.Staged) == 0 &&
		len(s.Modified) == 0 &&
		len(s.Untracked) == 0 &&
		!s.HasConflicts
}

// NeedsPush reports whether local commits are waiting to be pushed.
func (s RepoStatus) NeedsPush() bool { return s.Ahead > 0 }

// NeedsPull reports whether remote commits are waiting to be integrated.
func (s RepoStatus) NeedsPull() bool { return s.Behind > 0 }

// StatusOptions control how [GetStatus] gathers its snapshot.
type StatusOptions struct {
	// SkipFetch disables the best-effort fetch of the tracking branch
	// before counting ahead/behind. Without the fetch the counts reflect
	// whatever the local tracking ref last saw.
	SkipFetch bool
}

// GetStatus derives a status snapshot for path. It is total over any path:
// a directory that is not a repository yields IsGitRepo=false, and every
// internal failure degrades to a best-effort zero value instead of an error.
// It never mutates history, but unless opts.SkipFetch is set it may perform
// a timeout-bounded network fetch whose failure is swallowed.
func GetStatus(ctx context.Context, path string, opts StatusOptions) RepoStatus {
	if !IsRepo(ctx, path) {
		return RepoStatus{}
	}

	status := RepoStatus{IsGitRepo: true}

	// The upstream ref is resolved before the porcelain parse so the fetch
	// can refresh it first.
	hasUpstream := false
	if out, err := outputGit(ctx, path, quickTimeout, "rev-parse", "--abbrev-ref", "@{u}"); err == nil {
		hasUpstream = strings.TrimSpace(string(out)) != ""
	}
	if hasUpstream && !opts.SkipFetch {
		// Best effort: ahead/behind fall back to the last-known counts.
		_ = runGit(ctx, path, networkTimeout, "fetch", "--quiet")
	}

	out, err := outputGit(ctx, path, quickTimeout, "status", "--porcelain=v2", "--branch")
	if err != nil {
		return status
	}
	parsePorcelainV2(string(out), &status)

	if status.Upstream != "" {
		status.CanFastForward = runGit(ctx, path, quickTimeout,
			"merge-base", "--is-ancestor", "HEAD", "@{u}") == nil
	}

	return status
}

// parsePorcelainV2 fills status from `git status --porcelain=v2 --branch`
// output. Header lines carry branch/upstream/ahead-behind information;
// entry lines are partitioned into staged, modified, and untracked.
func parsePorcelainV2(out string, status *RepoStatus) {
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case '#':
			parseBranchHeader(line, status)
		case '1':
			parseOrdinaryEntry(line, status)
		case '2':
			parseRenameEntry(line, status)
		case 'u':
			status.HasConflicts = true
		case '?':
			if len(line) > 2 {
				status.Untracked = append(status.Untracked, line[2:])
			}
		}
	}
}

func parseBranchHeader(line string, status *RepoStatus) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return
	}
	switch parts[1] {
	case "branch.head":
		if parts[2] != "(detached)" {
			status.Branch = parts[2]
		}
	case "branch.upstream":
		status.Upstream = parts[2]
	case "branch.ab":
		for _, p := range strings.Fields(parts[2]) {
			if strings.HasPrefix(p, "+") {
				status.Ahead, _ = strconv.Atoi(p[1:])
			} else if strings.HasPrefix(p, "-") {
				status.Behind, _ = strconv.Atoi(p[1:])
			}
		}
	}
}

// parseOrdinaryEntry handles "1 XY sub mH mI mW hH hI path" lines. The path
// is everything after the eighth space, so names with spaces survive.
func parseOrdinaryEntry(line string, status *RepoStatus) {
	fields := strings.SplitN(line, " ", 9)
	if len(fields) < 9 {
		return
	}
	recordEntry(fields[1], fields[8], status)
}

// parseRenameEntry handles "2 XY sub mH mI mW hH hI Xscore path\torigPath"
// lines; only the new path matters here.
func parseRenameEntry(line string, status *RepoStatus) {
	fields := strings.SplitN(line, " ", 10)
	if len(fields) < 10 {
		return
	}
	path := fields[9]
	if idx := strings.IndexByte(path, '\t'); idx >= 0 {
		path = path[:idx]
	}
	recordEntry(fields[1], path, status)
}

// recordEntry partitions one entry by its XY state: X is the index side
// (staged), Y the working-tree side (modified). An entry can be both.
func recordEntry(xy, path string, status *RepoStatus) {
	if len(xy) != 2 {
		return
	}
	if xy[0] != '.' {
		status.Staged = append(status.Staged, path)
	}
	if xy[1] != '.' {
		status.Modified = append(status.Modified, path)
	}
}
