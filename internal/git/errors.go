package git

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the sync taxonomy. Callers match with [errors.Is];
// wrapped messages carry git's own stderr plus a remediation hint.
var (
	// ErrNotARepo indicates a mutating operation targeted a path that is not
	// a git repository.
	ErrNotARepo = errors.New("not a git repository")

	// ErrNoUpstream indicates the current branch has no tracking branch
	// configured. This is a configuration problem, not a network one.
	ErrNoUpstream = errors.New("no upstream branch configured")

	// ErrMergeConflict indicates a pull produced conflicting changes. The
	// rebase or merge has already been aborted; the working tree is as it
	// was before the call.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrAuthFailed indicates the remote rejected our credentials or key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrPushRejected indicates the remote has diverged and refused the
	// push; pulling first is the usual remedy.
	ErrPushRejected = errors.New("push rejected by remote")
)

// notARepo wraps ErrNotARepo with the offending path.
func notARepo(path string) error {
	return fmt.Errorf("%w: %s (run 'ogb init' first)", ErrNotARepo, path)
}

// isAuthFailure reports whether a git error message looks like a
// credential or key problem.
func isAuthFailure(msg string) bool {
	msg = strings.ToLower(msg)
	for _, kw := range []string{
		"authentication failed",
		"permission denied",
		"access denied",
		"could not read username",
		"could not read password",
		"publickey",
	} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// isConflict reports whether a git error message indicates conflicting
// changes during a merge or rebase.
func isConflict(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "conflict") ||
		strings.Contains(msg, "needs merge") ||
		strings.Contains(msg, "would be overwritten by merge")
}

// isRejected reports whether a git error message indicates the remote
// refused a push because it has commits we do not.
func isRejected(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "rejected") ||
		strings.Contains(msg, "non-fast-forward") ||
		strings.Contains(msg, "fetch first")
}
