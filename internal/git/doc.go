// Package git provides git operations for vault synchronization via shell
// commands.
//
// All operations use the git CLI through [internal/cmd] rather than a Go git
// library. This approach is simpler, more reliable, and ensures compatibility
// with user configurations (SSH keys, credential helpers, aliases).
//
// # Status
//
//   - [GetStatus]: derive a [RepoStatus] snapshot for any path; total over
//     non-repositories (never returns an error)
//
// # Sync
//
//   - [Pull]: fetch and integrate upstream changes via rebase or merge,
//     aborting cleanly on conflict
//   - [Push]: stage and commit local changes if any, then push
//   - [QuickSync]: pull then push, reporting each stage independently
//
// # Setup
//
//   - [InitRepo], [InitialCommit], [EnsureIdentity]: repository bootstrap
//   - [SetRemote], [NormalizeRemoteURL]: idempotent remote configuration
//
// Every call that reaches the network is bounded by a timeout; local calls
// carry shorter ones. Failures from remote operations are classified into a
// small taxonomy (see errors.go) by inspecting git's stderr text.
package git
