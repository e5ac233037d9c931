// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. The
// context-aware variants echo the command through the logger attached to the
// context when verbose mode is on, and translate a context deadline into a
// timeout error so callers can tell a slow command from a failing one.
//
// # Design Notes
//
// ogb shells out to the git CLI rather than using a Go git library. This
// keeps the tool compatible with the user's own configuration: SSH keys,
// credential helpers, aliases, and hooks all behave exactly as they do when
// git is run by hand.
package cmd
