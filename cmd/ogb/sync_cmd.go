package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
)

func newSyncNowCmd() *cobra.Command {
	var (
		message  string
		pullOnly bool
		pushOnly bool
	)

	cmd := &cobra.Command{
		Use:     "sync-now",
		Short:   "Pull, commit and push the vault",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Run one full sync cycle: pull remote changes, commit local edits,
and push.

The pull integrates via rebase by default (sync.strategy in the config
selects merge instead). A failed pull stops the cycle before anything
is pushed. Conflicts abort the integration and leave the vault exactly
as it was.`,
		Example: `  ogb sync-now
  ogb sync-now -m "weekly cleanup"   # custom commit message
  ogb sync-now --pull-only
  ogb sync-now --push-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)

			if pullOnly && pushOnly {
				return fmt.Errorf("--pull-only and --push-only are mutually exclusive")
			}

			path, err := resolveVault()
			if err != nil {
				return err
			}
			rebase := cfg.Rebase()

			if pullOnly {
				result, err := git.Pull(ctx, path, rebase)
				if err != nil {
					return describeSyncError(err)
				}
				p.Println(styles.OK("Pulled " + result.Branch))
				return nil
			}
			if pushOnly {
				result, err := git.Push(ctx, path, message, false)
				if err != nil {
					return describeSyncError(err)
				}
				if result.Committed {
					p.Println(styles.OK("Committed " + result.Message))
				}
				p.Println(styles.OK("Pushed to remote"))
				return nil
			}

			result := git.QuickSync(ctx, path, message, rebase)

			if result.PullErr != nil {
				p.Println(styles.Fail("Pull failed"))
				return describeSyncError(result.PullErr)
			}
			p.Println(styles.OK("Pulled " + result.Pull.Branch))

			if result.PushErr != nil {
				p.Println(styles.Fail("Push failed"))
				return describeSyncError(result.PushErr)
			}
			if result.Push.Committed {
				p.Println(styles.OK("Committed " + result.Push.Message))
			}
			p.Println(styles.OK("Pushed to remote"))
			p.Println(styles.OK("Vault is in sync"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message for local changes")
	cmd.Flags().BoolVar(&pullOnly, "pull-only", false, "Only pull remote changes")
	cmd.Flags().BoolVar(&pushOnly, "push-only", false, "Only commit and push local changes")

	return cmd
}

// describeSyncError augments the sentinel sync errors with a hint on
// how to recover.
func describeSyncError(err error) error {
	switch {
	case errors.Is(err, git.ErrMergeConflict):
		return fmt.Errorf("%w\n\nThe sync was aborted and your vault is unchanged.\nResolve by syncing the other device first, or pull manually and resolve conflicts", err)
	case errors.Is(err, git.ErrAuthFailed):
		return fmt.Errorf("%w\n\nCheck your SSH keys ('ogb doctor') or credential helper", err)
	case errors.Is(err, git.ErrPushRejected):
		return fmt.Errorf("%w\n\nThe remote has newer commits. Run 'ogb sync-now' to pull first", err)
	case errors.Is(err, git.ErrNoUpstream):
		return fmt.Errorf("%w\n\nRun 'ogb setup-remote <url>' and push once with 'git push -u origin main'", err)
	default:
		return err
	}
}
