package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
)

func newStatusCmd() *cobra.Command {
	var noFetch bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show how the vault relates to its remote",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Show the vault's sync state.

Reports the branch, ahead/behind counts against the tracking branch,
and any staged, modified, or untracked files. A fetch runs first so the
counts are current; --no-fetch skips it for an offline view.`,
		Example: `  ogb status
  ogb status --no-fetch   # offline, no network`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)

			path, err := resolveVault()
			if err != nil {
				return err
			}

			info, err := vault.GetInfo(path)
			if err != nil {
				return err
			}
			status := git.GetStatus(ctx, path, git.StatusOptions{SkipFetch: noFetch})

			p.Println(styles.TitleStyle.Render(info.Name) + styles.MutedStyle.Render(" ("+info.Path+")"))
			p.Printf("%s\n", styles.Bullet(fmt.Sprintf("%d markdown files", info.MarkdownFiles)))

			if !status.IsGitRepo {
				p.Println(styles.Fail("Not a git repository (run 'ogb init')"))
				return nil
			}

			branch := status.Branch
			if branch == "" {
				branch = "(detached)"
			}
			p.Printf("%s\n", styles.Bullet("branch "+branch))

			if status.Upstream == "" {
				p.Println(styles.Warn("No tracking branch (run 'ogb setup-remote', then push with -u)"))
			} else {
				switch {
				case status.Ahead == 0 && status.Behind == 0:
					p.Println(styles.OK("Up to date with " + status.Upstream))
				case status.Behind > 0 && status.Ahead == 0:
					p.Println(styles.Warn(fmt.Sprintf("Behind %s by %d commit(s), fast-forward possible", status.Upstream, status.Behind)))
				case status.Ahead > 0 && status.Behind == 0:
					p.Println(styles.Warn(fmt.Sprintf("Ahead of %s by %d commit(s), push needed", status.Upstream, status.Ahead)))
				default:
					p.Println(styles.Warn(fmt.Sprintf("Diverged from %s: %d ahead, %d behind", status.Upstream, status.Ahead, status.Behind)))
				}
			}

			if status.HasConflicts {
				p.Println(styles.Fail("Unresolved merge conflicts"))
			}
			if len(status.Staged) > 0 {
				p.Printf("%s\n", styles.Bullet(fmt.Sprintf("%d staged", len(status.Staged))))
			}
			if len(status.Modified) > 0 {
				p.Printf("%s\n", styles.Bullet(fmt.Sprintf("%d modified", len(status.Modified))))
			}
			if len(status.Untracked) > 0 {
				p.Printf("%s\n", styles.Bullet(fmt.Sprintf("%d untracked", len(status.Untracked))))
			}
			if status.IsClean() {
				p.Println(styles.OK("Working tree clean"))
			}
			if !info.HasPluginConfig {
				p.Println(styles.Warn("obsidian-git plugin not configured (run 'ogb setup-plugin')"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip the fetch, report against the last known remote state")

	return cmd
}
