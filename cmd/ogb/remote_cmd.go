package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/log"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/prompt"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
)

func newSetupRemoteCmd() *cobra.Command {
	var (
		remoteName string
		auth       string
	)

	cmd := &cobra.Command{
		Use:     "setup-remote [url]",
		Short:   "Configure the sync remote",
		GroupID: GroupSetup,
		Args:    cobra.MaximumNArgs(1),
		Long: `Configure the git remote the vault syncs against.

The URL is normalized for the chosen auth method: with SSH, HTTPS URLs
of github.com and gitlab.com are rewritten to their SSH form. An
existing remote is updated in place, so re-running with a new URL is
safe.

Without a URL argument, the command prompts for one when the session is
interactive.`,
		Example: `  ogb setup-remote git@github.com:acme/notes
  ogb setup-remote https://github.com/acme/notes.git           # rewritten to SSH
  ogb setup-remote https://github.com/acme/notes --auth https  # kept as HTTPS
  ogb setup-remote git@github.com:acme/notes --name backup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			p := output.FromContext(ctx)

			path, err := resolveVault()
			if err != nil {
				return err
			}

			var url string
			if len(args) == 1 {
				url = args[0]
			} else {
				if !styles.Interactive() {
					return fmt.Errorf("remote URL required (pass it as an argument)")
				}
				result, err := prompt.TextInput("Remote repository URL:", "git@github.com:you/vault")
				if err != nil {
					return err
				}
				if result.Cancelled || result.Value == "" {
					return fmt.Errorf("no remote URL provided")
				}
				url = result.Value
			}

			if remoteName == "" {
				remoteName = cfg.Sync.Remote
			}
			if auth == "" {
				auth = cfg.Auth
			}

			result, err := git.SetRemote(ctx, path, remoteName, url, auth)
			if err != nil {
				return err
			}
			switch {
			case result.Created:
				p.Println(styles.OK(fmt.Sprintf("Added remote %s -> %s", result.Name, result.URL)))
			case result.Updated:
				p.Println(styles.OK(fmt.Sprintf("Updated remote %s -> %s", result.Name, result.URL)))
			default:
				l.Printf("Remote %s already points at %s\n", result.Name, result.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remoteName, "name", "", "Remote name (default from config, usually origin)")
	cmd.Flags().StringVar(&auth, "auth", "", `Auth method: "ssh" or "https" (default from config)`)

	return cmd
}
