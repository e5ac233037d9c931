package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/log"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/prompt"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
)

func newInitCmd() *cobra.Command {
	var (
		message   string
		push      bool
		overwrite bool
		patterns  []string
	)

	cmd := &cobra.Command{
		Use:     "init [path]",
		Short:   "Initialize a vault as a git repository",
		GroupID: GroupSetup,
		Args:    cobra.MaximumNArgs(1),
		Long: `Initialize an Obsidian vault as a git repository.

Creates the repository (idempotent), writes an Obsidian-aware
.gitignore, makes sure a git identity is configured, and records the
initial commit. With --push and a configured origin remote, the commit
is pushed upstream immediately.`,
		Example: `  ogb init                          # auto-detect the vault
  ogb init ~/Obsidian/MyVault       # explicit path
  ogb init -m "First vault commit"  # custom commit message
  ogb init --push                   # push after committing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			p := output.FromContext(ctx)

			var path string
			var err error
			if len(args) == 1 {
				path = vault.ExpandPath(args[0])
			} else {
				path, err = resolveVaultInteractive()
				if err != nil {
					return err
				}
			}

			initResult, err := git.InitRepo(ctx, path)
			if err != nil {
				return fmt.Errorf("initialize repository: %w", err)
			}
			if initResult.WasAlreadyInit {
				l.Printf("Repository already initialized at %s\n", initResult.Path)
			} else {
				p.Println(styles.OK("Initialized git repository at " + initResult.Path))
			}

			ignoreResult, err := vault.ConfigureIgnore(path, patterns, overwrite)
			if err != nil {
				return err
			}
			if !ignoreResult.Created && !overwrite && styles.Interactive() {
				answer, perr := prompt.Confirm(".gitignore already exists. Overwrite it?")
				if perr == nil && answer.Confirmed {
					ignoreResult, err = vault.ConfigureIgnore(path, patterns, true)
					if err != nil {
						return err
					}
				}
			}
			if ignoreResult.Created {
				p.Println(styles.OK("Wrote " + ignoreResult.Path))
			} else {
				l.Printf(".gitignore already exists at %s (use --overwrite-gitignore to replace)\n", ignoreResult.Path)
			}

			commitResult, err := git.InitialCommit(ctx, path, message, push)
			if err != nil {
				return fmt.Errorf("initial commit: %w", err)
			}
			if commitResult.Committed {
				p.Println(styles.OK(fmt.Sprintf("Committed %s (%s)", commitResult.Message, commitResult.SHA[:min(7, len(commitResult.SHA))])))
			} else {
				l.Printf("Nothing to commit, vault is clean\n")
			}
			if commitResult.Pushed {
				p.Println(styles.OK("Pushed to origin"))
			} else if push {
				l.Printf("No origin remote configured yet, skipping push (run 'ogb setup-remote' first)\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Initial commit message")
	cmd.Flags().BoolVar(&push, "push", false, "Push the initial commit if an origin remote exists")
	cmd.Flags().BoolVar(&overwrite, "overwrite-gitignore", false, "Replace an existing .gitignore")
	cmd.Flags().StringArrayVar(&patterns, "ignore", nil, "Additional .gitignore patterns")

	return cmd
}
