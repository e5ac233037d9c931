package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/log"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vps"
)

func newSetupVPSCmd() *cobra.Command {
	var (
		repoURL         string
		interval        int
		scriptOnly      bool
		outputPath      string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "setup-vps",
		Short:   "Generate the server-side sync setup",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Long: `Generate the sync script and setup guide for a headless mirror.

The guide contains copy-paste ready commands: installing the bash sync
script, the crontab line that drives it, and verification steps. The
repository URL defaults to the vault's origin remote.`,
		Example: `  ogb setup-vps                          # full guide on stdout
  ogb setup-vps --copy                   # guide straight to the clipboard
  ogb setup-vps --script-only            # just the bash script
  ogb setup-vps --script-only -o sync.sh # write the script to a file
  ogb setup-vps --interval 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			p := output.FromContext(ctx)

			path, err := resolveVault()
			if err != nil {
				return err
			}
			name := vault.Name(path)

			if repoURL == "" {
				repoURL, err = git.GetRemoteURL(ctx, path, cfg.Sync.Remote)
				if err != nil {
					return fmt.Errorf("no remote configured for %s: run 'ogb setup-remote' or pass --repo-url", name)
				}
			}
			if interval == 0 {
				interval = cfg.VPS.IntervalMin
				if interval == 0 {
					interval = vps.DefaultSyncInterval
				}
			}

			if outputPath != "" {
				scriptOnly = true
			}
			if scriptOnly {
				if outputPath != "" {
					if err := vps.WriteSyncScript(name, repoURL, outputPath, cfg.VPS.VaultDir); err != nil {
						return err
					}
					p.Println(styles.OK("Wrote sync script to " + outputPath))
					return nil
				}
				script, err := vps.GenerateSyncScript(name, repoURL, cfg.VPS.VaultDir)
				if err != nil {
					return err
				}
				p.Print(script)
				return nil
			}

			guide, err := vps.GenerateSetupInstructions(name, repoURL, cfg.VPS.VaultDir, interval, cfg.VPS.ScriptDir)
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(guide); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
					p.Print(guide)
					return nil
				}
				p.Println(styles.OK("Setup guide copied to clipboard"))
				return nil
			}

			p.Print(guide)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoURL, "repo-url", "", "Repository URL (defaults to the vault's origin remote)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Sync interval in minutes, 1-60 (default from config)")
	cmd.Flags().BoolVar(&scriptOnly, "script-only", false, "Emit only the bash sync script")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the script to this path instead of stdout (implies --script-only)")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the setup guide to the clipboard")

	return cmd
}
