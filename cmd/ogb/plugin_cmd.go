package main

import (
	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/vault"
)

func newSetupPluginCmd() *cobra.Command {
	var (
		interval int
		message  string
	)

	cmd := &cobra.Command{
		Use:     "setup-plugin",
		Short:   "Configure the obsidian-git plugin",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Long: `Write the obsidian-git plugin configuration into the vault.

Enables auto-backup with push and pull at the chosen interval. The
commit message template may use {{date}}, which the plugin expands at
backup time.`,
		Example: `  ogb setup-plugin                           # 10 minute interval
  ogb setup-plugin --interval 5
  ogb setup-plugin --message "auto: {{date}}"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)

			path, err := resolveVault()
			if err != nil {
				return err
			}

			if interval == 0 {
				interval = cfg.Sync.IntervalMin
			}
			if message == "" {
				message = cfg.Sync.CommitTemplate
			}

			if err := vault.ConfigurePlugin(path, interval, message); err != nil {
				return err
			}
			p.Println(styles.OK("Configured obsidian-git plugin for " + vault.Name(path)))
			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 0, "Auto-backup interval in minutes (default from config)")
	cmd.Flags().StringVar(&message, "message", "", "Commit message template (default from config)")

	return cmd
}
