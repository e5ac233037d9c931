package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/config"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/git"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/log"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	vaultFlag string

	// Shared state injected into commands
	cfg *config.Config
)

// Command group IDs for organizing help output
const (
	GroupSetup = "setup"
	GroupSync  = "sync"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ogb",
	Short: "Git-based sync for Obsidian vaults",
	Long: `ogb keeps an Obsidian vault synchronized through a git repository.

It initializes the vault as a repository with an Obsidian-aware
.gitignore, wires up a remote and the obsidian-git plugin, and runs the
pull/commit/push cycle that keeps every device at the same state.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'ogb -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Path to the Obsidian vault (overrides config and auto-detection)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: GroupSync, Title: "Sync Commands:"},
	)

	// Setup commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSetupRemoteCmd())
	rootCmd.AddCommand(newSetupPluginCmd())
	rootCmd.AddCommand(newSetupVPSCmd())
	rootCmd.AddCommand(newDoctorCmd())

	// Sync commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSyncNowCmd())
}
