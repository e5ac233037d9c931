package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-clawbot/obsidian-git-bridge/internal/doctor"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/output"
	"github.com/sagar-clawbot/obsidian-git-bridge/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair vault sync issues",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Long: `Diagnose common vault sync problems.

Checks:
- Git repository is initialized
- .gitignore is present
- A remote is configured
- Git identity (user.name/user.email) is set
- SSH keys exist for SSH authentication
- Large binary files that may not belong in git

Examples:
  ogb doctor          # Check for issues
  ogb doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)

			path, err := resolveVault()
			if err != nil {
				return err
			}

			p.Println("Running diagnostics...")
			p.Println()

			issues := doctor.Run(ctx, path, fix)
			if len(issues) == 0 {
				p.Println(styles.OK("No issues found"))
				return nil
			}

			for _, issue := range issues {
				line := issue.Message
				switch {
				case issue.Fixed:
					p.Println(styles.OK(line + " (fixed)"))
				case issue.Severity == doctor.SeverityError:
					p.Println(styles.Fail(line))
				case issue.Severity == doctor.SeverityWarning:
					p.Println(styles.Warn(line))
				default:
					p.Println(styles.Bullet(line))
				}
				for _, detail := range issue.Details {
					p.Printf("    %s\n", styles.MutedStyle.Render(detail))
				}
				if issue.Fixable && !issue.Fixed && !fix {
					p.Printf("    %s\n", styles.MutedStyle.Render("fixable with 'ogb doctor --fix'"))
				}
			}

			if doctor.HasErrors(issues) {
				return fmt.Errorf("doctor found unresolved errors")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Automatically fix recoverable issues")

	return cmd
}
