// Package cli implements the issuesync command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/logger"
)

var version = "dev"

// getenv reads the process environment. Tests replace it.
var getenv = os.Getenv

// settings holds the effective configuration, loaded before each command.
var settings domain.Settings

var rootCmd = &cobra.Command{
	Use:   "issuesync",
	Short: "Mirror GitHub issues into a Notion database",
	Long: `issuesync keeps one Notion page per GitHub issue.

Inside GitHub Actions, "issuesync run" handles the triggering event:
issues events create or update a single page, workflow_dispatch and
schedule events reconcile the whole repository.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "path to a TOML config file (default issuesync.toml)")
	flags.BoolP(flagVerbose, "v", false, "enable debug output")
	flags.String(flagNotionToken, "", "Notion integration token")
	flags.String(flagNotionDB, "", "Notion database id")
	flags.String(flagGitHubToken, "", "GitHub token used to list issues")
	flags.String(flagRepo, "", "repository as owner/name")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setupLogging applies verbosity and, inside GitHub Actions, workflow
// command output.
func setupLogging(s domain.Settings) {
	logger.SetVerbose(s.Verbose)
	if getenv("GITHUB_ACTIONS") == "true" {
		logger.SetFormat(logger.FormatActions)
	} else {
		logger.SetFormat(logger.FormatText)
	}
}
