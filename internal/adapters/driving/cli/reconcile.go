package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
)

const (
	flagDryRun      = "dry-run"
	flagConcurrency = "concurrency"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Create pages for every issue missing from Notion",
	Long: `Lists all issues of the repository, open and closed, and creates a
Notion page for each issue number that has none. Existing pages are never
modified or removed. Pull requests are skipped.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().Bool(flagDryRun, false, "report missing issues without creating pages")
	reconcileCmd.Flags().Int(flagConcurrency, domain.DefaultConcurrency, "maximum concurrent page creates")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := settings.ValidateReconcile(); err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool(flagDryRun)
	service, err := newSyncService(ctx, settings, driving.ReconcileOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	cmd.Printf("Reconciling %s...\n", settings.Repository.FullName())

	result, err := service.Dispatch(ctx, domain.Trigger{
		EventName:  domain.EventWorkflowDispatch,
		Repository: settings.Repository,
	})
	if result != nil && result.Report != nil {
		printReport(cmd, result.Report)
	}
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", explainFailure(err))
	}

	return nil
}

// printReport summarises a reconciliation run.
func printReport(cmd *cobra.Command, report *domain.ReconcileReport) {
	cmd.Printf("Indexed %d pages, listed %d issues (%d pull requests skipped)\n",
		report.Indexed, report.Listed, report.PullRequests)

	if len(report.Missing) == 0 {
		cmd.Println("Notion is up to date.")
		return
	}

	if report.DryRun {
		cmd.Printf("Missing %d issues: %s\n", len(report.Missing), formatNumbers(report.Missing))
		cmd.Println("Dry run: no pages created.")
		return
	}

	cmd.Printf("Created %d of %d missing pages\n", len(report.Created), len(report.Missing))
	for _, f := range report.Failed {
		cmd.Printf("  #%d: %v\n", f.Number, f.Err)
	}
}

func formatNumbers(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("#%d", n))
	}
	return strings.Join(parts, ", ")
}
