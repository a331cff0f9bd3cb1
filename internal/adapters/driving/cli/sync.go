package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/issuesync/internal/connectors/github"
	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

const (
	flagEvent   = "event"
	flagPayload = "payload"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Handle the GitHub Actions event that triggered this run",
	Long: `Reads the event name and payload GitHub Actions provides
(GITHUB_EVENT_NAME and GITHUB_EVENT_PATH) and syncs accordingly:

  issues             create the page on "opened", update it otherwise
  workflow_dispatch  reconcile the whole repository
  schedule           reconcile the whole repository

Other events are ignored with a warning.`,
	RunE: runSync,
}

func init() {
	runCmd.Flags().String(flagEvent, "", "event name (default $GITHUB_EVENT_NAME)")
	runCmd.Flags().String(flagPayload, "", "path to the event payload (default $GITHUB_EVENT_PATH)")
	rootCmd.AddCommand(runCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eventName, _ := cmd.Flags().GetString(flagEvent)
	if eventName == "" {
		eventName = getenv("GITHUB_EVENT_NAME")
	}
	if eventName == "" {
		return fmt.Errorf("%w: event name (set GITHUB_EVENT_NAME or --%s)", domain.ErrConfigMissing, flagEvent)
	}

	payloadPath, _ := cmd.Flags().GetString(flagPayload)
	if payloadPath == "" {
		payloadPath = getenv("GITHUB_EVENT_PATH")
	}

	var payload []byte
	if payloadPath != "" {
		data, err := os.ReadFile(payloadPath)
		if err != nil {
			return fmt.Errorf("read event payload: %w", err)
		}
		payload = data
	}

	trigger, err := github.ParseTrigger(eventName, payload)
	if err != nil {
		return err
	}

	service, err := newSyncService(ctx, settings, driving.ReconcileOptions{})
	if err != nil {
		return err
	}

	result, err := service.Dispatch(ctx, trigger)
	if errors.Is(err, domain.ErrUnsupportedEvent) {
		logger.Warn("Ignoring %s event: only issues, workflow_dispatch and schedule are handled", eventName)
		return nil
	}
	if result != nil {
		printResult(cmd, trigger, result)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", explainFailure(err))
	}

	return nil
}

// printResult writes a one-line summary of the handled trigger.
func printResult(cmd *cobra.Command, trigger domain.Trigger, result *driving.DispatchResult) {
	if result.Report != nil {
		printReport(cmd, result.Report)
		return
	}
	if trigger.Issue == nil {
		return
	}

	number := trigger.Issue.Issue.Number
	switch result.Outcome {
	case domain.OutcomeCreated:
		cmd.Printf("Created page for issue #%d\n", number)
	case domain.OutcomeUpdated:
		cmd.Printf("Updated page for issue #%d\n", number)
	case domain.OutcomeSkippedNotFound:
		cmd.Printf("No page found for issue #%d, nothing updated\n", number)
	}
}
