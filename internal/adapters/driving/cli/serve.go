package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/issuesync/internal/adapters/driving/webhook"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

const (
	flagListen = "listen"
	flagSecret = "secret"
)

// newWebhookServer is replaced in tests.
var newWebhookServer = webhook.NewServer

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Receive GitHub webhooks and sync as they arrive",
	Long: `Starts an HTTP server that accepts GitHub webhook deliveries on
/webhook. Deliveries are verified against the webhook secret when one is
configured. Stops on interrupt.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String(flagListen, "", "listen address (default :8080)")
	serveCmd.Flags().String(flagSecret, "", "webhook secret (default $GITHUB_WEBHOOK_SECRET)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	service, err := newSyncService(ctx, settings, driving.ReconcileOptions{})
	if err != nil {
		return err
	}

	if settings.WebhookSecret == "" {
		logger.Warn("No webhook secret configured, deliveries are not verified")
	}

	server := newWebhookServer(settings.ListenAddr, settings.WebhookSecret, service)
	return server.Run(ctx)
}
