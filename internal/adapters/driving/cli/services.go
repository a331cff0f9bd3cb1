package cli

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/issuesync/internal/connectors/github"
	"github.com/custodia-labs/issuesync/internal/connectors/notion"
	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/core/services"
)

// defaultGitHubAPI is the public API root. GITHUB_API_URL differs on
// GitHub Enterprise Server.
const defaultGitHubAPI = "https://api.github.com"

// serviceFactory builds the sync service for the effective settings.
type serviceFactory func(ctx context.Context, s domain.Settings, opts driving.ReconcileOptions) (driving.SyncService, error)

// newSyncService is replaced in tests.
var newSyncService serviceFactory = buildSyncService

// buildSyncService wires the Notion page store, the GitHub issue source and
// the core services. Without a GitHub token only issues events can be
// handled.
func buildSyncService(ctx context.Context, s domain.Settings, opts driving.ReconcileOptions) (driving.SyncService, error) {
	if err := s.ValidateNotion(); err != nil {
		return nil, err
	}

	pages := notion.NewClient(s.NotionToken, s.NotionDatabaseID,
		notion.WithRateLimit(rate.Limit(s.NotionRate), notion.DefaultBurst),
	)
	mapper := services.NewPropertyMapper()
	incremental := services.NewIncrementalSync(pages, mapper)

	var reconciler driving.Reconciler
	if s.GitHubToken != "" {
		issues := github.NewClientWithToken(ctx, s.GitHubToken)
		if apiURL := getenv("GITHUB_API_URL"); apiURL != "" && apiURL != defaultGitHubAPI {
			if _, err := issues.WithBaseURL(apiURL); err != nil {
				return nil, err
			}
		}
		reconciler = services.NewReconciler(issues, pages, mapper, s.Concurrency)
	}

	return services.NewDispatcher(incremental, reconciler, s.Repository, opts), nil
}
