package driving

import (
	"context"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// IssueSyncer applies a single issues webhook event to Notion.
type IssueSyncer interface {
	HandleIssueEvent(ctx context.Context, event domain.IssueEvent) (domain.SyncOutcome, error)
}

// ReconcileOptions tunes a full reconciliation run.
type ReconcileOptions struct {
	// DryRun computes missing issues without creating pages.
	DryRun bool
}

// Reconciler brings Notion into agreement with a repository, additively.
type Reconciler interface {
	Reconcile(ctx context.Context, repo domain.RepoRef, opts ReconcileOptions) (*domain.ReconcileReport, error)
}

// DispatchResult carries whichever path handled the trigger.
type DispatchResult struct {
	// Outcome is set for issues events.
	Outcome domain.SyncOutcome

	// Report is set for reconciliation triggers.
	Report *domain.ReconcileReport
}

// SyncService routes triggers to the incremental or full sync path.
type SyncService interface {
	Dispatch(ctx context.Context, trigger domain.Trigger) (*DispatchResult, error)
}
