package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.SyncService = (*Dispatcher)(nil)

// Dispatcher routes a trigger to the incremental or full sync path.
type Dispatcher struct {
	incremental driving.IssueSyncer
	reconciler  driving.Reconciler
	repo        domain.RepoRef
	options     driving.ReconcileOptions
}

// NewDispatcher creates a dispatcher. reconciler may be nil, in which case
// reconciliation triggers fail with domain.ErrConfigMissing. repo is the
// repository reconciled when the trigger does not name one.
func NewDispatcher(
	incremental driving.IssueSyncer,
	reconciler driving.Reconciler,
	repo domain.RepoRef,
	options driving.ReconcileOptions,
) *Dispatcher {
	return &Dispatcher{
		incremental: incremental,
		reconciler:  reconciler,
		repo:        repo,
		options:     options,
	}
}

// Dispatch handles a trigger:
//
//   - issues: the incremental path, create on "opened" and update otherwise
//   - workflow_dispatch, schedule: full reconciliation
//
// Other event names return domain.ErrUnsupportedEvent.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger domain.Trigger) (*driving.DispatchResult, error) {
	logger.Debug("Dispatching %s event", trigger.EventName)

	switch trigger.EventName {
	case domain.EventIssues:
		if trigger.Issue == nil {
			return nil, fmt.Errorf("%w: issues event without payload", domain.ErrInvalidInput)
		}
		outcome, err := d.incremental.HandleIssueEvent(ctx, *trigger.Issue)
		if err != nil {
			return nil, err
		}
		return &driving.DispatchResult{Outcome: outcome}, nil

	case domain.EventWorkflowDispatch, domain.EventSchedule:
		if d.reconciler == nil {
			return nil, fmt.Errorf("%w: reconciliation needs a github token", domain.ErrConfigMissing)
		}
		repo := d.repo
		if repo.IsZero() {
			repo = trigger.Repository
		}
		if repo.IsZero() {
			return nil, fmt.Errorf("%w: repository", domain.ErrConfigMissing)
		}
		report, err := d.reconciler.Reconcile(ctx, repo, d.options)
		return &driving.DispatchResult{Report: report}, err

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedEvent, trigger.EventName)
	}
}
