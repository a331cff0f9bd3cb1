package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// Ensure IncrementalSync implements the interface.
var _ driving.IssueSyncer = (*IncrementalSync)(nil)

// IncrementalSync applies single issues webhook events to Notion.
// Each event results in at most one Notion write.
type IncrementalSync struct {
	pages  driven.PageStore
	mapper *PropertyMapper
}

// NewIncrementalSync creates a handler writing to the given page store.
func NewIncrementalSync(pages driven.PageStore, mapper *PropertyMapper) *IncrementalSync {
	return &IncrementalSync{
		pages:  pages,
		mapper: mapper,
	}
}

// HandleIssueEvent creates a page for an "opened" event and updates the
// page correlated by issue id for any other action. An update for an issue
// without a page is logged and dropped: no page is created as a fallback.
// Notion failures are returned unchanged apart from wrapping.
func (s *IncrementalSync) HandleIssueEvent(ctx context.Context, event domain.IssueEvent) (domain.SyncOutcome, error) {
	if event.Action == "" {
		return "", fmt.Errorf("%w: issues event without action", domain.ErrInvalidInput)
	}

	if event.Action == domain.ActionOpened {
		return s.create(ctx, event.Issue)
	}
	return s.update(ctx, event.Action, event.Issue)
}

func (s *IncrementalSync) create(ctx context.Context, issue domain.IssueRecord) (domain.SyncOutcome, error) {
	pageID, err := s.pages.CreatePage(ctx, s.mapper.Map(issue))
	if err != nil {
		return "", fmt.Errorf("create page for issue #%d: %w", issue.Number, err)
	}

	logger.Info("Created page %s for issue #%d", pageID, issue.Number)
	return domain.OutcomeCreated, nil
}

func (s *IncrementalSync) update(
	ctx context.Context, action string, issue domain.IssueRecord,
) (domain.SyncOutcome, error) {
	page, err := s.pages.FindPageByIssueID(ctx, issue.ID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("No Notion page for issue #%d (id %d), dropping %q update", issue.Number, issue.ID, action)
		return domain.OutcomeSkippedNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("find page for issue #%d: %w", issue.Number, err)
	}

	if err := s.pages.UpdatePage(ctx, page.ID, s.mapper.Map(issue)); err != nil {
		return "", fmt.Errorf("update page %s for issue #%d: %w", page.ID, issue.Number, err)
	}

	logger.Info("Updated page %s for issue #%d (%s)", page.ID, issue.Number, action)
	return domain.OutcomeUpdated, nil
}
